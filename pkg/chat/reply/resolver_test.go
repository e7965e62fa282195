package reply

import (
	"context"
	"strings"
	"testing"

	"chat-reactions-be/internal/mapper"
	"chat-reactions-be/internal/repository/contract"
	"chat-reactions-be/internal/repository/unitofwork"
	"chat-reactions-be/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkSnapshotsParent(t *testing.T) {
	db := testutil.NewTestDB(t)
	author, replier := uuid.New(), uuid.New()
	room := testutil.SeedRoom(t, db, uuid.New(), author, replier)
	parent := testutil.SeedMessage(t, db, room, author, strings.Repeat("x", 250))
	child := testutil.SeedMessage(t, db, room, replier, "reply")

	m := mapper.NewRoomMapper()
	uow := unitofwork.NewUnitOfWork(db)
	r := NewResolver()
	ctx := context.Background()

	link, err := r.Link(ctx, uow, room.Id, m.MessageToEntity(child), m.MessageToEntity(parent))
	require.NoError(t, err)
	require.NotNil(t, link.ParentContentPreview)
	assert.Equal(t, strings.Repeat("x", 200), *link.ParentContentPreview)
	assert.Equal(t, author, *link.ParentAuthorId)
	assert.Equal(t, parent.Alias, link.ParentAuthorAlias)

	info, err := r.ResolveInfo(ctx, uow, child.Id)
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, parent.Id, *info.ParentMessageId)
	assert.Equal(t, room.Id, info.RoomId)
	require.NotNil(t, info.ParentPreview)
	assert.Equal(t, strings.Repeat("x", 200), info.ParentPreview.Content)

	_, err = r.Link(ctx, uow, room.Id, m.MessageToEntity(child), m.MessageToEntity(parent))
	assert.ErrorIs(t, err, contract.ErrDuplicateKey)
}

func TestLinkWithoutParentContentHasNoPreview(t *testing.T) {
	db := testutil.NewTestDB(t)
	author := uuid.New()
	room := testutil.SeedRoom(t, db, uuid.New(), author)
	parent := testutil.SeedMessage(t, db, room, author, "")
	child := testutil.SeedMessage(t, db, room, author, "reply")

	m := mapper.NewRoomMapper()
	uow := unitofwork.NewUnitOfWork(db)
	r := NewResolver()

	_, err := r.Link(context.Background(), uow, room.Id, m.MessageToEntity(child), m.MessageToEntity(parent))
	require.NoError(t, err)

	info, err := r.ResolveInfo(context.Background(), uow, child.Id)
	require.NoError(t, err)
	assert.Nil(t, info.ParentPreview)
}

func TestResolveInfoNotAReply(t *testing.T) {
	db := testutil.NewTestDB(t)
	info, err := NewResolver().ResolveInfo(context.Background(), unitofwork.NewUnitOfWork(db), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, info)
}

func TestResolveChildrenAndRoomMetadata(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := uuid.New()
	room := testutil.SeedRoom(t, db, uuid.New(), user)
	parent := testutil.SeedMessage(t, db, room, user, "parent")
	c1 := testutil.SeedMessage(t, db, room, user, "first")
	c2 := testutil.SeedMessage(t, db, room, user, "second")

	m := mapper.NewRoomMapper()
	uow := unitofwork.NewUnitOfWork(db)
	r := NewResolver()
	ctx := context.Background()

	_, err := r.Link(ctx, uow, room.Id, m.MessageToEntity(c1), m.MessageToEntity(parent))
	require.NoError(t, err)
	_, err = r.Link(ctx, uow, room.Id, m.MessageToEntity(c2), m.MessageToEntity(parent))
	require.NoError(t, err)

	children, err := r.ResolveChildren(ctx, uow, parent.Id)
	require.NoError(t, err)
	assert.Equal(t, 2, children.ReplyCount)
	require.Len(t, children.Replies, 2)
	assert.Equal(t, c1.Id, children.Replies[0].MessageId)
	assert.Equal(t, c2.Id, children.Replies[1].MessageId)

	count, err := r.CountChildren(ctx, uow, parent.Id)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	meta, err := r.ResolveRoomMetadata(ctx, uow, room.Id)
	require.NoError(t, err)
	require.Len(t, meta, 2)
	assert.Equal(t, parent.Id, *meta[c1.Id].ParentMessageId)
	assert.Equal(t, parent.Id, *meta[c2.Id].ParentMessageId)

	empty, err := r.ResolveChildren(ctx, uow, c1.Id)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.ReplyCount)
	assert.Empty(t, empty.Replies)
}
