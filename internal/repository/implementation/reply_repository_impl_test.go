package implementation

import (
	"context"
	"strings"
	"testing"
	"time"

	"chat-reactions-be/internal/entity"
	"chat-reactions-be/internal/repository/contract"
	"chat-reactions-be/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func link(child, parent, room uuid.UUID, preview string) *entity.ReplyLink {
	return &entity.ReplyLink{
		ChildMessageId:       child,
		ParentMessageId:      &parent,
		RoomId:               room,
		ParentContentPreview: &preview,
		CreatedAt:            time.Now().UTC(),
	}
}

func TestReplyRepositoryCreateTruncatesAndRejectsDuplicates(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := uuid.New()
	room := testutil.SeedRoom(t, db, uuid.New(), user)
	parent := testutil.SeedMessage(t, db, room, user, "parent")
	child := testutil.SeedMessage(t, db, room, user, "child")

	repo := NewReplyRepository(db)
	ctx := context.Background()

	l := link(child.Id, parent.Id, room.Id, strings.Repeat("é", 300))
	require.NoError(t, repo.Create(ctx, l))
	assert.Equal(t, strings.Repeat("é", 200), *l.ParentContentPreview)

	err := repo.Create(ctx, link(child.Id, parent.Id, room.Id, "again"))
	assert.ErrorIs(t, err, contract.ErrDuplicateKey)

	got, err := repo.GetByChild(ctx, child.Id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, parent.Id, *got.ParentMessageId)

	missing, err := repo.GetByChild(ctx, parent.Id)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestReplyRepositoryQueries(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := uuid.New()
	room := testutil.SeedRoom(t, db, uuid.New(), user)
	parent := testutil.SeedMessage(t, db, room, user, "parent")
	c1 := testutil.SeedMessage(t, db, room, user, "c1")
	c2 := testutil.SeedMessage(t, db, room, user, "c2")

	repo := NewReplyRepository(db)
	ctx := context.Background()

	first := link(c1.Id, parent.Id, room.Id, "parent")
	second := link(c2.Id, parent.Id, room.Id, "parent")
	second.CreatedAt = first.CreatedAt.Add(time.Second)
	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, repo.Create(ctx, first))

	children, err := repo.FindByParent(ctx, parent.Id)
	require.NoError(t, err)
	require.Len(t, children, 2)
	assert.Equal(t, c1.Id, children[0].ChildMessageId)
	assert.Equal(t, c2.Id, children[1].ChildMessageId)

	count, err := repo.CountByParent(ctx, parent.Id)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	inRoom, err := repo.FindByRoom(ctx, room.Id)
	require.NoError(t, err)
	assert.Len(t, inRoom, 2)

	require.NoError(t, repo.Delete(ctx, c1.Id))
	count, err = repo.CountByParent(ctx, parent.Id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestReplyRepositoryCleanupKeepsPreview(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := uuid.New()
	room := testutil.SeedRoom(t, db, uuid.New(), user)
	parent := testutil.SeedMessage(t, db, room, user, "Hello world")
	child := testutil.SeedMessage(t, db, room, user, "child")
	orphan := testutil.SeedMessage(t, db, room, user, "orphan")

	repo := NewReplyRepository(db)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, link(child.Id, parent.Id, room.Id, "Hello world")))
	require.NoError(t, repo.Create(ctx, link(orphan.Id, parent.Id, room.Id, "Hello world")))

	testutil.DeleteMessage(t, db, parent.Id)
	testutil.DeleteMessage(t, db, orphan.Id)

	removed, err := repo.DeleteOrphans(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	detached, err := repo.DetachMissingParents(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), detached)

	got, err := repo.GetByChild(ctx, child.Id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Nil(t, got.ParentMessageId)
	assert.Equal(t, "Hello world", *got.ParentContentPreview)
}
