package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"chat-reactions-be/internal/model"
	"chat-reactions-be/internal/pkg/apperror"
	"chat-reactions-be/internal/testutil"
	"chat-reactions-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplyEndToEnd(t *testing.T) {
	f := newFixture(t)
	parent := testutil.SeedMessage(t, f.db, f.room, f.other, strings.Repeat("p", 260))
	child := testutil.SeedMessage(t, f.db, f.room, f.member, "answer")
	ctx := context.Background()

	_, err := f.replies.GetReplyInfo(ctx, f.tenant, f.room.Id, child.Id)
	assert.ErrorIs(t, err, apperror.ErrNotAReply)

	created, err := f.replies.CreateReplyRelationship(ctx, f.tenant, f.member, f.room.Id, child.Id, parent.Id)
	require.NoError(t, err)
	assert.Equal(t, child.Id, created.ChildMessageId)
	assert.Equal(t, parent.Id, *created.ParentMessageId)
	require.NotNil(t, created.ParentPreview)
	assert.Equal(t, strings.Repeat("p", 200), created.ParentPreview.Content)
	assert.Equal(t, f.other, *created.ParentPreview.AuthorId)

	info, err := f.replies.GetReplyInfo(ctx, f.tenant, f.room.Id, child.Id)
	require.NoError(t, err)
	assert.Equal(t, created.ChildMessageId, info.ChildMessageId)
	assert.Equal(t, created.ParentMessageId, info.ParentMessageId)
	assert.Equal(t, created.RoomId, info.RoomId)
	require.NotNil(t, info.ParentPreview)
	assert.Equal(t, created.ParentPreview.Content, info.ParentPreview.Content)
	assert.Equal(t, created.ParentPreview.AuthorAlias, info.ParentPreview.AuthorAlias)
	assert.True(t, created.ParentPreview.CreatedAt.Equal(*info.ParentPreview.CreatedAt))

	children, err := f.replies.GetRepliesToMessage(ctx, f.tenant, f.room.Id, parent.Id)
	require.NoError(t, err)
	assert.Equal(t, parent.Id, children.ParentMessageId)
	assert.Equal(t, 1, children.ReplyCount)
	require.Len(t, children.Replies, 1)
	assert.Equal(t, child.Id, children.Replies[0].MessageId)
}

func TestReplyCreatedOnlyOncePerChild(t *testing.T) {
	f := newFixture(t)
	p1 := testutil.SeedMessage(t, f.db, f.room, f.other, "first parent")
	p2 := testutil.SeedMessage(t, f.db, f.room, f.other, "second parent")
	child := testutil.SeedMessage(t, f.db, f.room, f.member, "answer")
	ctx := context.Background()

	_, err := f.replies.CreateReplyRelationship(ctx, f.tenant, f.member, f.room.Id, child.Id, p1.Id)
	require.NoError(t, err)

	_, err = f.replies.CreateReplyRelationship(ctx, f.tenant, f.member, f.room.Id, child.Id, p2.Id)
	assert.ErrorIs(t, err, apperror.ErrReplyAlreadyExists)

	f.wire(staleFactory{db: f.db})
	_, err = f.replies.CreateReplyRelationship(ctx, f.tenant, f.member, f.room.Id, child.Id, p2.Id)
	assert.ErrorIs(t, err, apperror.ErrReplyAlreadyExists)
}

func TestReplyPreviewIsFrozen(t *testing.T) {
	f := newFixture(t)
	parent := testutil.SeedMessage(t, f.db, f.room, f.other, "Hello world")
	child := testutil.SeedMessage(t, f.db, f.room, f.member, "answer")
	ctx := context.Background()

	_, err := f.replies.CreateReplyRelationship(ctx, f.tenant, f.member, f.room.Id, child.Id, parent.Id)
	require.NoError(t, err)

	require.NoError(t, f.db.Model(&model.ChatdRoomMessage{}).
		Where("uuid = ?", parent.Id).
		Update("content", "Edited").Error)

	info, err := f.replies.GetReplyInfo(ctx, f.tenant, f.room.Id, child.Id)
	require.NoError(t, err)
	assert.Equal(t, "Hello world", info.ParentPreview.Content)
}

func TestReplyAccessChecks(t *testing.T) {
	f := newFixture(t)
	parent := testutil.SeedMessage(t, f.db, f.room, f.other, "parent")
	child := testutil.SeedMessage(t, f.db, f.room, f.member, "child")
	otherRoom := testutil.SeedRoom(t, f.db, f.tenant, f.member)
	foreign := testutil.SeedMessage(t, f.db, otherRoom, f.member, "elsewhere")
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
		want error
	}{
		{"non member", func() error {
			_, err := f.replies.CreateReplyRelationship(ctx, f.tenant, f.outsider, f.room.Id, child.Id, parent.Id)
			return err
		}, apperror.ErrRoomNotFound},
		{"wrong tenant", func() error {
			_, err := f.replies.GetReplyInfo(ctx, uuid.New(), f.room.Id, child.Id)
			return err
		}, apperror.ErrRoomNotFound},
		{"unknown child", func() error {
			_, err := f.replies.CreateReplyRelationship(ctx, f.tenant, f.member, f.room.Id, uuid.New(), parent.Id)
			return err
		}, apperror.ErrMessageNotFound},
		{"parent in another room", func() error {
			_, err := f.replies.CreateReplyRelationship(ctx, f.tenant, f.member, f.room.Id, child.Id, foreign.Id)
			return err
		}, apperror.ErrMessageNotFound},
		{"reply to itself", func() error {
			_, err := f.replies.CreateReplyRelationship(ctx, f.tenant, f.member, f.room.Id, child.Id, child.Id)
			return err
		}, apperror.ErrInvalidData},
		{"reply to itself as non member", func() error {
			_, err := f.replies.CreateReplyRelationship(ctx, f.tenant, f.outsider, f.room.Id, child.Id, child.Id)
			return err
		}, apperror.ErrRoomNotFound},
		{"reply to itself in unknown room", func() error {
			_, err := f.replies.CreateReplyRelationship(ctx, f.tenant, f.member, uuid.New(), child.Id, child.Id)
			return err
		}, apperror.ErrRoomNotFound},
		{"reply to itself with unknown message", func() error {
			id := uuid.New()
			_, err := f.replies.CreateReplyRelationship(ctx, f.tenant, f.member, f.room.Id, id, id)
			return err
		}, apperror.ErrMessageNotFound},
		{"unknown message info", func() error {
			_, err := f.replies.GetReplyInfo(ctx, f.tenant, f.room.Id, uuid.New())
			return err
		}, apperror.ErrMessageNotFound},
		{"unknown message children", func() error {
			_, err := f.replies.GetRepliesToMessage(ctx, f.tenant, f.room.Id, uuid.New())
			return err
		}, apperror.ErrMessageNotFound},
		{"remove when not a reply", func() error {
			return f.replies.RemoveReplyRelationship(ctx, f.tenant, f.member, f.room.Id, child.Id)
		}, apperror.ErrNotAReply},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.call(), tt.want)
		})
	}
	assert.Empty(t, f.publisher.Events())
}

func TestReplyCreatedEventsRouteUnderParent(t *testing.T) {
	f := newFixture(t)
	parent := testutil.SeedMessage(t, f.db, f.room, f.other, "parent")
	c1 := testutil.SeedMessage(t, f.db, f.room, f.member, "c1")
	c2 := testutil.SeedMessage(t, f.db, f.room, f.member, "c2")
	ctx := context.Background()

	_, err := f.replies.CreateReplyRelationship(ctx, f.tenant, f.member, f.room.Id, c1.Id, parent.Id)
	require.NoError(t, err)
	_, err = f.replies.CreateReplyRelationship(ctx, f.tenant, f.member, f.room.Id, c2.Id, parent.Id)
	require.NoError(t, err)

	all := f.publisher.Events()
	require.Len(t, all, 4)

	var counts []int64
	for _, e := range all {
		created, ok := e.(*events.ReplyCreated)
		require.True(t, ok)
		assert.True(t, strings.HasSuffix(created.RoutingKey(),
			fmt.Sprintf(".rooms.%s.messages.%s.replies.created", f.room.Id, parent.Id)))
		counts = append(counts, created.Payload.ReplyCount)
	}
	assert.ElementsMatch(t, []int64{1, 1, 2, 2}, counts)
}

func TestRoomReplyMetadata(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	empty, err := f.replies.GetRoomReplyMetadata(ctx, f.tenant, f.room.Id)
	require.NoError(t, err)
	assert.Empty(t, empty.Replies)

	parent := testutil.SeedMessage(t, f.db, f.room, f.other, "parent")
	child := testutil.SeedMessage(t, f.db, f.room, f.member, "child")
	plain := testutil.SeedMessage(t, f.db, f.room, f.member, "plain")

	_, err = f.replies.CreateReplyRelationship(ctx, f.tenant, f.member, f.room.Id, child.Id, parent.Id)
	require.NoError(t, err)

	meta, err := f.replies.GetRoomReplyMetadata(ctx, f.tenant, f.room.Id)
	require.NoError(t, err)
	require.Len(t, meta.Replies, 1)

	single, err := f.replies.GetReplyInfo(ctx, f.tenant, f.room.Id, child.Id)
	require.NoError(t, err)
	assert.Equal(t, single, meta.Replies[child.Id.String()])
	assert.NotContains(t, meta.Replies, plain.Id.String())
}

func TestRemoveReplyRelationship(t *testing.T) {
	f := newFixture(t)
	parent := testutil.SeedMessage(t, f.db, f.room, f.other, "parent")
	child := testutil.SeedMessage(t, f.db, f.room, f.member, "child")
	ctx := context.Background()

	_, err := f.replies.CreateReplyRelationship(ctx, f.tenant, f.member, f.room.Id, child.Id, parent.Id)
	require.NoError(t, err)
	published := len(f.publisher.Events())

	require.NoError(t, f.replies.RemoveReplyRelationship(ctx, f.tenant, f.member, f.room.Id, child.Id))
	assert.Len(t, f.publisher.Events(), published)

	_, err = f.replies.GetReplyInfo(ctx, f.tenant, f.room.Id, child.Id)
	assert.ErrorIs(t, err, apperror.ErrNotAReply)
}
