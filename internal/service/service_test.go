package service

import (
	"context"
	"testing"

	"chat-reactions-be/internal/entity"
	"chat-reactions-be/internal/model"
	"chat-reactions-be/internal/pkg/logger"
	"chat-reactions-be/internal/repository/contract"
	"chat-reactions-be/internal/repository/unitofwork"
	"chat-reactions-be/internal/testutil"
	"chat-reactions-be/pkg/chat/notifier"
	"chat-reactions-be/pkg/chat/reply"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fixture struct {
	db        *gorm.DB
	factory   unitofwork.RepositoryFactory
	publisher *testutil.RecordingPublisher
	reactions IReactionService
	replies   IReplyService

	tenant   uuid.UUID
	member   uuid.UUID
	other    uuid.UUID
	outsider uuid.UUID
	room     *model.ChatdRoom
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		db:        testutil.NewTestDB(t),
		publisher: testutil.NewRecordingPublisher(),
		tenant:    uuid.New(),
		member:    uuid.New(),
		other:     uuid.New(),
		outsider:  uuid.New(),
	}
	f.factory = unitofwork.NewRepositoryFactory(f.db)
	f.room = testutil.SeedRoom(t, f.db, f.tenant, f.member, f.other)
	f.wire(f.factory)
	return f
}

func (f *fixture) wire(factory unitofwork.RepositoryFactory) {
	n := notifier.New(f.publisher, logger.NewNopLogger(), nil, notifier.Options{})
	f.reactions = NewReactionService(factory, n)
	f.replies = NewReplyService(factory, reply.NewResolver(), n)
}

// staleFactory hands out units of work whose existence pre-checks never see
// a row, so the store's uniqueness constraint has to catch the duplicate.
type staleFactory struct {
	db *gorm.DB
}

func (f staleFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &staleUow{UnitOfWork: unitofwork.NewUnitOfWork(f.db)}
}

type staleUow struct {
	unitofwork.UnitOfWork
}

func (u *staleUow) Run(ctx context.Context, fn func(uow unitofwork.UnitOfWork) error) error {
	return u.UnitOfWork.Run(ctx, func(inner unitofwork.UnitOfWork) error {
		return fn(&staleUow{UnitOfWork: inner})
	})
}

func (u *staleUow) ReactionRepository() contract.ReactionRepository {
	return staleReactions{u.UnitOfWork.ReactionRepository()}
}

func (u *staleUow) ReplyRepository() contract.ReplyRepository {
	return staleReplies{u.UnitOfWork.ReplyRepository()}
}

type staleReactions struct {
	contract.ReactionRepository
}

func (staleReactions) Get(context.Context, uuid.UUID, uuid.UUID, string) (*entity.Reaction, error) {
	return nil, nil
}

type staleReplies struct {
	contract.ReplyRepository
}

func (staleReplies) GetByChild(context.Context, uuid.UUID) (*entity.ReplyLink, error) {
	return nil, nil
}
