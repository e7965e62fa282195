package unitofwork

import (
	"context"

	"chat-reactions-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	// Run executes fn inside a transaction. The transaction is committed when
	// fn returns nil and rolled back on error or panic.
	Run(ctx context.Context, fn func(uow UnitOfWork) error) error

	RoomRepository() contract.RoomRepository
	ReactionRepository() contract.ReactionRepository
	ReplyRepository() contract.ReplyRepository
}
