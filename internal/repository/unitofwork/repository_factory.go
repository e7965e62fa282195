package unitofwork

import "context"

// RepositoryFactory hands each request its own UnitOfWork. Services keep the
// factory, never a UnitOfWork, so no transaction outlives a call.
type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}
