// Package providers declares the two sides of a sync: where workers come
// from and where learner accounts live.
package providers

import (
	"context"

	"adp-lms-sync/internal/domain"
)

// WorkerSource reads the HR roster. All methods are read-only.
type WorkerSource interface {
	ListActiveWorkers(ctx context.Context) ([]domain.Worker, error)
	// ListWorkersUnderManager returns the active direct and indirect reports
	// of the worker ref resolves to (email, name, associate id or worker id).
	ListWorkersUnderManager(ctx context.Context, ref string) ([]domain.Worker, error)
	FindWorker(ctx context.Context, ident string) (domain.Worker, error)
}

// AccountStore is the learning platform. Failures are reported with the
// apperr codes; FindUserByEmail returns apperr.ErrNotFound when no account
// matches and CreateUser returns apperr.ErrDuplicate when one already does.
type AccountStore interface {
	FindUserByEmail(ctx context.Context, email string) (domain.Account, error)
	CreateUser(ctx context.Context, w domain.Worker) (domain.Account, error)
	DeleteUserByEmail(ctx context.Context, email string) (domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	Enroll(ctx context.Context, accountID, courseID string) error
}
