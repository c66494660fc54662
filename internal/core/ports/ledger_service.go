package ports

import (
	"context"

	"github.com/bankaccess/account-system/internal/core/domain"
)

// LedgerService gates money movement behind the logged-in precondition.
// Credit and Debit accept an optional idempotency key; a replayed key returns
// the current account without applying the amount again.
type LedgerService interface {
	CheckBalance(ctx context.Context, nationalID string) (float64, error)
	Credit(ctx context.Context, nationalID string, amount float64, idempotencyKey string) (*domain.Account, error)
	Debit(ctx context.Context, nationalID string, amount float64, idempotencyKey string) (*domain.Account, error)
	Logout(ctx context.Context, nationalID string) error
}
