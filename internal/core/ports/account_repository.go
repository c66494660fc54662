package ports

import (
	"context"

	"github.com/bankaccess/account-system/internal/core/domain"
)

// AccountRepository is the persistence contract for account records. The
// store is the only serialization point in the system, so every mutation that
// can race (the failed-attempt counter, the balance) is expressed as an
// atomic operation rather than read-modify-write.
type AccountRepository interface {
	// Create inserts a new account. Returns domain.ErrEmailTaken or
	// domain.ErrNationalIDTaken on a uniqueness violation.
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)

	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByNationalID(ctx context.Context, nationalID string) (*domain.Account, error)

	// IncrementFailedAttempts atomically bumps the counter and returns the
	// new value, making the lockout threshold exact under concurrent
	// sign-in failures.
	IncrementFailedAttempts(ctx context.Context, nationalID string) (int, error)

	// ResetFailedAttempts sets the counter back to zero.
	ResetFailedAttempts(ctx context.Context, nationalID string) error

	// MarkSignedIn sets logged_in=true and resets the failed-attempt counter
	// in a single update, returning the updated account.
	MarkSignedIn(ctx context.Context, nationalID string) (*domain.Account, error)

	// MarkSignedOut sets logged_in=false. Returns
	// domain.ErrAlreadyLoggedOut when the account exists but is not
	// logged in.
	MarkSignedOut(ctx context.Context, nationalID string) error

	// AdjustBalance applies a signed delta to the balance. A negative delta
	// only matches when the balance covers it; otherwise
	// domain.ErrInsufficientBalance is returned and the balance is left
	// untouched. Returns the updated account.
	AdjustBalance(ctx context.Context, nationalID string, delta float64) (*domain.Account, error)
}
