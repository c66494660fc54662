package ports

import (
	"context"

	"github.com/bankaccess/account-system/internal/core/domain"
)

// SignUpInput carries the already shape-validated fields of a new account.
type SignUpInput struct {
	NationalID     string
	Username       string
	Email          string
	Password       string
	PhoneNumber    string
	Tier           domain.SubscriptionTier
	InitialBalance float64
}

type AuthService interface {
	SignUp(ctx context.Context, input SignUpInput) (*domain.Account, error)
	SignIn(ctx context.Context, email, password string) (*domain.Account, error)
	BlockAccount(ctx context.Context, nationalID string) error
	UnblockAccount(ctx context.Context, nationalID string) error
}
