package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/bankaccess/account-system/internal/core/domain"
	"github.com/bankaccess/account-system/internal/core/ports"
	"github.com/bankaccess/account-system/internal/metrics"
)

// IdempotencyGuard abstracts the replay-detection store (Redis).
type IdempotencyGuard interface {
	Seen(ctx context.Context, key string) (bool, error)
	Mark(ctx context.Context, key string) error
}

// LedgerService enforces the logged-in precondition and the
// insufficient-funds rule for balance operations.
type LedgerService struct {
	accounts ports.AccountRepository
	idem     IdempotencyGuard
	log      zerolog.Logger
}

func NewLedgerService(accounts ports.AccountRepository, idem IdempotencyGuard, log zerolog.Logger) *LedgerService {
	return &LedgerService{accounts: accounts, idem: idem, log: log}
}

// requireSignedIn resolves the account and rejects operations on accounts
// that are not logged in. Every ledger operation shares this precondition.
func (s *LedgerService) requireSignedIn(ctx context.Context, nationalID string) (*domain.Account, error) {
	account, err := s.accounts.FindByNationalID(ctx, nationalID)
	if err != nil {
		return nil, err
	}
	if !account.LoggedIn {
		return nil, domain.ErrNotLoggedIn
	}
	return account, nil
}

func (s *LedgerService) CheckBalance(ctx context.Context, nationalID string) (float64, error) {
	account, err := s.requireSignedIn(ctx, nationalID)
	if err != nil {
		metrics.LedgerOpsTotal.WithLabelValues("balance", "error").Inc()
		return 0, err
	}
	metrics.LedgerOpsTotal.WithLabelValues("balance", "success").Inc()
	return account.Balance, nil
}

// Credit adds amount to the balance. A request replaying an already-seen
// idempotency key returns the current account without applying the amount
// again.
func (s *LedgerService) Credit(ctx context.Context, nationalID string, amount float64, idempotencyKey string) (*domain.Account, error) {
	return s.move(ctx, nationalID, amount, idempotencyKey, "credit")
}

// Debit subtracts amount from the balance, failing when the balance does not
// cover it. The check-and-decrement is a single atomic store operation, so
// concurrent debits cannot drive the balance negative.
func (s *LedgerService) Debit(ctx context.Context, nationalID string, amount float64, idempotencyKey string) (*domain.Account, error) {
	return s.move(ctx, nationalID, -amount, idempotencyKey, "debit")
}

func (s *LedgerService) move(ctx context.Context, nationalID string, delta float64, idempotencyKey, op string) (*domain.Account, error) {
	account, err := s.requireSignedIn(ctx, nationalID)
	if err != nil {
		metrics.LedgerOpsTotal.WithLabelValues(op, "error").Inc()
		return nil, err
	}

	if idempotencyKey != "" {
		seen, err := s.idem.Seen(ctx, idempotencyKey)
		if err != nil {
			s.log.Warn().Err(err).Str("key", idempotencyKey).Msg("idempotency check failed, processing anyway")
		} else if seen {
			metrics.IdempotentReplaysTotal.Inc()
			s.log.Info().Str("key", idempotencyKey).Str("national_id", nationalID).Msg("idempotent replay, amount not applied")
			return account, nil
		}
	}

	updated, err := s.accounts.AdjustBalance(ctx, nationalID, delta)
	if err != nil {
		metrics.LedgerOpsTotal.WithLabelValues(op, "error").Inc()
		return nil, err
	}

	if idempotencyKey != "" {
		if markErr := s.idem.Mark(ctx, idempotencyKey); markErr != nil {
			s.log.Warn().Err(markErr).Str("key", idempotencyKey).Msg("failed to record idempotency key")
		}
	}

	metrics.LedgerOpsTotal.WithLabelValues(op, "success").Inc()
	s.log.Info().
		Str("national_id", nationalID).
		Str("op", op).
		Float64("balance", updated.Balance).
		Msg("balance updated")
	return updated, nil
}

// Logout clears the logged-in flag. Logging out an account that is already
// logged out is an error, not a no-op.
func (s *LedgerService) Logout(ctx context.Context, nationalID string) error {
	if err := s.accounts.MarkSignedOut(ctx, nationalID); err != nil {
		metrics.LedgerOpsTotal.WithLabelValues("logout", "error").Inc()
		return err
	}
	metrics.LedgerOpsTotal.WithLabelValues("logout", "success").Inc()
	s.log.Info().Str("national_id", nationalID).Msg("signed out")
	return nil
}
