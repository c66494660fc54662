package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/bankaccess/account-system/internal/core/domain"
	"github.com/bankaccess/account-system/internal/core/ports"
	"github.com/bankaccess/account-system/internal/metrics"
)

// AuthService implements sign-up, the sign-in state machine, and the
// block/unblock proxy. Block state lives exclusively in the blocklist
// service; the account record carries no blocked flag.
type AuthService struct {
	accounts  ports.AccountRepository
	blocklist ports.BlocklistClient
	log       zerolog.Logger
}

func NewAuthService(accounts ports.AccountRepository, blocklist ports.BlocklistClient, log zerolog.Logger) *AuthService {
	return &AuthService{accounts: accounts, blocklist: blocklist, log: log}
}

// SignUp creates a new account with a hashed password, logged_in=false and a
// zeroed failed-attempt counter. Email uniqueness is checked up front;
// national-id uniqueness is enforced by the store's unique index.
func (s *AuthService) SignUp(ctx context.Context, input ports.SignUpInput) (*domain.Account, error) {
	if !input.Tier.Valid() {
		return nil, domain.ErrInvalidCredentials
	}

	_, err := s.accounts.FindByEmail(ctx, input.Email)
	if err == nil {
		return nil, domain.ErrEmailTaken
	}
	if !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := &domain.Account{
		NationalID:     input.NationalID,
		Username:       input.Username,
		Email:          input.Email,
		PasswordHash:   string(hash),
		PhoneNumber:    input.PhoneNumber,
		Tier:           input.Tier,
		Balance:        input.InitialBalance,
		LoggedIn:       false,
		FailedAttempts: 0,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := s.accounts.Create(ctx, account)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("national_id", created.NationalID).Str("email", created.Email).Msg("account created")
	return created, nil
}

// SignIn runs the state machine over (logged_in, failed_attempts):
//
//  1. Resolve the account by email.
//  2. Ask the blocklist service for the blocked-status. An unreachable peer
//     or a malformed response fails the whole operation — sign-in never
//     proceeds while the status is unknown.
//  3. A blocked account fails before any credential check or counter
//     mutation.
//  4. On a credential mismatch the counter is bumped atomically; hitting the
//     threshold triggers an auto-block against the same national id. The
//     caller always receives the credential error; an auto-block failure is
//     logged and counted but not surfaced.
//  5. On a match the account is marked signed in and the counter resets.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*domain.Account, error) {
	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		metrics.SignInsTotal.WithLabelValues("not_found").Inc()
		return nil, err
	}

	blocked, err := s.blocklist.IsBlocked(ctx, account.NationalID)
	if err != nil {
		metrics.SignInsTotal.WithLabelValues("blocklist_error").Inc()
		s.log.Error().Err(err).Str("national_id", account.NationalID).Msg("blocked-status check failed, refusing sign-in")
		return nil, err
	}
	if blocked {
		metrics.SignInsTotal.WithLabelValues("blocked").Inc()
		return nil, domain.ErrAccountBlocked
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		attempts, incErr := s.accounts.IncrementFailedAttempts(ctx, account.NationalID)
		if incErr != nil {
			return nil, incErr
		}

		if attempts >= domain.MaxFailedAttempts {
			if blockErr := s.blocklist.Block(ctx, account.NationalID, account.Username); blockErr != nil {
				metrics.AutoBlockFailuresTotal.Inc()
				s.log.Error().Err(blockErr).
					Str("national_id", account.NationalID).
					Int("failed_attempts", attempts).
					Msg("auto-block failed, account remains unblocked")
			} else {
				metrics.LockoutsTotal.Inc()
				s.log.Warn().
					Str("national_id", account.NationalID).
					Int("failed_attempts", attempts).
					Msg("account auto-blocked after repeated credential failures")
			}
		}

		metrics.SignInsTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	updated, err := s.accounts.MarkSignedIn(ctx, account.NationalID)
	if err != nil {
		return nil, err
	}

	metrics.SignInsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("national_id", updated.NationalID).Msg("sign-in succeeded")
	return updated, nil
}

// BlockAccount proxies a block request to the blocklist service. No local
// state is mutated.
func (s *AuthService) BlockAccount(ctx context.Context, nationalID string) error {
	account, err := s.accounts.FindByNationalID(ctx, nationalID)
	if err != nil {
		return err
	}

	if err := s.blocklist.Block(ctx, account.NationalID, account.Username); err != nil {
		metrics.BlockProxyTotal.WithLabelValues("block", "error").Inc()
		return err
	}

	metrics.BlockProxyTotal.WithLabelValues("block", "success").Inc()
	s.log.Info().Str("national_id", nationalID).Msg("account blocked")
	return nil
}

// UnblockAccount proxies an unblock request and, on success, resets the
// failed-attempt counter so the account starts sign-in with a clean slate.
func (s *AuthService) UnblockAccount(ctx context.Context, nationalID string) error {
	account, err := s.accounts.FindByNationalID(ctx, nationalID)
	if err != nil {
		return err
	}

	if err := s.blocklist.Unblock(ctx, account.NationalID); err != nil {
		metrics.BlockProxyTotal.WithLabelValues("unblock", "error").Inc()
		return err
	}

	if err := s.accounts.ResetFailedAttempts(ctx, account.NationalID); err != nil {
		return err
	}

	metrics.BlockProxyTotal.WithLabelValues("unblock", "success").Inc()
	s.log.Info().Str("national_id", nationalID).Msg("account unblocked")
	return nil
}
