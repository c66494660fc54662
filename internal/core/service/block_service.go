package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/bankaccess/account-system/internal/core/domain"
	"github.com/bankaccess/account-system/internal/core/ports"
	"github.com/bankaccess/account-system/internal/metrics"
)

// BlockService exposes the block registry. Block is deliberately
// non-idempotent: blocking an already-blocked national id fails, so callers
// that want idempotency must check first.
type BlockService struct {
	registry ports.BlockRepository
	log      zerolog.Logger
}

func NewBlockService(registry ports.BlockRepository, log zerolog.Logger) *BlockService {
	return &BlockService{registry: registry, log: log}
}

func (s *BlockService) Block(ctx context.Context, nationalID, username string) error {
	entry := &domain.BlockEntry{
		NationalID: nationalID,
		Username:   username,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.registry.Insert(ctx, entry); err != nil {
		metrics.RegistryOpsTotal.WithLabelValues("block", "error").Inc()
		return err
	}

	metrics.RegistryOpsTotal.WithLabelValues("block", "success").Inc()
	s.log.Info().Str("national_id", nationalID).Str("username", username).Msg("national id blocked")
	return nil
}

func (s *BlockService) Unblock(ctx context.Context, nationalID string) error {
	if err := s.registry.Delete(ctx, nationalID); err != nil {
		metrics.RegistryOpsTotal.WithLabelValues("unblock", "error").Inc()
		return err
	}

	metrics.RegistryOpsTotal.WithLabelValues("unblock", "success").Inc()
	s.log.Info().Str("national_id", nationalID).Msg("national id unblocked")
	return nil
}

// IsBlocked is a pure read; a missing entry means "not blocked", never an
// error.
func (s *BlockService) IsBlocked(ctx context.Context, nationalID string) (bool, error) {
	blocked, err := s.registry.Exists(ctx, nationalID)
	if err != nil {
		metrics.RegistryOpsTotal.WithLabelValues("is_blocked", "error").Inc()
		return false, err
	}
	metrics.RegistryOpsTotal.WithLabelValues("is_blocked", "success").Inc()
	return blocked, nil
}
