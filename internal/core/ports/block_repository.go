package ports

import (
	"context"

	"github.com/bankaccess/account-system/internal/core/domain"
)

// BlockRepository is the persistence contract for the block registry.
type BlockRepository interface {
	// Insert stores a new block entry. Returns domain.ErrAlreadyBlocked when
	// an entry for the national id already exists.
	Insert(ctx context.Context, entry *domain.BlockEntry) error

	// Delete removes the entry for the national id. Returns
	// domain.ErrBlockNotFound when none exists.
	Delete(ctx context.Context, nationalID string) error

	// Exists reports whether an entry for the national id is present.
	// Absence is not an error.
	Exists(ctx context.Context, nationalID string) (bool, error)
}
