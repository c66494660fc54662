package ports

import "context"

// BlocklistClient is the accounts-side view of the blocklist service. Calls
// are synchronous with no retry; a failed call fails the parent operation.
type BlocklistClient interface {
	// IsBlocked returns the blocked-status of a national id. Any transport
	// failure or malformed response yields an error wrapping
	// domain.ErrBlocklistUnavailable so callers fail closed.
	IsBlocked(ctx context.Context, nationalID string) (bool, error)

	// Block asks the blocklist service to deny the national id. A 409 from
	// the peer maps to domain.ErrAlreadyBlocked; any other non-success maps
	// to domain.ErrBlockCallFailed.
	Block(ctx context.Context, nationalID, username string) error

	// Unblock lifts the denial. A 404 maps to domain.ErrBlockNotFound; any
	// other non-success maps to domain.ErrBlockCallFailed.
	Unblock(ctx context.Context, nationalID string) error
}
