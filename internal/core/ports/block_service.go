package ports

import "context"

// BlockService owns the block registry's guard invariant: a national id is
// blocked or it is not, and transitions signal violations explicitly.
type BlockService interface {
	Block(ctx context.Context, nationalID, username string) error
	Unblock(ctx context.Context, nationalID string) error
	IsBlocked(ctx context.Context, nationalID string) (bool, error)
}
