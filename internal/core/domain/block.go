package domain

import (
	"errors"
	"time"
)

var (
	ErrAlreadyBlocked = errors.New("national id is already blocked")
	ErrBlockNotFound  = errors.New("national id is not blocked")

	// ErrBlocklistUnavailable means the blocked-status of a national id could
	// not be determined; callers must fail closed on it.
	ErrBlocklistUnavailable = errors.New("blocklist service unavailable")
	// ErrBlockCallFailed means a block or unblock request did not succeed.
	ErrBlockCallFailed = errors.New("blocklist call failed")
)

// BlockEntry marks a national id as denied sign-in. Existence of the entry is
// the sole source of truth for "blocked"; there is no flag on the account.
type BlockEntry struct {
	NationalID string    `json:"national_id"`
	Username   string    `json:"username"`
	CreatedAt  time.Time `json:"created_at"`
}
