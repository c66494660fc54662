package domain

import (
	"errors"
	"time"
)

// SubscriptionTier is the closed set of account plans.
type SubscriptionTier string

const (
	TierGolden  SubscriptionTier = "golden"
	TierYouth   SubscriptionTier = "youth"
	TierRegular SubscriptionTier = "regular"
)

// Valid reports whether t names a known tier.
func (t SubscriptionTier) Valid() bool {
	switch t {
	case TierGolden, TierYouth, TierRegular:
		return true
	}
	return false
}

// MaxFailedAttempts is the number of consecutive credential mismatches after
// which an account is reported to the blocklist service.
const MaxFailedAttempts = 3

var (
	ErrAccountNotFound     = errors.New("account not found")
	ErrEmailTaken          = errors.New("email already used")
	ErrNationalIDTaken     = errors.New("national id already used")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrAccountBlocked      = errors.New("account is blocked")
	ErrNotLoggedIn         = errors.New("account is not logged in")
	ErrAlreadyLoggedOut    = errors.New("account is already logged out")
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// Account is the aggregate both the authentication and ledger flows operate
// on. The national id is immutable after creation and correlates the account
// with its entry (if any) in the blocklist service.
type Account struct {
	ID             string           `json:"id,omitempty"`
	NationalID     string           `json:"national_id"`
	Username       string           `json:"username"`
	Email          string           `json:"email"`
	PasswordHash   string           `json:"-"`
	PhoneNumber    string           `json:"phone_number"`
	Tier           SubscriptionTier `json:"tier"`
	Balance        float64          `json:"balance"`
	LoggedIn       bool             `json:"logged_in"`
	FailedAttempts int              `json:"failed_attempts"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}
