package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth request / response types ---

// signUpRequest carries the boundary shape rules from the account model:
// 9-digit national id, 10-digit phone, username 3-50 chars, password at
// least 8.
type signUpRequest struct {
	NationalID  string  `json:"national_id"  validate:"required,len=9,numeric"`
	Username    string  `json:"username"     validate:"required,min=3,max=50"`
	Email       string  `json:"email"        validate:"required,email"`
	Password    string  `json:"password"     validate:"required,min=8"`
	PhoneNumber string  `json:"phone_number" validate:"required,len=10,numeric"`
	Tier        string  `json:"tier"         validate:"required,oneof=golden youth regular"`
	Balance     float64 `json:"balance"      validate:"gte=0"`
}

type signInRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// --- Ledger request / response types ---

type amountRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

type balanceResponse struct {
	NationalID string  `json:"national_id"`
	Balance    float64 `json:"balance"`
}

type movementResponse struct {
	NationalID string  `json:"national_id"`
	NewBalance float64 `json:"new_balance"`
}

// --- Blocklist request / response types ---

type blockEntryRequest struct {
	NationalID string `json:"national_id" validate:"required,len=9,numeric"`
	Username   string `json:"username"    validate:"required"`
}

type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type blockStatusResponse struct {
	Status    string `json:"status"`
	IsBlocked bool   `json:"is_blocked"`
}
