package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bankaccess/account-system/internal/core/ports"
)

// idempotencyKeyHeader carries the client-chosen replay-protection key for
// money movement. Optional; requests without it are applied unconditionally.
const idempotencyKeyHeader = "Idempotency-Key"

// LedgerHandler handles balance, credit, debit and logout.
type LedgerHandler struct {
	ledger ports.LedgerService
}

func NewLedgerHandler(ledger ports.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledger: ledger}
}

// Balance returns the current balance.
//
// @Summary      Check balance
// @Tags         ledger
// @Produce      json
// @Param        national_id  path      string  true  "National id"
// @Success      200          {object}  balanceResponse
// @Failure      401          {object}  errorResponse
// @Failure      404          {object}  errorResponse
// @Router       /v1/accounts/{national_id}/balance [get]
func (h *LedgerHandler) Balance(c echo.Context) error {
	nationalID := c.Param("national_id")

	balance, err := h.ledger.CheckBalance(c.Request().Context(), nationalID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, balanceResponse{NationalID: nationalID, Balance: balance})
}

// Credit adds funds to the account.
//
// @Summary      Credit an account
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Param        national_id      path      string         true   "National id"
// @Param        Idempotency-Key  header    string         false  "Replay-protection key"
// @Param        body             body      amountRequest  true   "Amount"
// @Success      200              {object}  movementResponse
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Failure      404              {object}  errorResponse
// @Router       /v1/accounts/{national_id}/credit [post]
func (h *LedgerHandler) Credit(c echo.Context) error {
	nationalID := c.Param("national_id")

	var req amountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	account, err := h.ledger.Credit(c.Request().Context(), nationalID, req.Amount, c.Request().Header.Get(idempotencyKeyHeader))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, movementResponse{NationalID: account.NationalID, NewBalance: account.Balance})
}

// Debit withdraws funds, guarded by the insufficient-funds rule.
//
// @Summary      Debit an account
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Param        national_id      path      string         true   "National id"
// @Param        Idempotency-Key  header    string         false  "Replay-protection key"
// @Param        body             body      amountRequest  true   "Amount"
// @Success      200              {object}  movementResponse
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Failure      404              {object}  errorResponse
// @Router       /v1/accounts/{national_id}/debit [post]
func (h *LedgerHandler) Debit(c echo.Context) error {
	nationalID := c.Param("national_id")

	var req amountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	account, err := h.ledger.Debit(c.Request().Context(), nationalID, req.Amount, c.Request().Header.Get(idempotencyKeyHeader))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, movementResponse{NationalID: account.NationalID, NewBalance: account.Balance})
}

// Logout clears the logged-in flag.
//
// @Summary      Sign out
// @Tags         ledger
// @Produce      json
// @Param        national_id  path      string  true  "National id"
// @Success      200          {object}  statusResponse
// @Failure      404          {object}  errorResponse
// @Failure      409          {object}  errorResponse
// @Router       /v1/accounts/{national_id}/logout [post]
func (h *LedgerHandler) Logout(c echo.Context) error {
	nationalID := c.Param("national_id")

	if err := h.ledger.Logout(c.Request().Context(), nationalID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, statusResponse{Status: "success", Message: "signed out"})
}
