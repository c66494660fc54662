package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bankaccess/account-system/internal/core/domain"
	"github.com/bankaccess/account-system/internal/core/ports"
)

// AuthHandler handles sign-up, sign-in, and the block/unblock proxy.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type accountResponse struct {
	Account *domain.Account `json:"account"`
}

// SignUp creates a new account.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signUpRequest  true  "Account details"
// @Success      201   {object}  accountResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /v1/auth/signup [post]
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req signUpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	account, err := h.authService.SignUp(c.Request().Context(), ports.SignUpInput{
		NationalID:     req.NationalID,
		Username:       req.Username,
		Email:          req.Email,
		Password:       req.Password,
		PhoneNumber:    req.PhoneNumber,
		Tier:           domain.SubscriptionTier(req.Tier),
		InitialBalance: req.Balance,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, accountResponse{Account: account})
}

// SignIn authenticates an account and marks it logged in.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signInRequest  true  "Credentials"
// @Success      200   {object}  accountResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Router       /v1/auth/signin [post]
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req signInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	account, err := h.authService.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, accountResponse{Account: account})
}

// Block proxies a block request to the blocklist service.
//
// @Summary      Block an account
// @Tags         auth
// @Produce      json
// @Param        national_id  path      string  true  "National id"
// @Success      200          {object}  statusResponse
// @Failure      404          {object}  errorResponse
// @Failure      502          {object}  errorResponse
// @Router       /v1/auth/block/{national_id} [post]
func (h *AuthHandler) Block(c echo.Context) error {
	nationalID := c.Param("national_id")

	if err := h.authService.BlockAccount(c.Request().Context(), nationalID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, statusResponse{Status: "success", Message: "account blocked"})
}

// Unblock proxies an unblock request and resets the failed-attempt counter.
//
// @Summary      Unblock an account
// @Tags         auth
// @Produce      json
// @Param        national_id  path      string  true  "National id"
// @Success      200          {object}  statusResponse
// @Failure      404          {object}  errorResponse
// @Failure      502          {object}  errorResponse
// @Router       /v1/auth/unblock/{national_id} [post]
func (h *AuthHandler) Unblock(c echo.Context) error {
	nationalID := c.Param("national_id")

	if err := h.authService.UnblockAccount(c.Request().Context(), nationalID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, statusResponse{Status: "success", Message: "account unblocked"})
}
