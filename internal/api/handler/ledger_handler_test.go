package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bankaccess/account-system/internal/api"
	"github.com/bankaccess/account-system/internal/api/handler"
	"github.com/bankaccess/account-system/internal/core/domain"
	"github.com/bankaccess/account-system/internal/core/ports"
)

type stubLedgerService struct {
	balanceFn func(ctx context.Context, nationalID string) (float64, error)
	creditFn  func(ctx context.Context, nationalID string, amount float64, key string) (*domain.Account, error)
	debitFn   func(ctx context.Context, nationalID string, amount float64, key string) (*domain.Account, error)
	logoutFn  func(ctx context.Context, nationalID string) error
}

func (s *stubLedgerService) CheckBalance(ctx context.Context, nationalID string) (float64, error) {
	return s.balanceFn(ctx, nationalID)
}

func (s *stubLedgerService) Credit(ctx context.Context, nationalID string, amount float64, key string) (*domain.Account, error) {
	return s.creditFn(ctx, nationalID, amount, key)
}

func (s *stubLedgerService) Debit(ctx context.Context, nationalID string, amount float64, key string) (*domain.Account, error) {
	return s.debitFn(ctx, nationalID, amount, key)
}

func (s *stubLedgerService) Logout(ctx context.Context, nationalID string) error {
	return s.logoutFn(ctx, nationalID)
}

func newLedgerEcho(svc ports.LedgerService) *echo.Echo {
	e := echo.New()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(zerolog.Nop())

	h := handler.NewLedgerHandler(svc)
	e.GET("/v1/accounts/:national_id/balance", h.Balance)
	e.POST("/v1/accounts/:national_id/credit", h.Credit)
	e.POST("/v1/accounts/:national_id/debit", h.Debit)
	e.POST("/v1/accounts/:national_id/logout", h.Logout)
	return e
}

func TestLedgerHandler_Balance(t *testing.T) {
	e := newLedgerEcho(&stubLedgerService{
		balanceFn: func(_ context.Context, nationalID string) (float64, error) {
			if nationalID != "123456789" {
				t.Fatalf("unexpected national id: %s", nationalID)
			}
			return 42.5, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/accounts/123456789/balance", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["balance"] != 42.5 {
		t.Fatalf("unexpected balance: %v", resp["balance"])
	}
}

func TestLedgerHandler_Balance_NotLoggedIn(t *testing.T) {
	e := newLedgerEcho(&stubLedgerService{
		balanceFn: func(_ context.Context, _ string) (float64, error) {
			return 0, domain.ErrNotLoggedIn
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/accounts/123456789/balance", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestLedgerHandler_Credit_PassesIdempotencyKey(t *testing.T) {
	var gotKey string
	e := newLedgerEcho(&stubLedgerService{
		creditFn: func(_ context.Context, _ string, amount float64, key string) (*domain.Account, error) {
			gotKey = key
			return &domain.Account{NationalID: "123456789", Balance: 100 + amount}, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/v1/accounts/123456789/credit", strings.NewReader(`{"amount":50}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("Idempotency-Key", "req-1")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotKey != "req-1" {
		t.Fatalf("expected idempotency key to reach the service, got %q", gotKey)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["new_balance"] != 150.0 {
		t.Fatalf("unexpected new balance: %v", resp["new_balance"])
	}
}

func TestLedgerHandler_Credit_RejectsNonPositiveAmount(t *testing.T) {
	e := newLedgerEcho(&stubLedgerService{
		creditFn: func(_ context.Context, _ string, _ float64, _ string) (*domain.Account, error) {
			t.Fatalf("service must not be called for an invalid amount")
			return nil, nil
		},
	})

	for _, body := range []string{`{"amount":0}`, `{"amount":-5}`, `{}`} {
		rec := postJSON(e, "/v1/accounts/123456789/credit", body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, rec.Code)
		}
	}
}

func TestLedgerHandler_Debit_Insufficient(t *testing.T) {
	e := newLedgerEcho(&stubLedgerService{
		debitFn: func(_ context.Context, _ string, _ float64, _ string) (*domain.Account, error) {
			return nil, domain.ErrInsufficientBalance
		},
	})

	rec := postJSON(e, "/v1/accounts/123456789/debit", `{"amount":100.01}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "insufficient balance") {
		t.Fatalf("expected insufficient balance message, got %s", rec.Body.String())
	}
}

func TestLedgerHandler_Logout_AlreadyLoggedOut(t *testing.T) {
	e := newLedgerEcho(&stubLedgerService{
		logoutFn: func(_ context.Context, _ string) error {
			return domain.ErrAlreadyLoggedOut
		},
	})

	rec := postJSON(e, "/v1/accounts/123456789/logout", "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}
