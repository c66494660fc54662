package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bankaccess/account-system/internal/api"
	"github.com/bankaccess/account-system/internal/api/handler"
	"github.com/bankaccess/account-system/internal/core/domain"
	"github.com/bankaccess/account-system/internal/core/ports"
)

type stubBlockService struct {
	blockFn     func(ctx context.Context, nationalID, username string) error
	unblockFn   func(ctx context.Context, nationalID string) error
	isBlockedFn func(ctx context.Context, nationalID string) (bool, error)
}

func (s *stubBlockService) Block(ctx context.Context, nationalID, username string) error {
	return s.blockFn(ctx, nationalID, username)
}

func (s *stubBlockService) Unblock(ctx context.Context, nationalID string) error {
	return s.unblockFn(ctx, nationalID)
}

func (s *stubBlockService) IsBlocked(ctx context.Context, nationalID string) (bool, error) {
	return s.isBlockedFn(ctx, nationalID)
}

func newBlocklistEcho(svc ports.BlockService) *echo.Echo {
	e := echo.New()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(zerolog.Nop())

	h := handler.NewBlocklistHandler(svc)
	e.POST("/v1/blocklist/block", h.Block)
	e.POST("/v1/blocklist/unblock/:national_id", h.Unblock)
	e.GET("/v1/blocklist/is-blocked/:national_id", h.IsBlocked)
	return e
}

func TestBlocklistHandler_Block(t *testing.T) {
	e := newBlocklistEcho(&stubBlockService{
		blockFn: func(_ context.Context, nationalID, username string) error {
			if nationalID != "123456789" || username != "alice" {
				t.Fatalf("unexpected args: %s %s", nationalID, username)
			}
			return nil
		},
	})

	rec := postJSON(e, "/v1/blocklist/block", `{"national_id":"123456789","username":"alice"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestBlocklistHandler_Block_AlreadyBlocked(t *testing.T) {
	e := newBlocklistEcho(&stubBlockService{
		blockFn: func(_ context.Context, _, _ string) error {
			return domain.ErrAlreadyBlocked
		},
	})

	rec := postJSON(e, "/v1/blocklist/block", `{"national_id":"123456789","username":"alice"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestBlocklistHandler_Block_ShapeValidation(t *testing.T) {
	e := newBlocklistEcho(&stubBlockService{
		blockFn: func(_ context.Context, _, _ string) error {
			t.Fatalf("service must not be called on invalid input")
			return nil
		},
	})

	rec := postJSON(e, "/v1/blocklist/block", `{"national_id":"12ab","username":"alice"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestBlocklistHandler_Unblock_NotFound(t *testing.T) {
	e := newBlocklistEcho(&stubBlockService{
		unblockFn: func(_ context.Context, _ string) error {
			return domain.ErrBlockNotFound
		},
	})

	rec := postJSON(e, "/v1/blocklist/unblock/123456789", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestBlocklistHandler_IsBlocked(t *testing.T) {
	e := newBlocklistEcho(&stubBlockService{
		isBlockedFn: func(_ context.Context, nationalID string) (bool, error) {
			return nationalID == "123456789", nil
		},
	})

	for _, tc := range []struct {
		id   string
		want bool
	}{
		{"123456789", true},
		{"987654321", false},
	} {
		req := httptest.NewRequest(http.MethodGet, "/v1/blocklist/is-blocked/"+tc.id, nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("id %s: expected 200, got %d", tc.id, rec.Code)
		}

		var resp map[string]any
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid json: %v", err)
		}
		got, ok := resp["is_blocked"].(bool)
		if !ok {
			t.Fatalf("id %s: response missing is_blocked field: %s", tc.id, rec.Body.String())
		}
		if got != tc.want {
			t.Fatalf("id %s: expected is_blocked=%v, got %v", tc.id, tc.want, got)
		}
	}
}
