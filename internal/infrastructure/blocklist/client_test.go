package blocklist

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/bankaccess/account-system/internal/core/domain"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, time.Second, zerolog.Nop())
}

func TestClient_IsBlocked(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		if r.URL.Path != "/v1/blocklist/is-blocked/123456789" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"success","is_blocked":true}`))
	})

	blocked, err := client.IsBlocked(context.Background(), "123456789")
	if err != nil {
		t.Fatalf("IsBlocked failed: %v", err)
	}
	if !blocked {
		t.Fatalf("expected blocked=true")
	}
}

func TestClient_IsBlocked_False(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"success","is_blocked":false}`))
	})

	blocked, err := client.IsBlocked(context.Background(), "123456789")
	if err != nil {
		t.Fatalf("IsBlocked failed: %v", err)
	}
	if blocked {
		t.Fatalf("expected blocked=false")
	}
}

func TestClient_IsBlocked_MissingField(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"success"}`))
	})

	if _, err := client.IsBlocked(context.Background(), "123456789"); !errors.Is(err, domain.ErrBlocklistUnavailable) {
		t.Fatalf("expected ErrBlocklistUnavailable for a malformed response, got %v", err)
	}
}

func TestClient_IsBlocked_Non200(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	if _, err := client.IsBlocked(context.Background(), "123456789"); !errors.Is(err, domain.ErrBlocklistUnavailable) {
		t.Fatalf("expected ErrBlocklistUnavailable for a 500, got %v", err)
	}
}

func TestClient_IsBlocked_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	client := NewClient(srv.URL, time.Second, zerolog.Nop())

	if _, err := client.IsBlocked(context.Background(), "123456789"); !errors.Is(err, domain.ErrBlocklistUnavailable) {
		t.Fatalf("expected ErrBlocklistUnavailable for a dead peer, got %v", err)
	}
}

func TestClient_Block(t *testing.T) {
	var gotBody string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/blocklist/block" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		buf, _ := io.ReadAll(r.Body)
		gotBody = string(buf)
		_, _ = w.Write([]byte(`{"status":"success"}`))
	})

	if err := client.Block(context.Background(), "123456789", "alice"); err != nil {
		t.Fatalf("Block failed: %v", err)
	}
	if gotBody != `{"national_id":"123456789","username":"alice"}` {
		t.Fatalf("unexpected request body: %s", gotBody)
	}
}

func TestClient_Block_Conflict(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	})

	if err := client.Block(context.Background(), "123456789", "alice"); !errors.Is(err, domain.ErrAlreadyBlocked) {
		t.Fatalf("expected ErrAlreadyBlocked, got %v", err)
	}
}

func TestClient_Block_ServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	if err := client.Block(context.Background(), "123456789", "alice"); !errors.Is(err, domain.ErrBlockCallFailed) {
		t.Fatalf("expected ErrBlockCallFailed, got %v", err)
	}
}

func TestClient_Unblock(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/blocklist/unblock/123456789" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"status":"success"}`))
	})

	if err := client.Unblock(context.Background(), "123456789"); err != nil {
		t.Fatalf("Unblock failed: %v", err)
	}
}

func TestClient_Unblock_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	if err := client.Unblock(context.Background(), "123456789"); !errors.Is(err, domain.ErrBlockNotFound) {
		t.Fatalf("expected ErrBlockNotFound, got %v", err)
	}
}
