// Package blocklist implements the HTTP client the accounts service uses to
// reach the blocklist service. The call is a blocking request with a bounded
// timeout and no retry; the parent operation fails on any non-success
// outcome.
package blocklist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/bankaccess/account-system/internal/core/domain"
)

const defaultTimeout = 5 * time.Second

// Client talks to the blocklist service's REST surface.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// NewClient creates a Client for the service at baseURL. A non-positive
// timeout falls back to defaultTimeout.
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

type isBlockedResponse struct {
	IsBlocked *bool `json:"is_blocked"`
}

// IsBlocked fetches the blocked-status of a national id. A transport error,
// a non-200 status, or a body missing the is_blocked field all wrap
// domain.ErrBlocklistUnavailable: when the status is unknown, sign-in must
// not proceed.
func (c *Client) IsBlocked(ctx context.Context, nationalID string) (bool, error) {
	endpoint := c.baseURL + "/v1/blocklist/is-blocked/" + url.PathEscape(nationalID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, fmt.Errorf("%w: build request: %v", domain.ErrBlocklistUnavailable, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("national_id", nationalID).Msg("blocklist unreachable")
		return false, fmt.Errorf("%w: %v", domain.ErrBlocklistUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("%w: is-blocked returned %d", domain.ErrBlocklistUnavailable, resp.StatusCode)
	}

	var body isBlockedResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false, fmt.Errorf("%w: decode response: %v", domain.ErrBlocklistUnavailable, err)
	}
	if body.IsBlocked == nil {
		return false, fmt.Errorf("%w: response missing is_blocked field", domain.ErrBlocklistUnavailable)
	}
	return *body.IsBlocked, nil
}

// Ping probes the peer's liveness endpoint. Used by the readiness handler.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("blocklist health returned %d", resp.StatusCode)
	}
	return nil
}

type blockRequest struct {
	NationalID string `json:"national_id"`
	Username   string `json:"username"`
}

// Block asks the peer to deny the national id.
func (c *Client) Block(ctx context.Context, nationalID, username string) error {
	payload, err := json.Marshal(blockRequest{NationalID: nationalID, Username: username})
	if err != nil {
		return fmt.Errorf("%w: encode request: %v", domain.ErrBlockCallFailed, err)
	}

	endpoint := c.baseURL + "/v1/blocklist/block"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: build request: %v", domain.ErrBlockCallFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrBlockCallFailed, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusConflict:
		return domain.ErrAlreadyBlocked
	default:
		return fmt.Errorf("%w: block returned %d", domain.ErrBlockCallFailed, resp.StatusCode)
	}
}

// Unblock lifts the denial for the national id.
func (c *Client) Unblock(ctx context.Context, nationalID string) error {
	endpoint := c.baseURL + "/v1/blocklist/unblock/" + url.PathEscape(nationalID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", domain.ErrBlockCallFailed, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrBlockCallFailed, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrBlockNotFound
	default:
		return fmt.Errorf("%w: unblock returned %d", domain.ErrBlockCallFailed, resp.StatusCode)
	}
}
