package rest

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
	jsoniter "github.com/json-iterator/go"
	"golang.org/x/time/rate"

	"github.com/Gimmir/un1t-mobile-app-sub000/internal/config"
	ierr "github.com/Gimmir/un1t-mobile-app-sub000/internal/errors"
	"github.com/Gimmir/un1t-mobile-app-sub000/internal/logger"
	"github.com/Gimmir/un1t-mobile-app-sub000/internal/types"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Client talks to the studio backend. It injects the bearer token, tags
// each request with an id, rate-limits outbound calls, and retries transient
// transport failures. Responses are decoded into untyped snapshots; the
// domain normalizers own all interpretation of their shape.
type Client struct {
	http    *retryablehttp.Client
	baseURL string
	token   string
	limiter *rate.Limiter
	logger  *logger.Logger
}

// NewClient creates a backend client from configuration
func NewClient(cfg *config.Configuration, log *logger.Logger) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = cfg.API.RetryMax
	rc.HTTPClient.Timeout = cfg.API.Timeout
	rc.Logger = nil

	rps := cfg.API.RequestsPerSecond
	if rps <= 0 {
		rps = 5
	}

	return &Client{
		http:    rc,
		baseURL: strings.TrimRight(cfg.API.BaseURL, "/"),
		token:   cfg.Session.BearerToken,
		limiter: rate.NewLimiter(rate.Limit(rps), int(math.Ceil(rps))),
		logger:  log,
	}
}

func (c *Client) do(ctx context.Context, method, path string, body any, headers map[string]string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Request cancelled while waiting for rate limiter").
			Mark(ierr.ErrRateLimited)
	}

	var payload io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, ierr.WithError(err).
				WithHint("Could not encode request body").
				Mark(ierr.ErrValidation)
		}
		payload = strings.NewReader(string(encoded))
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Could not build backend request").
			Mark(ierr.ErrHTTPClient)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", types.GenerateUUIDWithPrefix("req"))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Could not reach the studio backend").
			WithReportableDetails(map[string]any{
				"method": method,
				"path":   path,
			}).
			Mark(ierr.ErrHTTPClient)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Could not read backend response").
			Mark(ierr.ErrHTTPClient)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ierr.NewError(fmt.Sprintf("%s %s returned 404", method, path)).
			WithHint("The requested resource does not exist").
			Mark(ierr.ErrNotFound)
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, ierr.NewError(fmt.Sprintf("%s %s returned 429", method, path)).
			WithHint("The backend is rate limiting this client").
			Mark(ierr.ErrRateLimited)
	case resp.StatusCode >= 400:
		return nil, ierr.NewError(fmt.Sprintf("%s %s returned %d", method, path, resp.StatusCode)).
			WithHint("The studio backend rejected the request").
			WithReportableDetails(map[string]any{
				"status": resp.StatusCode,
				"body":   string(respBody),
			}).
			Mark(ierr.ErrHTTPClient)
	}

	return respBody, nil
}

// getJSON fetches a path and decodes the response into an untyped snapshot
func (c *Client) getJSON(ctx context.Context, path string) (any, error) {
	body, err := c.do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, ierr.WithError(err).
			WithHint("The backend returned a non-JSON response").
			Mark(ierr.ErrHTTPClient)
	}
	return payload, nil
}

// postJSON posts a body and decodes the response into an untyped snapshot
func (c *Client) postJSON(ctx context.Context, path string, body any, headers map[string]string) (any, error) {
	respBody, err := c.do(ctx, http.MethodPost, path, body, headers)
	if err != nil {
		return nil, err
	}
	if len(respBody) == 0 {
		return nil, nil
	}

	var payload any
	if err := json.Unmarshal(respBody, &payload); err != nil {
		return nil, ierr.WithError(err).
			WithHint("The backend returned a non-JSON response").
			Mark(ierr.ErrHTTPClient)
	}
	return payload, nil
}

func (c *Client) delete(ctx context.Context, path string) error {
	_, err := c.do(ctx, http.MethodDelete, path, nil, nil)
	return err
}
