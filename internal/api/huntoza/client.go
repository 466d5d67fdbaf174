package huntoza

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	apiPrefix   = "/api/v1"
	refreshPath = "/auth/refresh-token"
)

// Client is the single shared request pipeline to the Huntoza API. It attaches
// the stored bearer token to every request and runs a single-flight refresh
// when a request comes back 401.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
	tokens     *TokenStore
	userAgent  string

	refreshMu sync.Mutex
	refresh   *refreshCall
}

// refreshCall is one in-flight refresh. Concurrent 401 handlers wait on done
// and share err; at most one refresh request is ever on the wire.
type refreshCall struct {
	done chan struct{}
	err  error
}

func New(baseURL string, timeout time.Duration, tokens *TokenStore, logger *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 100,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		logger:    logger,
		tokens:    tokens,
		userAgent: "Huntoza-Client/1.0",
	}
}

func (c *Client) Tokens() *TokenStore {
	return c.tokens
}

// do runs one API request and decodes the response envelope into dest. On a
// 401 for anything but the refresh endpoint itself, and only while a token is
// stored, it waits for the shared refresh and retries once with the new token.
func (c *Client) do(ctx context.Context, method, path string, params url.Values, body, dest interface{}) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
	}

	status, respBody, err := c.send(ctx, method, path, params, payload, c.tokens.Access())
	if err != nil {
		return err
	}

	if status == http.StatusUnauthorized && path != refreshPath && c.tokens.Access() != "" {
		token, err := c.awaitRefresh(ctx)
		if err != nil {
			return err
		}

		status, respBody, err = c.send(ctx, method, path, params, payload, token)
		if err != nil {
			return err
		}
	}

	if status >= 200 && status < 300 {
		if dest == nil || len(respBody) == 0 {
			return nil
		}
		if err := json.Unmarshal(respBody, dest); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
		return nil
	}

	c.logger.Error("API error",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", status),
		zap.String("body", string(respBody)),
	)

	return apiError(status, respBody)
}

func (c *Client) send(ctx context.Context, method, path string, params url.Values, payload []byte, token string) (int, []byte, error) {
	fullURL := c.baseURL + apiPrefix + path
	if params != nil {
		fullURL += "?" + params.Encode()
	}

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("request failed",
			zap.String("url", fullURL),
			zap.Error(err),
		)
		return 0, nil, fmt.Errorf("unable to reach the server: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("read response body: %w", err)
	}

	c.logger.Debug("request completed",
		zap.String("method", method),
		zap.String("url", fullURL),
		zap.Int("status", resp.StatusCode),
	)

	return resp.StatusCode, respBody, nil
}

// awaitRefresh joins the in-flight refresh, starting one if none is running.
func (c *Client) awaitRefresh(ctx context.Context) (string, error) {
	c.refreshMu.Lock()
	call := c.refresh
	if call == nil {
		call = &refreshCall{done: make(chan struct{})}
		c.refresh = call
		go c.runRefresh(call)
	}
	c.refreshMu.Unlock()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-call.done:
	}

	if call.err != nil {
		return "", call.err
	}

	return c.tokens.Access(), nil
}

func (c *Client) runRefresh(call *refreshCall) {
	ctx, cancel := context.WithTimeout(context.Background(), c.httpClient.Timeout)
	defer cancel()

	call.err = c.refreshTokens(ctx)

	c.refreshMu.Lock()
	c.refresh = nil
	c.refreshMu.Unlock()

	close(call.done)
}

func (c *Client) refreshTokens(ctx context.Context) error {
	refresh := c.tokens.Refresh()
	if refresh == "" {
		c.tokens.Clear()
		return ErrSessionExpired
	}

	var resp authResponse
	err := c.do(ctx, http.MethodPost, refreshPath, nil, refreshRequest{RefreshToken: refresh}, &resp)
	if err != nil {
		c.logger.Error("token refresh failed", zap.Error(err))
		c.tokens.Clear()
		return fmt.Errorf("%w: %v", ErrSessionExpired, err)
	}

	c.tokens.Set(resp.Token, resp.RefreshToken)
	c.logger.Info("access token refreshed")

	return nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, dest interface{}) error {
	return c.do(ctx, http.MethodGet, path, params, nil, dest)
}

func (c *Client) post(ctx context.Context, path string, body, dest interface{}) error {
	return c.do(ctx, http.MethodPost, path, nil, body, dest)
}

func (c *Client) patch(ctx context.Context, path string, body, dest interface{}) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, dest)
}

func (c *Client) delete(ctx context.Context, path string, dest interface{}) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, dest)
}
