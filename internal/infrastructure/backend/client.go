// Package backend implements the HTTP client for the trial backend API.
// The backend remains the final quota arbiter; everything the client does
// with these reads is advisory.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	sharederrors "guestgate/internal/shared/errors"
)

// MaxChatMessageChars is the longest guest chat message the backend accepts.
const MaxChatMessageChars = 500

// Client is the trial backend API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option is a function that configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(client *Client) {
		client.httpClient.Timeout = d
	}
}

// NewClient creates a new trial backend client for the given base URL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IssueTrialToken requests a fresh device-bound trial token.
func (c *Client) IssueTrialToken(ctx context.Context, info DeviceInfo) (string, error) {
	url := fmt.Sprintf("%s/trial/tokens", c.baseURL)

	var result TokenResult
	if err := c.doRequest(ctx, http.MethodPost, url, "", info, &result); err != nil {
		return "", fmt.Errorf("issue trial token: %w", err)
	}
	if result.DeviceToken == "" {
		return "", fmt.Errorf("issue trial token: empty token in response")
	}
	return result.DeviceToken, nil
}

// GetTrialConfig retrieves the shared trial configuration document.
// A missing document yields a not-found AppError so the caller can decide
// to seed it.
func (c *Client) GetTrialConfig(ctx context.Context) (*ConfigDocument, error) {
	url := fmt.Sprintf("%s/trial/config", c.baseURL)

	var doc ConfigDocument
	if err := c.doRequest(ctx, http.MethodGet, url, "", nil, &doc); err != nil {
		return nil, fmt.Errorf("get trial config: %w", err)
	}
	return &doc, nil
}

// PutTrialConfig writes the trial configuration document. Used by the
// idempotent seed operation only; a benign double write is acceptable for
// this single shared global document.
func (c *Client) PutTrialConfig(ctx context.Context, doc *ConfigDocument) error {
	url := fmt.Sprintf("%s/trial/config", c.baseURL)

	if err := c.doRequest(ctx, http.MethodPut, url, "", doc, nil); err != nil {
		return fmt.Errorf("put trial config: %w", err)
	}
	return nil
}

// GetTrialUsage retrieves the remote usage record for the device token.
func (c *Client) GetTrialUsage(ctx context.Context, deviceToken string) (*UsageDocument, error) {
	url := fmt.Sprintf("%s/trials/%s", c.baseURL, deviceToken)

	var doc UsageDocument
	if err := c.doRequest(ctx, http.MethodGet, url, deviceToken, nil, &doc); err != nil {
		return nil, fmt.Errorf("get trial usage: %w", err)
	}
	return &doc, nil
}

// GuestChat sends a guest chat message and returns the AI reply. The
// backend counts the message against the token's quota; the client-side
// allow decision that preceded this call was advisory only.
func (c *Client) GuestChat(ctx context.Context, deviceToken, message string) (string, error) {
	if len([]rune(message)) > MaxChatMessageChars {
		return "", sharederrors.NewValidationError("chat message too long",
			fmt.Sprintf("limit is %d characters", MaxChatMessageChars))
	}

	url := fmt.Sprintf("%s/trial/chat", c.baseURL)
	body := map[string]string{
		"device_token": deviceToken,
		"message":      message,
	}

	var result ChatResult
	if err := c.doRequest(ctx, http.MethodPost, url, deviceToken, body, &result); err != nil {
		return "", fmt.Errorf("guest chat: %w", err)
	}
	return result.Reply, nil
}

// doRequest performs an HTTP request and decodes the enveloped response.
func (c *Client) doRequest(ctx context.Context, method, url, deviceToken string, body any, result any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if deviceToken != "" {
		req.Header.Set("X-Device-Token", deviceToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return sharederrors.NewNotFoundError("resource not found", url)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("api error: status=%d body=%s", resp.StatusCode, string(respBody))
	}

	if result == nil {
		return nil
	}

	var apiResp apiResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}

	if !apiResp.Success {
		return fmt.Errorf("api error: %s", apiResp.Message)
	}

	if apiResp.Data == nil {
		return nil
	}

	// Re-marshal and unmarshal to convert Data to the target type
	dataBytes, err := json.Marshal(apiResp.Data)
	if err != nil {
		return fmt.Errorf("marshal data: %w", err)
	}

	if err := json.Unmarshal(dataBytes, result); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}

	return nil
}
