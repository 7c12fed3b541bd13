package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultBaseURL is the server the client talks to unless overridden.
const DefaultBaseURL = "http://localhost:8000"

// Client talks to the quiz service's HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// New creates a Client for the given base URL. An empty baseURL selects
// DefaultBaseURL.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListSets returns the question sets visible to the identity holding token:
// the identity's own sets plus public ones.
func (c *Client) ListSets(ctx context.Context, token string) ([]QuestionSet, error) {
	var sets []QuestionSet
	err := c.do(ctx, http.MethodGet, "/api/question-sets?include_public=true", token, nil, nil, &sets)
	if err != nil {
		return nil, fmt.Errorf("list question sets: %w", err)
	}
	return sets, nil
}

// ToggleVisibility flips a set between public and private. Only the owner
// may call this; the server enforces ownership.
func (c *Client) ToggleVisibility(ctx context.Context, token, setID string) (*ToggleResult, error) {
	var result ToggleResult
	path := fmt.Sprintf("/api/question-sets/%s/toggle-status", url.PathEscape(setID))
	if err := c.do(ctx, http.MethodPut, path, token, nil, nil, &result); err != nil {
		return nil, fmt.Errorf("toggle visibility: %w", err)
	}
	return &result, nil
}

// QuestionDetails loads the questions of a set. This endpoint requires no
// credential; the server contract is intentionally asymmetric here.
func (c *Client) QuestionDetails(ctx context.Context, setID string) ([]Question, error) {
	var details questionDetails
	path := fmt.Sprintf("/api/question-details/%s", url.PathEscape(setID))
	if err := c.do(ctx, http.MethodGet, path, "", nil, questionDetailsSchema, &details); err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	return details.Questions, nil
}

// SubmitTest sends the captured answers for scoring and returns the score.
func (c *Client) SubmitTest(ctx context.Context, token, setID string, sub Submission) (*SubmitResult, error) {
	var result SubmitResult
	path := fmt.Sprintf("/api/submit-test/%s", url.PathEscape(setID))
	if err := c.do(ctx, http.MethodPost, path, token, sub, nil, &result); err != nil {
		return nil, fmt.Errorf("submit answers: %w", err)
	}
	return &result, nil
}

// TestHistory returns all completed attempts of the identity holding token.
func (c *Client) TestHistory(ctx context.Context, token string) ([]HistoryRecord, error) {
	var hist testHistory
	if err := c.do(ctx, http.MethodGet, "/api/test-history", token, nil, testHistorySchema, &hist); err != nil {
		return nil, fmt.Errorf("fetch history: %w", err)
	}
	return hist.History, nil
}

// do performs one API request. A non-empty token is sent as a bearer
// credential. When schema is non-nil the response body is validated against
// it before decoding into out.
func (c *Client) do(ctx context.Context, method, path, token string, body any, schema *responseSchema, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return mapStatus(method+" "+path, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if schema != nil {
		if err := validatePayload(schema, data); err != nil {
			return err
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
