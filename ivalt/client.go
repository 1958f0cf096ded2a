package ivalt

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the production iVALT API endpoint.
	DefaultBaseURL = "https://api.ivalt.com"
	// DefaultTimeout bounds a single API round-trip. It is independent of
	// the per-flow polling ceilings, which bound the number of round-trips.
	DefaultTimeout = 300 * time.Second

	submitPath = "/biometric-auth-request"
	statusPath = "/biometric-geo-fence-auth-results"

	// Error payloads are small; anything larger is garbage.
	maxResponseBody = 64 << 10
)

// ErrMissingAPIKey is returned by NewClient when no API key is configured.
var ErrMissingAPIKey = errors.New("ivalt api key required")

// ErrTransport wraps network failures and non-success submit responses.
var ErrTransport = errors.New("ivalt transport failure")

// Config carries the externally owned configuration surface of the API
// client. The API key is a secret resolved once by the host before the
// engine is constructed; there is no runtime discovery.
type Config struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client is a stateless iVALT API client. It is safe for concurrent use.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient validates cfg and builds a client. BaseURL and Timeout fall back
// to [DefaultBaseURL] and [DefaultTimeout]; the API key is mandatory.
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		http:    httpClient,
	}, nil
}

type challengeRequest struct {
	Mobile string `json:"mobile"`
}

// SubmitChallenge asks the API to push a biometric approval request to the
// device registered for mobile (full number, country code included). The API
// issues no transaction identifier of its own: on success the submitted
// number is returned and doubles as the correlation key for later status
// checks. Any non-200 response is a transport-level failure.
func (c *Client) SubmitChallenge(ctx context.Context, mobile string) (string, error) {
	resp, body, err := c.post(ctx, submitPath, mobile)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: submit returned status %d: %s", ErrTransport, resp.StatusCode, truncate(body))
	}
	return mobile, nil
}

// CheckStatus fetches the current decision for a previously submitted
// challenge and classifies it. transactionID is the phone number returned by
// [Client.SubmitChallenge]. The returned error covers transport failures
// only; remote denials and pending states surface through the [Outcome].
func (c *Client) CheckStatus(ctx context.Context, transactionID string) (Outcome, error) {
	resp, body, err := c.post(ctx, statusPath, transactionID)
	if err != nil {
		return OutcomeError, err
	}
	return Classify(resp.StatusCode, body), nil
}

func (c *Client) post(ctx context.Context, path, mobile string) (*http.Response, []byte, error) {
	payload, err := json.Marshal(challengeRequest{Mobile: mobile})
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	return resp, body, nil
}

func truncate(body []byte) string {
	const max = 256
	if len(body) > max {
		body = body[:max]
	}
	return string(body)
}
