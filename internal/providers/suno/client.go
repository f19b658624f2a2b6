package suno

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"songrelay/internal/domain"
	"songrelay/internal/infra"
)

const (
	// DefaultBaseURL is the public sunoapi.org endpoint.
	DefaultBaseURL = "https://api.sunoapi.org"

	// PlaceholderCallbackURL is sent when no public base URL is configured.
	// The provider requires a callback URL; this one never reaches us, so
	// clients fall back to polling.
	PlaceholderCallbackURL = "https://example.com/callback"

	generatePath   = "/api/v1/generate"
	recordInfoPath = "/api/v1/generate/record-info"
	callbackPath   = "/api/callback"
)

// Options configures the Suno client.
type Options struct {
	APIKey         string
	BaseURL        string
	PublicBaseURL  string
	HTTPClient     *http.Client
	Logger         *infra.Logger
	RequestTimeout time.Duration
}

// Client talks to the sunoapi.org generation endpoints.
type Client struct {
	apiKey      string
	baseURL     string
	callbackURL string
	httpClient  *http.Client
	logger      *infra.Logger
}

// SubmissionResult is the provider's answer to a generation request.
type SubmissionResult struct {
	TaskID string
	Raw    json.RawMessage
}

type generatePayload struct {
	CustomMode   bool   `json:"customMode"`
	Instrumental bool   `json:"instrumental"`
	Prompt       string `json:"prompt,omitempty"`
	Style        string `json:"style,omitempty"`
	Title        string `json:"title,omitempty"`
	Model        string `json:"model,omitempty"`
	CallBackURL  string `json:"callBackUrl"`
}

type submitResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data struct {
		TaskID string `json:"taskId"`
		ID     string `json:"id"`
	} `json:"data"`
}

// NewClient constructs a client with defaults applied.
func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.RequestTimeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		apiKey:      strings.TrimSpace(opts.APIKey),
		baseURL:     baseURL,
		callbackURL: CallbackURL(opts.PublicBaseURL),
		httpClient:  httpClient,
		logger:      infra.OrDiscard(opts.Logger),
	}
}

// CallbackURL derives the webhook URL handed to the provider.
func CallbackURL(publicBaseURL string) string {
	base := strings.TrimRight(strings.TrimSpace(publicBaseURL), "/")
	if base == "" {
		return PlaceholderCallbackURL
	}
	return base + callbackPath
}

// HasCredentials reports whether the client can perform remote calls.
func (c *Client) HasCredentials() bool {
	return c.apiKey != ""
}

// PollingMode reports whether results can only be obtained by polling.
func (c *Client) PollingMode() bool {
	return c.callbackURL == PlaceholderCallbackURL
}

// Submit forwards a generation request. It never retries.
func (c *Client) Submit(ctx context.Context, req domain.GenerationRequest) (*SubmissionResult, error) {
	if !c.HasCredentials() {
		return nil, domain.ErrUpstreamUnavailable
	}
	model := strings.TrimSpace(req.Model)
	if model == "" {
		model = domain.DefaultModel
	}
	payload := generatePayload{
		CustomMode:   req.CustomMode,
		Instrumental: req.Instrumental,
		Prompt:       req.Prompt,
		Style:        req.Style,
		Title:        req.Title,
		Model:        model,
		CallBackURL:  c.callbackURL,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("suno: encode request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+generatePath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("suno: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	raw, err := c.do(httpReq)
	if err != nil {
		return nil, err
	}

	var decoded submitResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("suno: decode response: %w", err)
	}
	taskID := strings.TrimSpace(decoded.Data.TaskID)
	if taskID == "" {
		taskID = strings.TrimSpace(decoded.Data.ID)
	}
	c.logger.Debug().
		Str("model", model).
		Str("task_id", taskID).
		Int("code", decoded.Code).
		Bool("polling_mode", c.PollingMode()).
		Msg("suno: generation submitted")
	return &SubmissionResult{TaskID: taskID, Raw: raw}, nil
}

// FetchStatus queries the provider for the current record of a task and
// returns its body verbatim.
func (c *Client) FetchStatus(ctx context.Context, taskID string) (json.RawMessage, error) {
	if !c.HasCredentials() {
		return nil, domain.ErrUpstreamUnavailable
	}
	endpoint := c.baseURL + recordInfoPath + "?" + url.Values{"taskId": {taskID}}.Encode()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("suno: build request: %w", err)
	}
	raw, err := c.do(httpReq)
	if err != nil {
		return nil, err
	}
	if !json.Valid(raw) {
		return nil, errors.New("suno: decode response: invalid json")
	}
	c.logger.Debug().Str("task_id", taskID).Msg("suno: record info fetched")
	return raw, nil
}

func (c *Client) do(httpReq *http.Request) ([]byte, error) {
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("suno: http request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("suno: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn().
			Str("path", httpReq.URL.Path).
			Int("status", resp.StatusCode).
			Msg("suno: upstream rejected request")
		return nil, &domain.UpstreamRejectedError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	return raw, nil
}
