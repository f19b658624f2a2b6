package suno

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"songrelay/internal/domain"
)

type responseStub struct {
	status int
	body   []byte
}

type captureTransport struct {
	mu        sync.Mutex
	responses map[string]responseStub
	requests  []*http.Request
	bodies    [][]byte
}

func newCaptureTransport() *captureTransport {
	return &captureTransport{responses: map[string]responseStub{}}
}

func (c *captureTransport) setJSONResponse(path string, status int, payload any) {
	data, _ := json.Marshal(payload)
	c.responses[path] = responseStub{status: status, body: data}
}

func (c *captureTransport) setRawResponse(path string, status int, body string) {
	c.responses[path] = responseStub{status: status, body: []byte(body)}
}

func (c *captureTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var body []byte
	if req.Body != nil {
		body, _ = io.ReadAll(req.Body)
	}
	c.requests = append(c.requests, req)
	c.bodies = append(c.bodies, body)
	stub, ok := c.responses[req.URL.Path]
	if !ok {
		return nil, errors.New("unexpected request to " + req.URL.String())
	}
	return &http.Response{
		StatusCode: stub.status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewReader(stub.body)),
		Request:    req,
	}, nil
}

func (c *captureTransport) lastBody(t *testing.T) map[string]any {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	require.NotEmpty(t, c.bodies, "no request captured")
	var out map[string]any
	require.NoError(t, json.Unmarshal(c.bodies[len(c.bodies)-1], &out))
	return out
}

func newTestClient(transport *captureTransport, apiKey, publicBase string) *Client {
	return NewClient(Options{
		APIKey:        apiKey,
		BaseURL:       "https://suno.test/",
		PublicBaseURL: publicBase,
		HTTPClient:    &http.Client{Transport: transport},
	})
}

func TestSubmitSendsProviderPayload(t *testing.T) {
	transport := newCaptureTransport()
	transport.setJSONResponse("/api/v1/generate", http.StatusOK, map[string]any{
		"code": 200,
		"msg":  "success",
		"data": map[string]any{"taskId": "task-123"},
	})
	client := newTestClient(transport, "secret", "https://relay.example.com/")

	res, err := client.Submit(context.Background(), domain.GenerationRequest{
		Prompt: "a cat song",
		Model:  "V4_5",
	})
	require.NoError(t, err)
	assert.Equal(t, "task-123", res.TaskID)
	assert.JSONEq(t, `{"code":200,"msg":"success","data":{"taskId":"task-123"}}`, string(res.Raw))

	require.Len(t, transport.requests, 1)
	req := transport.requests[0]
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "Bearer secret", req.Header.Get("Authorization"))
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))

	body := transport.lastBody(t)
	assert.Equal(t, "a cat song", body["prompt"])
	assert.Equal(t, "V4_5", body["model"])
	assert.Equal(t, false, body["customMode"])
	assert.Equal(t, false, body["instrumental"])
	assert.Equal(t, "https://relay.example.com/api/callback", body["callBackUrl"])
	assert.NotContains(t, body, "style")
	assert.NotContains(t, body, "title")
}

func TestSubmitUsesPlaceholderCallbackInPollingMode(t *testing.T) {
	transport := newCaptureTransport()
	transport.setJSONResponse("/api/v1/generate", http.StatusOK, map[string]any{
		"code": 200,
		"data": map[string]any{"id": "legacy-id"},
	})
	client := newTestClient(transport, "secret", "")
	require.True(t, client.PollingMode())

	res, err := client.Submit(context.Background(), domain.GenerationRequest{Prompt: "x"})
	require.NoError(t, err)
	assert.Equal(t, "legacy-id", res.TaskID)

	body := transport.lastBody(t)
	assert.Equal(t, PlaceholderCallbackURL, body["callBackUrl"])
	assert.Equal(t, domain.DefaultModel, body["model"])
}

func TestSubmitWithoutCredentialNeverCallsUpstream(t *testing.T) {
	transport := newCaptureTransport()
	client := newTestClient(transport, "  ", "")

	_, err := client.Submit(context.Background(), domain.GenerationRequest{Prompt: "x"})
	require.ErrorIs(t, err, domain.ErrUpstreamUnavailable)

	_, err = client.FetchStatus(context.Background(), "task-1")
	require.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
	assert.Empty(t, transport.requests)
}

func TestSubmitPreservesRejectedBody(t *testing.T) {
	transport := newCaptureTransport()
	transport.setRawResponse("/api/v1/generate", http.StatusUnauthorized, `{"code":401,"msg":"invalid key"}`)
	client := newTestClient(transport, "secret", "")

	_, err := client.Submit(context.Background(), domain.GenerationRequest{Prompt: "x"})
	var rejected *domain.UpstreamRejectedError
	require.True(t, errors.As(err, &rejected))
	assert.Equal(t, http.StatusUnauthorized, rejected.StatusCode)
	assert.Equal(t, `{"code":401,"msg":"invalid key"}`, rejected.Body)
	assert.Contains(t, err.Error(), "invalid key")
	assert.Len(t, transport.requests, 1, "client must not retry")
}

func TestFetchStatusReturnsBodyVerbatim(t *testing.T) {
	transport := newCaptureTransport()
	raw := `{"code":200,"data":{"taskId":"XYZ","status":"SUCCESS","response":{"sunoData":[{"audioUrl":"http://x"}]}}}`
	transport.setRawResponse("/api/v1/generate/record-info", http.StatusOK, raw)
	client := newTestClient(transport, "secret", "")

	got, err := client.FetchStatus(context.Background(), "XYZ")
	require.NoError(t, err)
	assert.Equal(t, raw, string(got))

	req := transport.requests[0]
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "XYZ", req.URL.Query().Get("taskId"))
	assert.Equal(t, "Bearer secret", req.Header.Get("Authorization"))
}

func TestFetchStatusRejectsInvalidJSON(t *testing.T) {
	transport := newCaptureTransport()
	transport.setRawResponse("/api/v1/generate/record-info", http.StatusOK, "<html>oops</html>")
	client := newTestClient(transport, "secret", "")

	_, err := client.FetchStatus(context.Background(), "XYZ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "suno: decode response")
}

func TestCallbackURL(t *testing.T) {
	assert.Equal(t, PlaceholderCallbackURL, CallbackURL(""))
	assert.Equal(t, "https://a.example/api/callback", CallbackURL(" https://a.example/ "))
}
