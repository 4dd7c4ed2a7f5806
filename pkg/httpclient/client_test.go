package httpclient

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureHeaders(t *testing.T, client *http.Client) http.Header {
	t.Helper()

	var captured http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		captured = r.Header
	}))
	defer srv.Close()

	req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, srv.URL, http.NoBody)
	require.NoError(t, err)

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	return captured
}

func TestUserAgent(t *testing.T) {
	t.Parallel()

	headers := captureHeaders(t, NewHTTPClient())

	assert.Equal(t, UserAgent, headers.Get("User-Agent"))
	assert.Contains(t, UserAgent, "Dexora/")
}

func TestWithBackendAndModel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		backend string
		model   string
	}{
		{name: "sets headers when provided", backend: "groq", model: "gemma2-9b-it"},
		{name: "skips empty values"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			headers := captureHeaders(t, NewHTTPClient(WithBackend(tt.backend), WithModel(tt.model)))

			assert.Equal(t, tt.backend, headers.Get("X-Dexora-Backend"))
			assert.Equal(t, tt.model, headers.Get("X-Dexora-Model"))
		})
	}
}

func TestRequestIsNotMutated(t *testing.T) {
	t.Parallel()

	var seen *http.Request
	client := NewHTTPClient(WithTransport(roundTripFunc(func(r *http.Request) (*http.Response, error) {
		seen = r
		return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody}, nil
	})))

	req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, "http://example.invalid", http.NoBody)
	require.NoError(t, err)

	resp, err := client.Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Empty(t, req.Header.Get("User-Agent"))
	assert.Equal(t, UserAgent, seen.Header.Get("User-Agent"))
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}
