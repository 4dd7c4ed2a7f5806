package openai

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasErrorEnvelope(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want bool
	}{
		{"groq error", `{"error":{"message":"model decommissioned","type":"invalid_request_error"}}`, true},
		{"error with padding", `{"error":  {"message":"x"}}`, true},
		{"error as string", `{"error":"Rate limit exceeded"}`, false},
		{"error null", `{"error":null}`, false},
		{"error array", `{"error":["x"]}`, false},
		{"cerebras top level", `{"message":"Wrong API Key","type":"invalid_request_error","code":"wrong_api_key"}`, false},
		{"plain text", `upstream connect error`, false},
		{"empty", ``, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, hasErrorEnvelope([]byte(tt.body)))
		})
	}
}

func TestEnvelopeErrorBody(t *testing.T) {
	t.Parallel()

	body := `{"message":"Wrong API Key","code":"wrong_api_key"}`
	assert.JSONEq(t, `{"error":`+body+`}`, string(envelopeErrorBody([]byte(body), http.StatusUnauthorized)))

	assert.Equal(t, "bad gateway", errorMessage(t, envelopeErrorBody([]byte("bad gateway\n"), http.StatusBadGateway)))
	assert.Equal(t, "Too Many Requests", errorMessage(t, envelopeErrorBody(nil, http.StatusTooManyRequests)))
}

func TestErrorBodyMiddleware(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"success untouched", http.StatusOK, `data: {}`, `data: {}`},
		{"envelope untouched", http.StatusBadRequest, `{"error":{"message":"bad"}}`, `{"error":{"message":"bad"}}`},
		{"json wrapped", http.StatusUnauthorized, `{"message":"Wrong API Key"}`, `{"error":{"message":"Wrong API Key"}}`},
		{"text wrapped", http.StatusServiceUnavailable, `overloaded`, `{"error":{"message":"overloaded"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req, err := http.NewRequestWithContext(t.Context(), http.MethodPost, "http://backend.test/chat/completions", http.NoBody)
			require.NoError(t, err)

			resp, err := errorBodyMiddleware()(req, func(*http.Request) (*http.Response, error) {
				return &http.Response{StatusCode: tt.status, Body: io.NopCloser(strings.NewReader(tt.body))}, nil
			})
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			got, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			if tt.status < http.StatusBadRequest {
				assert.Equal(t, tt.want, string(got))
			} else {
				assert.JSONEq(t, tt.want, string(got))
			}
		})
	}
}

func errorMessage(t *testing.T, body []byte) string {
	t.Helper()

	var parsed struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(body, &parsed))
	return parsed.Error.Message
}
