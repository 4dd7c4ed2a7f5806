package openai

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/openai/openai-go/v3/option"
)

// errorBodyMiddleware rewrites backend error responses into the
// {"error": {...}} envelope the SDK extracts messages from. Groq answers in
// that shape already; Cerebras and proxies in front of either backend do not
// always, and the SDK then reports an empty error.
func errorBodyMiddleware() option.Middleware {
	return func(req *http.Request, next option.MiddlewareNext) (*http.Response, error) {
		resp, err := next(req)
		if err != nil || resp == nil || resp.StatusCode < http.StatusBadRequest {
			return resp, err
		}

		body, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if readErr == nil && !hasErrorEnvelope(body) {
			body = envelopeErrorBody(body, resp.StatusCode)
			resp.ContentLength = int64(len(body))
		}
		resp.Body = io.NopCloser(bytes.NewReader(body))
		return resp, nil
	}
}

func hasErrorEnvelope(body []byte) bool {
	var doc struct {
		Error json.RawMessage `json:"error"`
	}
	if json.Unmarshal(body, &doc) != nil {
		return false
	}
	v := bytes.TrimSpace(doc.Error)
	return len(v) > 0 && v[0] == '{'
}

// envelopeErrorBody keeps JSON bodies verbatim under "error" and turns
// anything else into {"error": {"message": ...}}. An empty body falls back to
// the status text.
func envelopeErrorBody(body []byte, status int) []byte {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		body = []byte(http.StatusText(status))
	}
	if json.Valid(body) {
		return bytes.Join([][]byte{[]byte(`{"error":`), body, []byte(`}`)}, nil)
	}

	out, err := json.Marshal(map[string]map[string]string{
		"error": {"message": string(body)},
	})
	if err != nil {
		return body
	}
	return out
}
