// Package httpclient builds the HTTP client used to reach hosted model
// backends.
package httpclient

import (
	"fmt"
	"net/http"
	"runtime"

	"github.com/dexora-ai/dexora/pkg/version"
)

// UserAgent identifies dexora to backends.
var UserAgent = fmt.Sprintf("Dexora/%s (%s; %s)", version.Version, runtime.GOOS, runtime.GOARCH)

type Opt func(*headerTransport)

// WithBackend tags every request with the backend name.
func WithBackend(name string) Opt {
	return func(t *headerTransport) {
		if name != "" {
			t.headers.Set("X-Dexora-Backend", name)
		}
	}
}

func WithModel(model string) Opt {
	return func(t *headerTransport) {
		if model != "" {
			t.headers.Set("X-Dexora-Model", model)
		}
	}
}

func WithTransport(rt http.RoundTripper) Opt {
	return func(t *headerTransport) {
		t.rt = rt
	}
}

type headerTransport struct {
	headers http.Header
	rt      http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r2 := req.Clone(req.Context())
	for k, v := range t.headers {
		r2.Header[k] = v
	}
	return t.rt.RoundTrip(r2)
}

func NewHTTPClient(opts ...Opt) *http.Client {
	t := &headerTransport{
		headers: http.Header{},
		rt:      http.DefaultTransport,
	}
	t.headers.Set("User-Agent", UserAgent)
	for _, opt := range opts {
		opt(t)
	}

	return &http.Client{Transport: t}
}
