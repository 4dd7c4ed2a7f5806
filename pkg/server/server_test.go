package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dexora-ai/dexora/pkg/api"
	"github.com/dexora-ai/dexora/pkg/model/provider/rulebased"
	"github.com/dexora-ai/dexora/pkg/profile"
	"github.com/dexora-ai/dexora/pkg/runtime"
	"github.com/dexora-ai/dexora/pkg/session"
	"github.com/dexora-ai/dexora/pkg/tools"
	"github.com/dexora-ai/dexora/pkg/tools/builtin"
)

var now = time.Date(2025, 3, 14, 15, 30, 0, 0, time.UTC)

func offlineRuntime(t *testing.T) runtime.Runtime {
	t.Helper()

	client, err := rulebased.NewClient()
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	registry, err := builtin.NewRegistry()
	require.NoError(t, err)

	return runtime.New(client, registry, runtime.WithSystemPrompt(builtin.SystemPrompt))
}

func newServer(t *testing.T, opts ...Opt) *Server {
	t.Helper()

	opts = append([]Opt{WithClock(func() time.Time { return now })}, opts...)
	return New(offlineRuntime(t), session.NewInMemorySessionStore(time.Hour), profile.NewInMemoryStore(), opts...)
}

func do(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader = http.NoBody
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(buf)
	}

	req := httptest.NewRequestWithContext(t.Context(), method, path, rd)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

// sseEvents splits a server-sent event stream into its JSON payloads.
func sseEvents(t *testing.T, body string) []map[string]any {
	t.Helper()

	var events []map[string]any
	for chunk := range strings.SplitSeq(strings.TrimSpace(body), "\n\n") {
		data, ok := strings.CutPrefix(chunk, "data: ")
		require.True(t, ok, chunk)

		var ev map[string]any
		require.NoError(t, json.Unmarshal([]byte(data), &ev))
		events = append(events, ev)
	}
	return events
}

func types(events []map[string]any) []string {
	out := make([]string, len(events))
	for i, ev := range events {
		out[i], _ = ev["type"].(string)
	}
	return out
}

func createConversation(t *testing.T, s *Server) string {
	t.Helper()

	rec := do(t, s, http.MethodPost, "/api/conversations", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	return decode[map[string]any](t, rec)["id"].(string)
}

func TestPing(t *testing.T) {
	rec := do(t, newServer(t), http.MethodGet, "/api/ping", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestGetTools(t *testing.T) {
	rec := do(t, newServer(t), http.MethodGet, "/api/tools", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	toolList := decode[[]api.ToolResponse](t, rec)
	require.Len(t, toolList, len(tools.KnownNames()))
	for _, tool := range toolList {
		assert.True(t, tool.Name.Valid(), tool.Name)
		assert.NotEmpty(t, tool.Description)
		assert.NotNil(t, tool.Parameters)
	}
}

func TestConversationToolTurn(t *testing.T) {
	s := newServer(t)
	id := createConversation(t, s)

	rec := do(t, s, http.MethodPost, "/api/conversations/"+id+"/messages", api.SendMessageRequest{Content: "show HR dashboard"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get(echo.HeaderContentType))

	events := sseEvents(t, rec.Body.String())
	assert.Equal(t, []string{
		"user_message",
		"stream_started",
		"tool_call",
		"tool_call_response",
		"display_unit",
		"stream_stopped",
	}, types(events))

	unit := events[4]["unit"].(map[string]any)
	assert.Equal(t, "component", unit["kind"])
	assert.Equal(t, "hrDashboard", unit["toolName"])
	assert.Equal(t, builtin.ComponentHRDashboard, unit["component"])
	assert.Equal(t, true, unit["done"])

	rec = do(t, s, http.MethodGet, "/api/conversations/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	conv := decode[api.ConversationResponse](t, rec)
	require.Len(t, conv.Messages, 3)
	assert.Equal(t, session.KindUser, conv.Messages[0].Kind)
	assert.Equal(t, session.KindToolCall, conv.Messages[1].Kind)
	assert.Equal(t, session.KindToolResult, conv.Messages[2].Kind)
	assert.Equal(t, "show HR dashboard", conv.Title)
}

func TestConversationTextTurn(t *testing.T) {
	s := newServer(t)
	id := createConversation(t, s)

	rec := do(t, s, http.MethodPost, "/api/conversations/"+id+"/messages", api.SendMessageRequest{Content: "what's the weather tomorrow?"})
	require.Equal(t, http.StatusOK, rec.Code)

	var (
		text string
		done bool
	)
	for _, ev := range sseEvents(t, rec.Body.String()) {
		if ev["type"] != "display_unit" {
			continue
		}
		unit := ev["unit"].(map[string]any)
		assert.Equal(t, "text", unit["kind"])
		text, _ = unit["text"].(string)
		done, _ = unit["done"].(bool)
	}
	assert.Equal(t, rulebased.DefaultReply, text)
	assert.True(t, done)
}

func TestConversationPagination(t *testing.T) {
	s := newServer(t)
	id := createConversation(t, s)

	for range 3 {
		rec := do(t, s, http.MethodPost, "/api/conversations/"+id+"/messages", api.SendMessageRequest{Content: "what's the weather tomorrow?"})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := do(t, s, http.MethodGet, "/api/conversations/"+id+"?limit=4", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode[api.ConversationResponse](t, rec)
	assert.Len(t, page.Messages, 4)
	assert.Equal(t, 6, page.Pagination.TotalMessages)
	require.NotEmpty(t, page.Pagination.PrevCursor)

	rec = do(t, s, http.MethodGet, "/api/conversations/"+id+"?limit=4&before="+page.Pagination.PrevCursor, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	page = decode[api.ConversationResponse](t, rec)
	assert.Len(t, page.Messages, 2)
	assert.Empty(t, page.Pagination.PrevCursor)

	rec = do(t, s, http.MethodGet, "/api/conversations/"+id+"?limit=four", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = do(t, s, http.MethodGet, "/api/conversations/"+id+"?before=garbage", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestConversationLifecycle(t *testing.T) {
	s := newServer(t)

	rec := do(t, s, http.MethodPost, "/api/conversations", api.CreateConversationRequest{Title: "Quarterly review"})
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decode[map[string]any](t, rec)["id"].(string)
	createConversation(t, s)

	rec = do(t, s, http.MethodGet, "/api/conversations", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]api.ConversationsResponse](t, rec)
	require.Len(t, list, 2)

	rec = do(t, s, http.MethodDelete, "/api/conversations/"+id, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/conversations/"+id, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = do(t, s, http.MethodDelete, "/api/conversations/"+id, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSendMessageErrors(t *testing.T) {
	s := newServer(t)
	id := createConversation(t, s)

	rec := do(t, s, http.MethodPost, "/api/conversations/"+id+"/messages", api.SendMessageRequest{Content: "   "})
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/conversations/"+id, nil)
	assert.Empty(t, decode[api.ConversationResponse](t, rec).Messages)

	rec = do(t, s, http.MethodPost, "/api/conversations/missing/messages", api.SendMessageRequest{Content: "hi"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "conversation not found", decode[api.ErrorResponse](t, rec).Message)

	req := httptest.NewRequestWithContext(t.Context(), http.MethodPost, "/api/conversations/"+id+"/messages", strings.NewReader("{"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

type busyRuntime struct {
	runtime.Runtime
}

func (busyRuntime) RunStream(context.Context, *session.Session, string) (<-chan runtime.Event, error) {
	return nil, runtime.ErrTurnInProgress
}

func TestSendMessageTurnInProgress(t *testing.T) {
	sessions := session.NewInMemorySessionStore(0)
	sess := session.New()
	require.NoError(t, sessions.AddSession(t.Context(), sess))

	s := New(busyRuntime{}, sessions, profile.NewInMemoryStore())
	rec := do(t, s, http.MethodPost, "/api/conversations/"+sess.ID+"/messages", api.SendMessageRequest{Content: "hi"})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestGetDashboard(t *testing.T) {
	s := newServer(t)

	rec := do(t, s, http.MethodGet, "/api/dashboards/hr?department=Sales", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	view := decode[map[string]any](t, rec)
	assert.Len(t, view["employees"], 1)

	rec = do(t, s, http.MethodGet, "/api/dashboards/engineering?search=docker", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	view = decode[map[string]any](t, rec)
	assert.Len(t, view["snippets"], 1)

	rec = do(t, s, http.MethodGet, "/api/dashboards/legal", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestScheduleAppointment(t *testing.T) {
	s := newServer(t)

	rec := do(t, s, http.MethodPost, "/api/appointments", map[string]string{
		"doctorType":    "Cardiologist",
		"preferredDate": "2025-03-20",
		"preferredTime": "10:30 AM",
		"reason":        "Annual check-up",
		"contactInfo":   "jane@example.com",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	conf := decode[map[string]any](t, rec)
	assert.NotEmpty(t, conf["id"])
	assert.Equal(t, "2025-03-14T15:30:00Z", conf["submittedAt"])

	rec = do(t, s, http.MethodPost, "/api/appointments", map[string]string{
		"doctorType":    "Cardiologist",
		"preferredDate": "2025-03-01",
		"preferredTime": "10:30 AM",
		"reason":        "Too late",
		"contactInfo":   "jane@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func upload(t *testing.T, s *Server, filename string, content []byte, category string) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	if category != "" {
		require.NoError(t, mw.WriteField("category", category))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequestWithContext(t.Context(), http.MethodPost, "/api/documents", &body)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestUploadDocument(t *testing.T) {
	s := newServer(t)

	rec := upload(t, s, "scan.PDF", []byte("%PDF-1.7"), "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	receipt := decode[map[string]any](t, rec)
	assert.Equal(t, "scan.PDF", receipt["filename"])
	assert.Equal(t, ".pdf", receipt["extension"])
	assert.InDelta(t, 8, receipt["size"], 0)

	rec = upload(t, s, "setup.exe", []byte("MZ"), "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = upload(t, s, "empty.png", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPost, "/api/documents", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProfile(t *testing.T) {
	s := newServer(t)

	rec := do(t, s, http.MethodGet, "/api/profile", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, s, http.MethodPut, "/api/profile", profile.UserDetails{Name: "Jane"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	details := profile.UserDetails{Name: "Jane Doe", Email: "jane@example.com", Occupation: "Analyst"}
	rec = do(t, s, http.MethodPut, "/api/profile", details)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/profile", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, details, decode[profile.UserDetails](t, rec))
}

func TestRateLimit(t *testing.T) {
	s := newServer(t, WithRateLimit(0.001, 1))

	rec := do(t, s, http.MethodGet, "/api/ping", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, s, http.MethodGet, "/api/ping", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestServeOnUnixSocket(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())

	socketPath := filepath.Join(t.TempDir(), "dexora.sock")
	ln, err := Listen(ctx, "unix://"+socketPath)
	require.NoError(t, err)

	served := make(chan error, 1)
	go func() { served <- newServer(t).Serve(ctx, ln) }()

	client := &http.Client{
		Transport: &http.Transport{
			DialContext: func(ctx context.Context, _, _ string) (net.Conn, error) {
				var d net.Dialer
				return d.DialContext(ctx, "unix", socketPath)
			},
		},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://_/api/ping", http.NoBody)
	require.NoError(t, err)
	resp, err := client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	require.NoError(t, <-served)
}

func TestListenRejectsUnknownScheme(t *testing.T) {
	_, err := Listen(t.Context(), "udp://127.0.0.1:0")
	require.Error(t, err)

	_, err = Listen(t.Context(), "fd://stdin")
	require.Error(t, err)
}
