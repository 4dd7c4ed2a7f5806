package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/dexora-ai/dexora/pkg/api"
	"github.com/dexora-ai/dexora/pkg/render"
	"github.com/dexora-ai/dexora/pkg/runtime"
	"github.com/dexora-ai/dexora/pkg/session"
)

func (s *Server) getTools(c echo.Context) error {
	toolList := s.rt.Tools()
	responses := make([]api.ToolResponse, len(toolList))
	for i, tool := range toolList {
		responses[i] = api.ToolResponse{
			Name:        tool.Name,
			Description: tool.Description,
			Parameters:  tool.Parameters,
		}
	}
	return c.JSON(http.StatusOK, responses)
}

func (s *Server) createConversation(c echo.Context) error {
	var req api.CreateConversationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
	}

	sess := session.New(session.WithTitle(strings.TrimSpace(req.Title)))
	if err := s.sessions.AddSession(c.Request().Context(), sess); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("failed to create conversation: %v", err))
	}

	slog.Debug("Conversation created", "session_id", sess.ID)
	return c.JSON(http.StatusCreated, sess)
}

func (s *Server) getConversations(c echo.Context) error {
	sessions, err := s.sessions.GetSessions(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("failed to get conversations: %v", err))
	}

	responses := make([]api.ConversationsResponse, len(sessions))
	for i, sess := range sessions {
		responses[i] = api.ConversationsResponse{
			ID:          sess.ID,
			Title:       sess.GetTitle(),
			CreatedAt:   sess.CreatedAt,
			NumMessages: sess.Snapshot().Len(),
		}
	}
	return c.JSON(http.StatusOK, responses)
}

func (s *Server) getConversation(c echo.Context) error {
	sess, err := s.session(c)
	if err != nil {
		return err
	}

	params := api.PaginationParams{Before: c.QueryParam("before")}
	if limit := c.QueryParam("limit"); limit != "" {
		if params.Limit, err = strconv.Atoi(limit); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid limit: %q", limit))
		}
	}

	messages, meta, err := api.PaginateMessages(sess.Snapshot().Messages(), params)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, api.ConversationResponse{
		ID:         sess.ID,
		Title:      sess.GetTitle(),
		CreatedAt:  sess.CreatedAt,
		Messages:   messages,
		Pagination: meta,
	})
}

func (s *Server) deleteConversation(c echo.Context) error {
	if err := s.sessions.DeleteSession(c.Request().Context(), c.Param("id")); err != nil {
		return sessionError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// sendMessage runs one turn and streams it. Every runtime event is followed
// by display_unit events for the units it changed, so a client can either
// fold runtime events itself or just draw the units.
func (s *Server) sendMessage(c echo.Context) error {
	sess, err := s.session(c)
	if err != nil {
		return err
	}

	var req api.SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
	}
	if strings.TrimSpace(req.Content) == "" {
		return c.NoContent(http.StatusNoContent)
	}

	slog.Debug("Running turn", "session_id", sess.ID)

	events, err := s.rt.RunStream(c.Request().Context(), sess, req.Content)
	if errors.Is(err, runtime.ErrTurnInProgress) {
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("failed to run turn: %v", err))
	}

	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set(echo.HeaderCacheControl, "no-cache")
	w.Header().Set(echo.HeaderConnection, "keep-alive")
	w.WriteHeader(http.StatusOK)

	adapter := render.NewAdapter()
	for event := range events {
		if err := writeEvent(w, event); err != nil {
			slog.Debug("Stopped streaming turn", "session_id", sess.ID, "error", err)
			return nil
		}
		for _, unit := range adapter.Apply(event) {
			if err := writeEvent(w, api.DisplayUnit(unit)); err != nil {
				slog.Debug("Stopped streaming turn", "session_id", sess.ID, "error", err)
				return nil
			}
		}
	}

	return nil
}

func writeEvent(w *echo.Response, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
		return err
	}
	w.Flush()
	return nil
}

func (s *Server) session(c echo.Context) (*session.Session, error) {
	sess, err := s.sessions.GetSession(c.Request().Context(), c.Param("id"))
	if err != nil {
		return nil, sessionError(err)
	}
	return sess, nil
}

func sessionError(err error) error {
	switch {
	case errors.Is(err, session.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "conversation not found")
	case errors.Is(err, session.ErrEmptyID):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
