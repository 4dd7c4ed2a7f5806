package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dexora-ai/dexora/pkg/appointment"
	"github.com/dexora-ai/dexora/pkg/dashboard"
	"github.com/dexora-ai/dexora/pkg/documents"
	"github.com/dexora-ai/dexora/pkg/profile"
)

// getDashboard builds a dashboard view. The search query parameter is the
// free-text search; every other parameter selects a filter value.
func (s *Server) getDashboard(c echo.Context) error {
	kind, err := dashboard.ParseKind(c.Param("name"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}

	q := dashboard.Query{Selects: map[string]string{}}
	for name, values := range c.QueryParams() {
		if len(values) == 0 {
			continue
		}
		if name == "search" {
			q.Search = values[0]
			continue
		}
		q.Selects[name] = values[0]
	}

	view, err := dashboard.Build(kind, q)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, view)
}

func (s *Server) scheduleAppointment(c echo.Context) error {
	var req appointment.Request
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
	}

	confirmation, err := appointment.Schedule(req, s.now())
	if errors.Is(err, appointment.ErrInvalidRequest) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, confirmation)
}

// uploadDocument takes a multipart "file" field and an optional "category".
// The content is never read: only the name and size are checked.
func (s *Server) uploadDocument(c echo.Context) error {
	header, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("missing file: %v", err))
	}

	receipt, err := documents.Accept(documents.Upload{
		Filename: header.Filename,
		Size:     header.Size,
		Category: c.FormValue("category"),
	}, s.now())
	switch {
	case errors.Is(err, documents.ErrTooLarge):
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, err.Error())
	case err != nil:
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, receipt)
}

func (s *Server) getProfile(c echo.Context) error {
	details, err := s.profiles.Get(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if details == nil {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, details)
}

func (s *Server) putProfile(c echo.Context) error {
	var details profile.UserDetails
	if err := c.Bind(&details); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
	}

	err := s.profiles.Set(c.Request().Context(), details)
	if errors.Is(err, profile.ErrInvalidProfile) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, details)
}
