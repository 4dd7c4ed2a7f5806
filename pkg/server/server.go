// Package server exposes conversations, dashboards and the enterprise forms
// over HTTP. Conversation turns are streamed as server-sent events.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/dexora-ai/dexora/pkg/api"
	"github.com/dexora-ai/dexora/pkg/profile"
	"github.com/dexora-ai/dexora/pkg/runtime"
	"github.com/dexora-ai/dexora/pkg/session"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	e        *echo.Echo
	rt       runtime.Runtime
	sessions session.Store
	profiles profile.Store
	now      func() time.Time

	rateLimit float64
	rateBurst int
}

type Opt func(*Server)

// WithRateLimit limits every client to limit requests per second with the
// given burst. A non-positive limit disables rate limiting.
func WithRateLimit(limit float64, burst int) Opt {
	return func(s *Server) {
		s.rateLimit = limit
		s.rateBurst = burst
	}
}

func WithClock(now func() time.Time) Opt {
	return func(s *Server) {
		s.now = now
	}
}

func New(rt runtime.Runtime, sessions session.Store, profiles profile.Store, opts ...Opt) *Server {
	s := &Server{
		e:        echo.New(),
		rt:       rt,
		sessions: sessions,
		profiles: profiles,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	e := s.e
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{"method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency}
			if v.Error != nil {
				slog.Warn("Request failed", append(attrs, "error", v.Error)...)
				return nil
			}
			slog.Info("Request", attrs...)
			return nil
		},
	}))

	group := e.Group("/api")
	if s.rateLimit > 0 {
		group.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
			Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(s.rateLimit),
				Burst:     s.rateBurst,
				ExpiresIn: 3 * time.Minute,
			}),
		}))
	}

	// Health check endpoint
	group.GET("/ping", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	// Tools offered to the model
	group.GET("/tools", s.getTools)

	group.POST("/conversations", s.createConversation)
	group.GET("/conversations", s.getConversations)
	group.GET("/conversations/:id", s.getConversation)
	group.DELETE("/conversations/:id", s.deleteConversation)
	// Run a turn; the reply is streamed as server-sent events
	group.POST("/conversations/:id/messages", s.sendMessage)

	group.GET("/dashboards/:name", s.getDashboard)
	group.POST("/appointments", s.scheduleAppointment)
	group.POST("/documents", s.uploadDocument)
	group.GET("/profile", s.getProfile)
	group.PUT("/profile", s.putProfile)

	return s
}

// errorHandler writes every error as an api.ErrorResponse.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := http.StatusText(code)
	if he, ok := errors.AsType[*echo.HTTPError](err); ok {
		code = he.Code
		msg = fmt.Sprint(he.Message)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, api.ErrorResponse{Message: msg})
	}
	if err != nil {
		slog.Error("Failed to write error response", "error", err)
	}
}

func (s *Server) Handler() http.Handler {
	return s.e
}

// Serve answers requests on ln until ctx is done, then shuts down
// gracefully, letting in-flight turns finish streaming.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
