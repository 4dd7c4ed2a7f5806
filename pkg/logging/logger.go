package logging

import (
	"io"
	"log/slog"

	"github.com/lmittmann/tint"
)

// NewConsoleHandler returns a human readable handler for terminals. Error
// attributes are highlighted when colour is on.
func NewConsoleHandler(w io.Writer, level slog.Leveler, color bool) slog.Handler {
	return tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: "2006-01-02 15:04:05.000Z07:00",
		NoColor:    !color,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Value.Kind() == slog.KindAny {
				if _, ok := a.Value.Any().(error); ok {
					return tint.Attr(9, a)
				}
			}
			return a
		},
	})
}

// NewFileHandler writes plain text records, for log files.
func NewFileHandler(w io.Writer, level slog.Leveler) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
}

// Discard drops every record.
func Discard() slog.Handler {
	return slog.DiscardHandler
}
