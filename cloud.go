package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"time"
)

// CloudLogHandler is an slog handler that writes one JSON object per
// line with the severity field Google Cloud Logging expects, so log
// entries keep their level when the agent runs on Cloud Run.
type CloudLogHandler struct {
	mu     sync.Mutex
	writer io.Writer
	level  slog.Level
	attrs  map[string]any
}

// NewCloudLogHandler creates a handler writing entries at or above
// level to writer.
func NewCloudLogHandler(writer io.Writer, level slog.Level) *CloudLogHandler {
	return &CloudLogHandler{
		writer: writer,
		level:  level,
	}
}

func (h *CloudLogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *CloudLogHandler) Handle(_ context.Context, r slog.Record) error {
	entry := map[string]any{
		"severity": severityFor(r.Level),
		"message":  r.Message,
		"time":     r.Time.Format(time.RFC3339Nano),
	}

	for k, v := range h.attrs {
		entry[k] = v
	}
	r.Attrs(func(attr slog.Attr) bool {
		entry[attr.Key] = attr.Value.Any()
		return true
	})

	h.mu.Lock()
	defer h.mu.Unlock()
	return json.NewEncoder(h.writer).Encode(entry)
}

func (h *CloudLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make(map[string]any, len(h.attrs)+len(attrs))
	for k, v := range h.attrs {
		merged[k] = v
	}
	for _, attr := range attrs {
		merged[attr.Key] = attr.Value.Any()
	}

	return &CloudLogHandler{
		writer: h.writer,
		level:  h.level,
		attrs:  merged,
	}
}

func (h *CloudLogHandler) WithGroup(name string) slog.Handler {
	// groups are flattened, the cloud console only cares about
	// top-level severity and message
	return h
}

func severityFor(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARNING"
	case level >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}
