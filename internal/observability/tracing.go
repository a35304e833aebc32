package observability

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

type SpanStatus string

const (
	SpanStatusOK    SpanStatus = "OK"
	SpanStatusError SpanStatus = "ERROR"
)

// Span times one operation. Spans nest through the context.
type Span struct {
	TraceID   string            `json:"trace_id"`
	SpanID    string            `json:"span_id"`
	ParentID  string            `json:"parent_id,omitempty"`
	Operation string            `json:"operation"`
	StartTime time.Time         `json:"start_time"`
	Duration  time.Duration     `json:"duration,omitempty"`
	Tags      map[string]string `json:"tags,omitempty"`
	Status    SpanStatus        `json:"status"`
	Error     string            `json:"error,omitempty"`

	mu sync.Mutex
}

type spanContextKey struct{}

func StartSpan(ctx context.Context, operation string) (context.Context, *Span) {
	span := &Span{
		TraceID:   newID(),
		SpanID:    newID(),
		Operation: operation,
		StartTime: time.Now(),
		Status:    SpanStatusOK,
		Tags:      make(map[string]string),
	}

	if parent := GetSpan(ctx); parent != nil {
		span.ParentID = parent.SpanID
		span.TraceID = parent.TraceID
	}

	return context.WithValue(ctx, spanContextKey{}, span), span
}

func (s *Span) Finish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Duration = time.Since(s.StartTime)
}

func (s *Span) SetTag(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Tags[key] = value
}

func (s *Span) SetError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Status = SpanStatusError
	if err != nil {
		s.Error = err.Error()
	}
}

// LogAttrs returns the span as a slog group.
func (s *Span) LogAttrs() slog.Attr {
	s.mu.Lock()
	defer s.mu.Unlock()

	attrs := []any{
		"trace_id", s.TraceID,
		"span_id", s.SpanID,
		"operation", s.Operation,
		"status", string(s.Status),
		"duration", s.Duration,
	}
	if s.ParentID != "" {
		attrs = append(attrs, "parent_id", s.ParentID)
	}
	if s.Error != "" {
		attrs = append(attrs, "error", s.Error)
	}
	return slog.Group("span", attrs...)
}

func GetSpan(ctx context.Context) *Span {
	if span, ok := ctx.Value(spanContextKey{}).(*Span); ok {
		return span
	}
	return nil
}

func newID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
}
