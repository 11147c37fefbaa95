package sql

import (
	"context"
	"io"

	"github.com/opentracing/opentracing-go"
	"github.com/sirupsen/logrus"
)

// Config is the analyzer's configuration surface (SPEC_FULL.md §9). The
// core itself reads only CaseSensitive; NullsLarger is carried for
// downstream components.
type Config struct {
	// language.case-sensitive
	CaseSensitive bool

	// language.nulls-larger is read by downstream components only; the
	// analyzer core never branches on it, per spec.md §9 Open Questions.
	NullsLarger bool
}

// DefaultConfig returns the analyzer's default configuration.
func DefaultConfig() Config {
	return Config{CaseSensitive: true}
}

// CaseSensitivity returns the configured case policy.
func (c Config) CaseSensitivity() CaseSensitivity {
	if c.CaseSensitive {
		return CaseSensitive
	}
	return CaseInsensitive
}

// Context threads a context.Context, the analyzer's configuration, a
// logger, and a tracing span through a single analysis run. It plays the
// role of the teacher's *sql.Context (which itself wraps a context.Context,
// a session, and a tracing span) without the execution-session concerns
// that have no place in a pure semantic-analysis core.
type Context struct {
	context.Context
	Config Config
	Log    *logrus.Entry
	span   opentracing.Span
}

// NewContext wraps a context.Context with analyzer configuration and a
// logger. If logger is nil a discarding logger is used.
func NewContext(ctx context.Context, cfg Config, logger *logrus.Entry) *Context {
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = logrus.NewEntry(l)
	}
	return &Context{Context: ctx, Config: cfg, Log: logger}
}

// Span starts a child tracing span named name and returns a new *Context
// carrying it, along with a finish function the caller must defer. Mirrors
// the teacher's ctx.Span(...)/span.Finish() pattern in sql/analyzer.
func (c *Context) Span(name string) (*Context, func()) {
	var span opentracing.Span
	if c.span != nil {
		span = opentracing.StartSpan(name, opentracing.ChildOf(c.span.Context()))
	} else {
		span = opentracing.StartSpan(name)
	}
	next := &Context{Context: c.Context, Config: c.Config, Log: c.Log, span: span}
	return next, span.Finish
}
