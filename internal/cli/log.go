// Package cli implements the archdiagram command-line interface.
//
// Running archdiagram without a subcommand renders the Healthcare AI
// Assistant architecture to generated-diagrams/healthcare-ai-architecture.png
// and prints a short overview once the file is on disk.
//
// # Commands
//
//   - (root): render a diagram (the built-in one, or --from a declaration file)
//   - export: write the declaration as dot, mermaid, json, yaml or toml
//   - validate: check a declaration and print its counts
//   - cache: inspect or clear the rendered-artifact cache
//
// # Logging
//
// Logs go to stderr; --verbose (-v) enables debug output. Loggers travel
// through context.Context so helpers can log without extra parameters.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns a logger with "HH:MM:SS.ms" timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs how long an operation took once it completes.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg at debug level with the elapsed time, e.g. "Exported yaml (3ms)".
func (p *progress) done(msg string) {
	p.logger.Debugf("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached by withLogger, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
