// Package cli implements the canopy command-line interface.
//
// The commands operate on scene documents in JSON or YAML:
//   - validate: report every validation error in one or more documents
//   - fmt: normalize a document, optionally to YAML or with generated IDs
//   - tree: print the node tree
//   - diff: print the merge patch between two documents
//   - types: list registered node types and their attribute sheets
//   - solve: compute the transform taking three points onto three others
//   - view: open a window showing a document
//
// All commands accept --verbose (-v) for debug logging and --defaults to
// load rendering defaults from a TOML file.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger with short timestamps writing to w.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached to ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
