// Package testutil provides small helpers shared by package tests.
package testutil

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/vk/syclitgo/internal/ctxlog"
)

// Context returns a context carrying a discard logger, satisfying code that
// requires a logger via ctxlog without polluting test output.
func Context(t *testing.T) context.Context {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return ctxlog.WithLogger(context.Background(), logger)
}
