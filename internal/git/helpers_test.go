package git

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
)

func noopLogger(t *testing.T) *log.Logger {
	t.Helper()
	return log.New(io.Discard)
}
