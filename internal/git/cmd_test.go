package git

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestGitCmd_wrapsStderr(t *testing.T) {
	var logBuffer bytes.Buffer
	logger := log.NewWithOptions(&logBuffer, log.Options{Level: log.DebugLevel})

	err := newGitCmd(t.Context(), logger, t.TempDir(), "--unknown-flag").
		Run(_realExec)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "stderr")
}

func TestGitCmd_outputString_trimsNewline(t *testing.T) {
	var logBuffer bytes.Buffer
	logger := log.NewWithOptions(&logBuffer, log.Options{Level: log.DebugLevel})

	out, err := newGitCmd(t.Context(), logger, t.TempDir(), "--version").
		OutputString(_realExec)
	assert.NoError(t, err)
	assert.NotContains(t, out, "\n")
	assert.Contains(t, out, "git version")
}
