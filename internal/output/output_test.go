package output

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetupLogging(t *testing.T) {
	var buf bytes.Buffer

	SetupLogging(LogConfig{Writer: &buf})
	Debug("hidden")
	Info("shown", "kind", "cause")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "kind=cause")

	buf.Reset()
	SetupLogging(LogConfig{Verbose: true, Timestamps: BoolPtr(false), Writer: &buf})
	Debug("visible")
	assert.Contains(t, buf.String(), "visible")

	t.Cleanup(func() { SetupLogging(LogConfig{}) })
}

func TestRunWithSpinner_NonTTY(t *testing.T) {
	if IsTTY() {
		t.Skip("stderr is a terminal")
	}

	want := errors.New("boom")
	err := RunWithSpinner(context.Background(), "Fetching", func(context.Context) error { return want })
	assert.ErrorIs(t, err, want)
}

func TestFormatSummary(t *testing.T) {
	assert.Contains(t, FormatSummary(2, 10, 0), "Generated 2 files for 10 entities")
	assert.Contains(t, FormatSummary(2, 10, 3), "(3 warnings)")
	assert.Contains(t, FormatWritten("cause", "out/cause.go"), "out/cause.go")
}
