package observability

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, parseLevel("warning"))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("unknown"))
}

func TestLoggerWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(LogConfig{Level: "info", Format: "json", Output: &buf, ServiceName: "test"})

	l.Info().Str("k", "v").Msg("hello")

	out := buf.String()
	assert.Contains(t, out, `"service":"test"`)
	assert.Contains(t, out, `"k":"v"`)
	assert.Contains(t, out, "hello")
}

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(LogConfig{Level: "warn", Format: "json", Output: &buf})

	l.Info().Msg("dropped")
	assert.Empty(t, buf.String())

	l.Warn().Msg("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestRegistryCachesByName(t *testing.T) {
	r := NewRegistry(LogConfig{Level: "info", Output: &bytes.Buffer{}})

	assert.Same(t, r.Logger("mail"), r.Logger("mail"))
	assert.Same(t, r.System(), r.Logger(""))
	assert.Same(t, r.System(), r.Logger(SystemLoggerName))
}

func TestRegistryTagsLoggerName(t *testing.T) {
	var buf bytes.Buffer
	r := NewRegistry(LogConfig{Level: "info", Format: "json", Output: &buf})

	r.Logger("mail").Info().Msg("sent")
	assert.Contains(t, buf.String(), `"logger":"mail"`)
}
