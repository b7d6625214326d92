package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.TraceLevel, parseLevel("trace"))
	assert.Equal(t, zerolog.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zerolog.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zerolog.InfoLevel, parseLevel(""), "nivel desconocido cae a info")
	assert.Equal(t, zerolog.InfoLevel, parseLevel("verbose"))
}

func TestNew_RespetaElNivelConfigurado(t *testing.T) {
	l := New(Config{Env: "production", Level: "warn", Service: "cotizador"})
	assert.Equal(t, zerolog.WarnLevel, l.Zerolog().GetLevel())
}
