package logger

import (
	"io"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureStdout ejecuta fn con os.Stdout redirigido y devuelve lo escrito.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)
	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fn()

	require.NoError(t, w.Close())
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

// Fuera de development el logger emite JSON con el nombre del servicio como campo fijo.
func TestNew_CampoServiceEnCadaLinea(t *testing.T) {
	out := captureStdout(t, func() {
		l := New(Config{Env: "production", Level: "info", Service: "gridmanager-api"})
		l.Info().Str("ruta", "/health").Msg("listo")
	})

	assert.Contains(t, out, `"service":"gridmanager-api"`)
	assert.Contains(t, out, `"ruta":"/health"`)
	assert.Contains(t, out, `"level":"info"`)
}

// Sin Service configurado no se agrega el campo.
func TestNew_SinService(t *testing.T) {
	out := captureStdout(t, func() {
		l := New(Config{Env: "production", Level: "info"})
		l.Info().Msg("listo")
	})

	assert.NotContains(t, out, `"service"`)
}

// El nivel configurado filtra los eventos por debajo.
func TestNew_NivelFiltra(t *testing.T) {
	out := captureStdout(t, func() {
		l := New(Config{Env: "production", Level: "warn", Service: "gridmanager-api"})
		l.Info().Msg("no debe salir")
		l.Warn().Msg("sí debe salir")
	})

	assert.NotContains(t, out, "no debe salir")
	assert.Contains(t, out, "sí debe salir")
}

// Niveles desconocidos caen a info.
func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zerolog.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("cualquiera"))
}
