package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_QuandoNivelWarn_DeveOmitirInfo(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetLevel(slog.LevelWarn)
	t.Cleanup(func() {
		SetLevel(slog.LevelInfo)
		SetOutput(os.Stdout)
	})

	Info("nao aparece")
	Warn("confronto finalizado duas vezes", "confronto", "c1")

	linhas := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, linhas, 1)

	var entrada map[string]any
	require.NoError(t, json.Unmarshal(linhas[0], &entrada))
	assert.Equal(t, "WARN", entrada["level"])
	assert.Equal(t, "confronto finalizado duas vezes", entrada["msg"])
	assert.Equal(t, "c1", entrada["confronto"])
}
