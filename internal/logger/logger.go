// Package logger configura a saída de log estruturado em JSON.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// Setup cria um slog.Logger com saída JSON no writer indicado.
func Setup(w io.Writer) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	return slog.New(handler)
}

// SetupDefault instala o logger JSON como logger global.
// Em produção o writer esperado é os.Stdout.
func SetupDefault(w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	slog.SetDefault(Setup(w))
}
