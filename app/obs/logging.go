// Package obs contains observability utilities such as logging.
package obs

import (
	"io"
	"log/slog"
	"os"
)

// Logger is the structured logger shared by the service.
var Logger = slog.Default()

// InitLogger replaces Logger with a JSON handler writing to stdout.
func InitLogger(level slog.Level) {
	InitLoggerTo(os.Stdout, level)
}

func InitLoggerTo(w io.Writer, level slog.Level) {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	Logger = slog.New(h)
}
