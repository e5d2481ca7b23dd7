package config

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/momeni/car-rental/pkg/core/log"
)

// Logging contains the structured logging settings.
type Logging struct {
	Level  string // debug, info, warn, or error
	Format string // json or text
}

func (l *Logging) ValidateAndNormalize() error {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "json"
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return fmt.Errorf("level: %w", err)
	}
	switch l.Format {
	case "json", "text":
	default:
		return fmt.Errorf("unsupported format: %q", l.Format)
	}
	return nil
}

// Setup creates the default slog logger which writes to w.
func (l Logging) Setup(w io.Writer) (*slog.Logger, error) {
	return log.Setup(w, l.Format, l.Level)
}
