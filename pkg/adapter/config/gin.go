package config

import (
	"fmt"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/momeni/car-rental/pkg/adapter/config/settings"
	ginrs "github.com/momeni/car-rental/pkg/adapter/restful/gin"
)

// Gin contains the gin-gonic related configuration settings.
// Fields are defined as pointers, so it is possible to detect if they
// are or are not initialized and fill them by their default values.
type Gin struct {
	Logger   *bool  // Whether to register the request logger middleware
	Recovery *bool  // Whether to register the recovery middleware
	Address  string // Listening address, like :8080
	Mode     string `yaml:",omitempty"` // debug, release, or test
}

// ValidateAndNormalize enables the logger and recovery middlewares
// and uses the :8080 address and release mode if they are missing.
func (g *Gin) ValidateAndNormalize() error {
	enabled := true
	settings.OverwriteNil(&g.Logger, &enabled)
	settings.OverwriteNil(&g.Recovery, &enabled)
	if g.Address == "" {
		g.Address = ":8080"
	}
	switch g.Mode {
	case "":
		g.Mode = gin.ReleaseMode
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
	default:
		return fmt.Errorf("unsupported gin mode: %q", g.Mode)
	}
	return nil
}

// NewEngine instantiates a new gin-gonic engine instance based on
// the g settings. Requests and recovered panics are logged by the l
// structured logger.
func (g Gin) NewEngine(l *slog.Logger) *ginrs.Engine {
	gin.SetMode(g.Mode)
	middlewares := make([]ginrs.HandlerFunc, 0, 2)
	if g.Logger != nil && *g.Logger {
		middlewares = append(middlewares, ginrs.Logger(l))
	}
	if g.Recovery != nil && *g.Recovery {
		middlewares = append(middlewares, ginrs.Recovery(l))
	}
	return ginrs.New(middlewares...)
}
