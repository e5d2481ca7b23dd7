// Package gin adapts the gin-gonic web framework. It re-exports the
// engine types and provides the middlewares which log the requests
// and recovered panics using a structured slog.Logger.
// Sub-packages contain the resources (named like reservationsrs) and
// the routes package which registers them.
package gin

import (
	"log/slog"

	ginslogger "github.com/FabienMht/ginslog/logger"
	ginsrecovery "github.com/FabienMht/ginslog/recovery"
	"github.com/gin-gonic/gin"
)

type HandlerFunc = gin.HandlerFunc
type Engine = gin.Engine

// New creates an engine whose contexts report the cancellation of
// their requests, so a disconnected client or a shutting down server
// stops the use cases which received the *gin.Context.
func New(middlewares ...HandlerFunc) *Engine {
	e := gin.New()
	e.ContextWithFallback = true
	e.Use(middlewares...)
	return e
}

// Logger logs one record per request using l.
func Logger(l *slog.Logger) HandlerFunc {
	return ginslogger.New(l)
}

// Recovery recovers from panics of the handlers, logs them using l,
// and responds with a 500 status code.
func Recovery(l *slog.Logger) HandlerFunc {
	return ginsrecovery.New(l)
}
