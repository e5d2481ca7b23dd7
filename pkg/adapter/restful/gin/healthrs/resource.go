// Package healthrs realizes the health resource which reports whether
// the backing services of the API are reachable.
package healthrs

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/momeni/car-rental/pkg/core/log"
)

// DefaultTimeout bounds all checks of one health request.
const DefaultTimeout = 2 * time.Second

// Checker is implemented by the connection pools and clients which
// can test their backing service, like the postgres.Pool.
type Checker interface {
	Ping(ctx context.Context) error
}

type resource struct {
	checks map[string]Checker
}

// Register instantiates a resource which pings all checks upon
// a GET request to /health. The response status is 200 if all checks
// pass and 503 otherwise.
func Register(r *gin.RouterGroup, checks map[string]Checker) {
	rs := &resource{checks: checks}
	r.GET("health", rs.Health)
}

func (rs *resource) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c, DefaultTimeout)
	defer cancel()
	names := make([]string, 0, len(rs.checks))
	for name := range rs.checks {
		names = append(names, name)
	}
	sort.Strings(names)
	code := http.StatusOK
	status := "ok"
	results := make(map[string]string, len(names))
	for _, name := range names {
		if err := rs.checks[name].Ping(ctx); err != nil {
			log.Warn(ctx, "health check failed",
				log.Err("err", err), slog.String("check", name),
			)
			results[name] = "unavailable"
			code = http.StatusServiceUnavailable
			status = "unavailable"
			continue
		}
		results[name] = "ok"
	}
	c.JSON(code, gin.H{
		"status": status,
		"checks": results,
	})
}
