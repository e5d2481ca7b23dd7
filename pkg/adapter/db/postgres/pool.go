package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/momeni/car-rental/pkg/core/repo"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Pool is a GORM backed connections pool. Although it is created for
// a PostgreSQL server by NewPool, any GORM dialector may be wrapped by
// the NewPoolWithDialector (e.g., an SQLite database in tests).
type Pool struct {
	*gorm.DB
}

// NewPool connects to the PostgreSQL server which is identified by
// the url connection string and tests the connection.
func NewPool(ctx context.Context, url string) (*Pool, error) {
	return NewPoolWithDialector(ctx, postgres.Open(url))
}

// NewPoolWithDialector creates a Pool for the d GORM dialector and
// tests the connection. GORM logs are written to the default slog
// logger with the warning level.
func NewPoolWithDialector(
	ctx context.Context, d gorm.Dialector,
) (*Pool, error) {
	gdb, err := gorm.Open(d, &gorm.Config{
		Logger: logger.New(slogWriter{}, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
			// Set to false in order to log with replaced vars
			ParameterizedQueries: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("gorm.Open: %w", err)
	}
	pool := &Pool{DB: gdb}
	err = pool.Conn(ctx, NoOpConnHandler)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("testing connection: %w", err)
	}
	return pool, nil
}

type slogWriter struct{}

func (slogWriter) Printf(format string, args ...any) {
	slog.Warn(fmt.Sprintf(format, args...), slog.String("src", "gorm"))
}

type ConnHandler = repo.ConnHandler

func NoOpConnHandler(context.Context, repo.Conn) error {
	return nil
}

// Conn borrows a connection from the pool and passes it to f. The
// connection is returned to the pool when f returns.
func (p *Pool) Conn(ctx context.Context, f ConnHandler) error {
	return p.DB.WithContext(ctx).Connection(func(c *gorm.DB) error {
		cc := &Conn{DB: c}
		return f(ctx, cc)
	})
}

// Ping checks if a connection may be established, so it can be used
// by the health checks.
func (p *Pool) Ping(ctx context.Context) error {
	db, err := p.DB.DB()
	if err != nil {
		return err
	}
	return db.PingContext(ctx)
}

func (p *Pool) Close() error {
	db, err := p.DB.DB()
	if err != nil {
		return err
	}
	return db.Close()
}
