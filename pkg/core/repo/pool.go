package repo

import "context"

// ConnHandler is called by Pool.Conn with a borrowed connection which
// is returned to the pool as soon as the handler returns.
type ConnHandler func(context.Context, Conn) error

// Pool is a database connections pool which is safe to be shared
// among concurrent requests.
type Pool interface {
	Conn(ctx context.Context, handler ConnHandler) error
}
