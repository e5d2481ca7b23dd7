package postgres

import (
	"context"

	"gorm.io/gorm"
)

// Queryer is satisfied by *Conn and *Tx, so the repository packages
// can implement each query once as a generic function and call it for
// both of the connections and transactions.
type Queryer interface {
	*Conn | *Tx
	GORM(ctx context.Context) *gorm.DB
}
