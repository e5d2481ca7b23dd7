// Package reservationsrp implements the repo.Reservations interface
// over the GORM connections and transactions of the postgres package.
// Each query is written once as a generic function in query.go and is
// exposed by the connQueryer and txQueryer types.
package reservationsrp

import (
	"context"

	"github.com/momeni/car-rental/pkg/adapter/db/postgres"
	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/momeni/car-rental/pkg/core/repo"
)

type Repo struct {
}

func New() *Repo {
	return &Repo{}
}

type connQueryer struct {
	*postgres.Conn
}

func (reservations *Repo) Conn(c repo.Conn) repo.ReservationsConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) Exists(ctx context.Context, sel model.Selection) (bool, error) {
	return Exists(ctx, cq.Conn, sel)
}

func (cq connQueryer) SlotExists(ctx context.Context, s model.Slot) (bool, error) {
	return SlotExists(ctx, cq.Conn, s)
}

func (cq connQueryer) Get(ctx context.Context, id int64) (*model.Reservation, error) {
	return Get(ctx, cq.Conn, id)
}

func (cq connQueryer) List(ctx context.Context, limit, offset int) ([]*model.Reservation, error) {
	return List(ctx, cq.Conn, limit, offset)
}

type txQueryer struct {
	*postgres.Tx
}

func (reservations *Repo) Tx(tx repo.Tx) repo.ReservationsTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) Exists(ctx context.Context, sel model.Selection) (bool, error) {
	return Exists(ctx, tq.Tx, sel)
}

func (tq txQueryer) SlotExists(ctx context.Context, s model.Slot) (bool, error) {
	return SlotExists(ctx, tq.Tx, s)
}

func (tq txQueryer) Get(ctx context.Context, id int64) (*model.Reservation, error) {
	return Get(ctx, tq.Tx, id)
}

func (tq txQueryer) List(ctx context.Context, limit, offset int) ([]*model.Reservation, error) {
	return List(ctx, tq.Tx, limit, offset)
}

func (tq txQueryer) Create(ctx context.Context, r *model.Reservation) (*model.Reservation, error) {
	return Create(ctx, tq.Tx, r)
}
