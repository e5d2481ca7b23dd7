package reservationsuc

import (
	"context"

	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/momeni/car-rental/pkg/core/repo"
)

// DuplicateChecker looks for existing reservations which match a new
// request exactly. Date ranges are compared by equality, not overlap,
// and reservations of all statuses (including the cancelled ones) are
// considered.
type DuplicateChecker struct {
	pool   repo.Pool
	resrp  repo.Reservations
	byUser bool
}

// NewDuplicateChecker instantiates a DuplicateChecker. With the user
// lock scope, all four fields of a selection must match, while with
// the slot scope, a reservation of any user for the same car and dates
// is a duplicate.
func NewDuplicateChecker(
	p repo.Pool, r repo.Reservations, scope model.LockScope,
) *DuplicateChecker {
	return &DuplicateChecker{
		pool:   p,
		resrp:  r,
		byUser: scope == model.LockScopeUser,
	}
}

// Exists reports if a matching reservation exists for sel.
func (dc *DuplicateChecker) Exists(
	ctx context.Context, sel model.Selection,
) (found bool, err error) {
	err = dc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := dc.resrp.Conn(c)
		var err error
		if dc.byUser {
			found, err = q.Exists(ctx, sel)
		} else {
			found, err = q.SlotExists(ctx, sel.Slot())
		}
		return err
	})
	return found, err
}
