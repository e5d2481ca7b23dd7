package reservationsuc

import (
	"context"

	"github.com/momeni/car-rental/pkg/core/model"
)

// Payer is the payment collaborator. Pay blocks until the payment of
// sel is settled and returns nil on success. It is opaque to the
// reservation use cases; no compensation is asked from it on the
// later failures.
type Payer interface {
	Pay(ctx context.Context, sel model.Selection) error
}

// PayerFunc adapts an ordinary function to the Payer interface.
type PayerFunc func(ctx context.Context, sel model.Selection) error

// Pay calls f(ctx, sel).
func (f PayerFunc) Pay(ctx context.Context, sel model.Selection) error {
	return f(ctx, sel)
}
