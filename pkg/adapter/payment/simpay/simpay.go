// Package simpay provides a simulated payment gateway. It stands for
// the external payment provider which is not integrated yet, blocking
// for a fixed latency per payment and failing on demand.
package simpay

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/momeni/car-rental/pkg/core/log"
	"github.com/momeni/car-rental/pkg/core/model"
)

// DefaultLatency is the time which is spent for each payment.
const DefaultLatency = 300 * time.Millisecond

// ErrDeclined is returned when a payment is declined.
var ErrDeclined = errors.New("payment declined")

// Gateway is a simulated payment gateway, implementing the
// reservationsuc.Payer interface. It is safe for concurrent use.
type Gateway struct {
	latency     time.Duration
	failureRate float64

	mu  sync.Mutex
	rnd *rand.Rand
}

// Option configures a Gateway.
type Option func(g *Gateway) error

// WithLatency sets the blocking time of each payment. Zero latency
// makes payments instant.
func WithLatency(d time.Duration) Option {
	return func(g *Gateway) error {
		if d < 0 {
			return fmt.Errorf("latency (%v) is negative", d)
		}
		g.latency = d
		return nil
	}
}

// WithFailureRate makes a random fraction of payments fail with
// ErrDeclined. The rate must be in the [0, 1] range.
func WithFailureRate(rate float64, seed int64) Option {
	return func(g *Gateway) error {
		if rate < 0 || rate > 1 {
			return fmt.Errorf("failure rate (%v) is out of [0, 1]", rate)
		}
		g.failureRate = rate
		g.rnd = rand.New(rand.NewSource(seed))
		return nil
	}
}

func New(opts ...Option) (*Gateway, error) {
	g := &Gateway{latency: DefaultLatency}
	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	return g, nil
}

// Latency returns the configured payment latency.
func (g *Gateway) Latency() time.Duration {
	return g.latency
}

// Pay blocks for the configured latency and then settles the payment
// of sel. If ctx is done earlier, its error is returned instead.
func (g *Gateway) Pay(ctx context.Context, sel model.Selection) error {
	if g.latency > 0 {
		t := time.NewTimer(g.latency)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return fmt.Errorf("waiting for payment: %w", ctx.Err())
		case <-t.C:
		}
	}
	if g.declined() {
		return ErrDeclined
	}
	log.Debug(ctx, "payment settled", log.Valuer("sel", sel))
	return nil
}

func (g *Gateway) declined() bool {
	if g.failureRate == 0 {
		return false
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rnd.Float64() < g.failureRate
}
