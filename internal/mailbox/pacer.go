package mailbox

import (
	"context"

	"golang.org/x/time/rate"
)

// Pacer spaces out extraction dispatches so a mailbox full of backlogged
// orders does not burn through the model API quota in one poll cycle.
type Pacer struct {
	limiter *rate.Limiter
}

// NewPacer allows perMinute dispatches per minute with a burst of one
func NewPacer(perMinute float64) *Pacer {
	if perMinute <= 0 {
		perMinute = 6
	}
	return &Pacer{
		limiter: rate.NewLimiter(rate.Limit(perMinute/60.0), 1),
	}
}

// Wait blocks until the next dispatch slot or the context is cancelled
func (p *Pacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}
