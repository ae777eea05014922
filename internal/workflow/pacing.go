package workflow

import (
	"context"
	"math/rand"
	"time"
)

// Rand produces uniform integers. Workflows draw every simulated duration
// and delay from it so runs can be replayed with a seeded source.
type Rand interface {
	// IntRange returns a uniform integer in [lo, hi)
	IntRange(lo, hi int) int
}

type mathRand struct {
	r *rand.Rand
}

// NewRand returns a Rand backed by math/rand with the given seed
func NewRand(seed int64) Rand {
	return mathRand{r: rand.New(rand.NewSource(seed))}
}

func (m mathRand) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + m.r.Intn(hi-lo)
}

// Sleeper blocks for d or until ctx is done
type Sleeper func(ctx context.Context, d time.Duration) error

// Sleep is the real Sleeper
func Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func defaultRand(r Rand) Rand {
	if r == nil {
		return NewRand(time.Now().UnixNano())
	}
	return r
}
