// Package biznumber draws unique business numbers for cards.
package biznumber

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
)

const (
	Min int64 = 100
	Max int64 = 9_999_999_999

	DefaultMaxAttempts = 32
)

// ErrExhausted is returned when every attempt collided with an existing number.
var ErrExhausted = errors.New("biznumber: no free number found")

// ExistsFunc reports whether a card already holds n.
type ExistsFunc func(ctx context.Context, n int64) (bool, error)

// Generator draws uniformly from [Min, Max] and retries on collision up to
// MaxAttempts times.
type Generator struct {
	MaxAttempts int
	// Int64N returns a value in [0, n). Defaults to math/rand.
	Int64N func(n int64) int64
}

// New returns a generator with the given attempt budget.
func New(maxAttempts int) *Generator {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Generator{MaxAttempts: maxAttempts, Int64N: rand.Int63n}
}

// Generate returns a number no existing card holds.
func (g *Generator) Generate(ctx context.Context, exists ExistsFunc) (int64, error) {
	draw := g.Int64N
	if draw == nil {
		draw = rand.Int63n
	}
	attempts := g.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultMaxAttempts
	}

	for i := 0; i < attempts; i++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		n := Min + draw(Max-Min+1)
		if !InRange(n) {
			return 0, fmt.Errorf("biznumber: drew %d outside [%d, %d]", n, Min, Max)
		}
		taken, err := exists(ctx, n)
		if err != nil {
			return 0, fmt.Errorf("biznumber: check %d: %w", n, err)
		}
		if !taken {
			return n, nil
		}
	}
	return 0, fmt.Errorf("%w after %d attempts", ErrExhausted, attempts)
}

// InRange reports whether n is a valid business number.
func InRange(n int64) bool {
	return n >= Min && n <= Max
}
