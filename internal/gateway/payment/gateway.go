// Package payment abstracts the payment provider. The real provider lives
// outside this system; the in-memory implementation stands in for it and is
// idempotent per key, so a retried charge never bills twice.
package payment

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrDeclined is returned when the provider refuses the charge.
var ErrDeclined = errors.New("payment declined")

type Gateway interface {
	Charge(ctx context.Context, userID string, amount int64, idempotencyKey uuid.UUID) error
}

type inMemoryGateway struct {
	mu      sync.Mutex
	charged map[string]int64

	// declineOver, when positive, refuses charges above the threshold.
	// Used to exercise the decline path without a real provider.
	declineOver int64
}

func NewInMemory() Gateway {
	return &inMemoryGateway{charged: make(map[string]int64)}
}

// NewDeclining builds a gateway that refuses charges above limit.
func NewDeclining(limit int64) Gateway {
	return &inMemoryGateway{charged: make(map[string]int64), declineOver: limit}
}

func (g *inMemoryGateway) Charge(_ context.Context, _ string, amount int64, idempotencyKey uuid.UUID) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	key := idempotencyKey.String()
	if _, done := g.charged[key]; done {
		return nil
	}
	if g.declineOver > 0 && amount > g.declineOver {
		return ErrDeclined
	}
	g.charged[key] = amount
	return nil
}
