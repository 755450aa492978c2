package payment

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestChargeIdempotency(t *testing.T) {
	gw := NewInMemory()
	key := uuid.New()

	if err := gw.Charge(context.Background(), "u1", 100, key); err != nil {
		t.Fatalf("Charge: %v", err)
	}
	if err := gw.Charge(context.Background(), "u1", 100, key); err != nil {
		t.Fatalf("retried charge with the same key must succeed: %v", err)
	}

	mem := gw.(*inMemoryGateway)
	if len(mem.charged) != 1 {
		t.Fatalf("same key must bill once, got %d charges", len(mem.charged))
	}
}

func TestDecliningGateway(t *testing.T) {
	gw := NewDeclining(150)

	if err := gw.Charge(context.Background(), "u1", 150, uuid.New()); err != nil {
		t.Fatalf("charge at the limit must pass: %v", err)
	}
	if err := gw.Charge(context.Background(), "u1", 151, uuid.New()); !errors.Is(err, ErrDeclined) {
		t.Fatalf("expected ErrDeclined, got %v", err)
	}
}
