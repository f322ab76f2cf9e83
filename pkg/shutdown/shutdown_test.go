package shutdown

import (
	"context"
	"errors"
	"testing"
)

func TestRunClosesInReverseOrder(t *testing.T) {
	var order []string
	hooks := &Hooks{}
	hooks.Register("db", func() error {
		order = append(order, "db")
		return nil
	})
	hooks.Register("redis", func() error {
		order = append(order, "redis")
		return nil
	})

	if err := hooks.Run(context.Background(), nil); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(order) != 2 || order[0] != "redis" || order[1] != "db" {
		t.Fatalf("expected reverse order [redis db], got %v", order)
	}
}

func TestRunAggregatesErrors(t *testing.T) {
	hooks := &Hooks{}
	errDB := errors.New("db close failed")
	errRedis := errors.New("redis close failed")
	hooks.Register("db", func() error { return errDB })
	hooks.Register("redis", func() error { return errRedis })
	hooks.Register("nil", nil)

	err := hooks.Run(context.Background(), nil)
	if err == nil {
		t.Fatal("expected aggregated error")
	}
	if !errors.Is(err, errDB) || !errors.Is(err, errRedis) {
		t.Fatalf("expected both errors in aggregate, got %v", err)
	}
}
