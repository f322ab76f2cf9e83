package shutdown

import (
	"context"

	"github.com/openwims/wims-backend/pkg/logger"
	"go.uber.org/multierr"
)

// Closer releases a named resource during shutdown.
type Closer struct {
	Name  string
	Close func() error
}

// Hooks collects closers and runs them in reverse registration order so
// dependents close before their dependencies.
type Hooks struct {
	closers []Closer
}

// Register appends a closer. Nil close funcs are ignored.
func (h *Hooks) Register(name string, close func() error) {
	if close == nil {
		return
	}
	h.closers = append(h.closers, Closer{Name: name, Close: close})
}

// Run executes every registered closer and aggregates their errors.
func (h *Hooks) Run(ctx context.Context, logg *logger.Logger) error {
	var errs []error
	for i := len(h.closers) - 1; i >= 0; i-- {
		closer := h.closers[i]
		if err := closer.Close(); err != nil {
			if logg != nil {
				logg.Error(logg.WithField(ctx, "resource", closer.Name), "shutdown closer failed", err)
			}
			errs = append(errs, err)
			continue
		}
		if logg != nil {
			logg.Info(logg.WithField(ctx, "resource", closer.Name), "resource closed")
		}
	}
	return multierr.Combine(errs...)
}
