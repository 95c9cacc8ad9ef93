// Package registry holds the accelerator flows available to a composer
// instance, keyed by name, with registration-time validation.
package registry

import (
	"context"
	"fmt"

	"github.com/vk/syclitgo/internal/composer"
	"github.com/vk/syclitgo/internal/ctxlog"
)

// Registry holds the registered accelerator flows for a single application
// instance. Flows are configured in registration order, so registration
// order is part of the contract.
type Registry struct {
	flows map[string]composer.Flow
	order []string
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{flows: make(map[string]composer.Flow)}
}

// Register adds a flow. Registering two flows under the same name is a
// programmer error and fails.
func (r *Registry) Register(flow composer.Flow) error {
	name := flow.Name()
	if name == "" {
		return fmt.Errorf("flow %T has an empty name", flow)
	}
	if _, dup := r.flows[name]; dup {
		return fmt.Errorf("flow %q registered twice", name)
	}
	r.flows[name] = flow
	r.order = append(r.order, name)
	return nil
}

// Flows returns the registered flows in registration order.
func (r *Registry) Flows() []composer.Flow {
	out := make([]composer.Flow, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.flows[name])
	}
	return out
}

// Validate checks the integrity of the registry before a compose pass.
func (r *Registry) Validate(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	if len(r.order) == 0 {
		return fmt.Errorf("no accelerator flows registered")
	}
	logger.Debug("Registry validation passed.", "flows", r.order)
	return nil
}
