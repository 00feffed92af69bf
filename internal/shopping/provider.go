package shopping

import "context"

type engineKey struct{}

// NewContext returns a copy of ctx that carries the engine.
func NewContext(ctx context.Context, e *Engine) context.Context {
	return context.WithValue(ctx, engineKey{}, e)
}

// FromContext returns the engine carried by ctx, if any. Consumers that can
// work without a shopping list use this and hide the feature when ok is false.
func FromContext(ctx context.Context) (*Engine, bool) {
	e, ok := ctx.Value(engineKey{}).(*Engine)
	return e, ok && e != nil
}

// MustFromContext returns the engine carried by ctx and panics when there is
// none. A missing engine is a wiring bug, not a runtime condition.
func MustFromContext(ctx context.Context) *Engine {
	e, ok := FromContext(ctx)
	if !ok {
		panic("shopping: engine must be used within a provider scope")
	}
	return e
}
