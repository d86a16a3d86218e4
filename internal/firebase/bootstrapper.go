// Package firebase builds the process-wide Firebase handles from configuration.
//
// A Bootstrapper owns its own app registry, so each one behaves like a fresh
// process: the first initialization creates the app, later ones reuse it.
package firebase

import (
	"context"
	"maps"
	"sync"

	"go.uber.org/zap"
)

type Bootstrapper struct {
	sdk  SDK
	log  *zap.Logger
	apps *registry

	mu     sync.Mutex
	states map[string]State
}

func NewBootstrapper(sdk SDK, log *zap.Logger) *Bootstrapper {
	if log == nil {
		log = zap.NewNop()
	}
	b := &Bootstrapper{
		sdk:    sdk,
		log:    log,
		apps:   newRegistry(),
		states: make(map[string]State),
	}
	for _, n := range clientHandleNames {
		b.states[n] = StateUninitialized
	}
	for _, n := range adminHandleNames {
		b.states[n] = StateUninitialized
	}
	return b
}

// Status returns a snapshot of every handle's state.
func (b *Bootstrapper) Status() map[string]State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return maps.Clone(b.states)
}

func (b *Bootstrapper) setState(state State, names ...string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, n := range names {
		b.states[n] = state
	}
}

// begin moves handles that have never been initialized to StateInitializing.
func (b *Bootstrapper) begin(names ...string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, n := range names {
		if b.states[n] == StateUninitialized {
			b.states[n] = StateInitializing
		}
	}
}

// derive builds one handle from an app entry. Failures are logged and yield
// the zero value; they never reach the caller.
func derive[T any](ctx context.Context, b *Bootstrapper, name string, l *lazy[T], f func(context.Context) (T, error)) T {
	v, err := l.get(func() (T, error) { return f(ctx) })
	if err != nil {
		b.log.Error("firebase handle creation failed", zap.String("handle", name), zap.Error(err))
		b.setState(StateAbsent, name)
		var zero T
		return zero
	}
	b.setState(StateReady, name)
	return v
}
