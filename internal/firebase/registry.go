package firebase

import (
	"context"
	"sync"

	"cloud.google.com/go/firestore"
	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/messaging"
	"firebase.google.com/go/v4/storage"
)

const (
	defaultAppName = "[DEFAULT]"
	adminAppName   = "admin"
)

// lazy runs its constructor at most once, remembering failure as well as success.
type lazy[T any] struct {
	once sync.Once
	v    T
	err  error
}

func (l *lazy[T]) get(f func() (T, error)) (T, error) {
	l.once.Do(func() { l.v, l.err = f() })
	return l.v, l.err
}

// appEntry is one named app and every handle derived from it.
type appEntry struct {
	app App

	firestore lazy[*firestore.Client]
	auth      lazy[*auth.Client]
	storage   lazy[*storage.Client]
	messaging lazy[*messaging.Client]

	analyticsOnce sync.Once
	analytics     *Deferred[*Analytics]
}

// registry maps app names to entries. Creation happens under the lock so two
// callers racing on the same name get the same app.
type registry struct {
	mu   sync.Mutex
	apps map[string]*appEntry
}

func newRegistry() *registry {
	return &registry{apps: make(map[string]*appEntry)}
}

// getOrCreate returns the existing entry for name, or calls create and stores
// the result. A failed create stores nothing.
func (r *registry) getOrCreate(ctx context.Context, name string, create func(context.Context) (App, error)) (*appEntry, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.apps[name]; ok {
		return e, true, nil
	}
	app, err := create(ctx)
	if err != nil {
		return nil, false, err
	}
	e := &appEntry{app: app}
	r.apps[name] = e
	return e, false, nil
}

func (r *registry) lookup(name string) (*appEntry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.apps[name]
	return e, ok
}

func (r *registry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.apps)
}
