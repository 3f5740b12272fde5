package strata

import (
	"context"
	"sync"
)

// app is the process-wide default injector slot. It is only a fallback for
// Component constructors and Member fields that have no injector of their own.
var app struct {
	inj Injector
	mu  sync.RWMutex
}

// InitApp builds an injector from opts and installs it as the app injector.
func InitApp(opts ...Option) (*ResolvingInjector, error) {
	inj, err := New(opts...)
	if err != nil {
		return nil, err
	}

	SetApp(inj)

	return inj, nil
}

// SetApp installs a pre-built injector as the app injector.
func SetApp(inj Injector) {
	app.mu.Lock()
	defer app.mu.Unlock()
	app.inj = inj
}

// App returns the app injector, or ErrNoAppInjector before InitApp or SetApp.
func App() (Injector, error) {
	app.mu.RLock()
	defer app.mu.RUnlock()

	if app.inj == nil {
		return nil, ErrNoAppInjector
	}

	return app.inj, nil
}

// MustApp returns the app injector or panics.
func MustApp() Injector {
	inj, err := App()
	if err != nil {
		panic(err)
	}

	return inj
}

// ClearApp empties the app injector slot. The injector itself is left untouched.
func ClearApp() {
	SetApp(nil)
}

type contextKey struct{}

// WithInjector returns a context carrying inj.
func WithInjector(ctx context.Context, inj Injector) context.Context {
	return context.WithValue(ctx, contextKey{}, inj)
}

// FromContext returns the injector carried by ctx.
func FromContext(ctx context.Context) (Injector, bool) {
	if ctx == nil {
		return nil, false
	}

	inj, ok := ctx.Value(contextKey{}).(Injector)

	return inj, ok && inj != nil
}

// FromContextOrApp returns the injector carried by ctx, falling back to the app injector.
func FromContextOrApp(ctx context.Context) (Injector, error) {
	if inj, ok := FromContext(ctx); ok {
		return inj, nil
	}

	return App()
}
