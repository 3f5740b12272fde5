package strata

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Middleware provides hooks around every resolution made by an injector,
// including the nested resolution of dependencies.
type Middleware interface {
	// BeforeResolve is called before resolving tok.
	// Return error to abort resolution.
	BeforeResolve(tok Token) error

	// AfterResolve is called after resolving tok.
	// Called even if resolution failed (instance and err may both be set).
	AfterResolve(tok Token, instance any, err error) error
}

// middlewareChain manages multiple middleware.
type middlewareChain struct {
	middleware []Middleware
	mu         sync.RWMutex
}

// newMiddlewareChain creates a new middleware chain.
func newMiddlewareChain() *middlewareChain {
	return &middlewareChain{
		middleware: make([]Middleware, 0),
	}
}

// add appends middleware to the chain.
func (m *middlewareChain) add(middleware Middleware) {
	if middleware == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.middleware = append(m.middleware, middleware)
}

func (m *middlewareChain) snapshot() []Middleware {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.middleware
}

// beforeResolve calls BeforeResolve on all middleware.
func (m *middlewareChain) beforeResolve(tok Token) error {
	for _, mw := range m.snapshot() {
		if err := mw.BeforeResolve(tok); err != nil {
			return err
		}
	}
	return nil
}

// afterResolve calls AfterResolve on all middleware.
func (m *middlewareChain) afterResolve(tok Token, instance any, err error) error {
	for _, mw := range m.snapshot() {
		if mwErr := mw.AfterResolve(tok, instance, err); mwErr != nil {
			return mwErr
		}
	}
	return nil
}

// FuncMiddleware wraps functions as Middleware.
type FuncMiddleware struct {
	BeforeResolveFunc func(tok Token) error
	AfterResolveFunc  func(tok Token, instance any, err error) error
}

// BeforeResolve implements Middleware.
func (f *FuncMiddleware) BeforeResolve(tok Token) error {
	if f.BeforeResolveFunc != nil {
		return f.BeforeResolveFunc(tok)
	}
	return nil
}

// AfterResolve implements Middleware.
func (f *FuncMiddleware) AfterResolve(tok Token, instance any, err error) error {
	if f.AfterResolveFunc != nil {
		return f.AfterResolveFunc(tok, instance, err)
	}
	return nil
}

// LoggingMiddleware logs every resolution at debug level and every failure at warn level.
func LoggingMiddleware(logger *zap.Logger) Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &FuncMiddleware{
		AfterResolveFunc: func(tok Token, instance any, err error) error {
			fields := []zap.Field{
				zap.String("token", tokenName(tok)),
				zap.String("kind", tokenKind(tok).String()),
			}

			if err != nil {
				logger.Warn("resolution failed", append(fields, zap.Error(err))...)
				return nil
			}

			logger.Debug("resolved", append(fields, zap.String("type", fmt.Sprintf("%T", instance)))...)

			return nil
		},
	}
}

func tokenKind(tok Token) TokenKind {
	if tok == nil {
		return TokenKind(-1)
	}

	return tok.Kind()
}
