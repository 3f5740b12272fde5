package strata

import "go.uber.org/zap"

// Option configures an injector created by New.
type Option func(*config)

type config struct {
	parent     Injector
	providers  []Provider
	bootstrap  []Token
	catalog    *Catalog
	middleware []Middleware
	logger     *zap.Logger
}

func applyOptions(opts []Option) config {
	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}

	return cfg
}

// WithParent attaches the new injector under parent.
func WithParent(parent Injector) Option {
	return func(c *config) {
		c.parent = parent
	}
}

// WithProviders appends local provider overrides. The first provider for a token wins.
func WithProviders(providers ...Provider) Option {
	return func(c *config) {
		c.providers = append(c.providers, providers...)
	}
}

// WithBootstrap appends tokens resolved eagerly, in order, before New returns.
func WithBootstrap(tokens ...Token) Option {
	return func(c *config) {
		c.bootstrap = append(c.bootstrap, tokens...)
	}
}

// WithCatalog sets the metadata side table read by the injector.
func WithCatalog(catalog *Catalog) Option {
	return func(c *config) {
		c.catalog = catalog
	}
}

// WithMiddleware adds resolution middleware. Middleware runs in the order it is added.
func WithMiddleware(middleware ...Middleware) Option {
	return func(c *config) {
		c.middleware = append(c.middleware, middleware...)
	}
}

// WithLogger sets the logger for lifecycle events. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}
