package strata

// Provider binds a token to a production rule. The engine understands
// ValueProvider, ClassProvider and FactoryProvider; any other implementation
// fails with ErrInvalidProvider when it is used.
type Provider interface {
	// Token returns the token this provider answers for.
	Token() Token

	// RootScoped reports whether the singleton belongs to the root of the tree.
	RootScoped() bool
}

// FactoryFunc builds an instance from the resolved factory dependencies, in declaration order.
type FactoryFunc func(deps ...any) (any, error)

// ValueProvider returns a precomputed value verbatim.
type ValueProvider struct {
	Provide       Token
	Value         any
	ProvideInRoot bool
}

// Token implements Provider.
func (p ValueProvider) Token() Token { return p.Provide }

// RootScoped implements Provider.
func (p ValueProvider) RootScoped() bool { return p.ProvideInRoot }

// ClassProvider constructs Class in place of the provided token.
type ClassProvider struct {
	Provide       Token
	Class         ClassToken
	ProvideInRoot bool
}

// Token implements Provider.
func (p ClassProvider) Token() Token { return p.Provide }

// RootScoped implements Provider.
func (p ClassProvider) RootScoped() bool { return p.ProvideInRoot }

// FactoryProvider calls Factory with Deps resolved through the injector.
type FactoryProvider struct {
	Provide       Token
	Factory       FactoryFunc
	Deps          []Token
	ProvideInRoot bool
}

// Token implements Provider.
func (p FactoryProvider) Token() Token { return p.Provide }

// RootScoped implements Provider.
func (p FactoryProvider) RootScoped() bool { return p.ProvideInRoot }

// ProviderOption configures a provider built by UseValue, UseClass or UseFactory.
type ProviderOption func(*providerConfig)

type providerConfig struct {
	inRoot bool
}

// InRoot stores the provider's singleton at the root of the injector tree.
func InRoot() ProviderOption {
	return func(c *providerConfig) {
		c.inRoot = true
	}
}

func applyProviderOptions(opts []ProviderOption) providerConfig {
	var cfg providerConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// UseValue provides tok with a fixed value.
func UseValue(tok Token, value any, opts ...ProviderOption) Provider {
	cfg := applyProviderOptions(opts)

	return ValueProvider{Provide: tok, Value: value, ProvideInRoot: cfg.inRoot}
}

// UseClass provides tok by constructing cls.
func UseClass(tok Token, cls ClassToken, opts ...ProviderOption) Provider {
	cfg := applyProviderOptions(opts)

	return ClassProvider{Provide: tok, Class: cls, ProvideInRoot: cfg.inRoot}
}

// UseFactory provides tok by calling factory with deps resolved in order.
//
// Example:
//
//	strata.UseFactory(Greeter, func(deps ...any) (any, error) {
//	    return NewGreeter(deps[0].(*Config)), nil
//	}, ConfigClass)
func UseFactory(tok Token, factory FactoryFunc, deps ...Token) Provider {
	return FactoryProvider{Provide: tok, Factory: factory, Deps: deps}
}

// UseFactoryInRoot is UseFactory with the singleton owned by the root injector.
func UseFactoryInRoot(tok Token, factory FactoryFunc, deps ...Token) Provider {
	return FactoryProvider{Provide: tok, Factory: factory, Deps: deps, ProvideInRoot: true}
}

// IsValueProvider reports whether p is a value provider.
func IsValueProvider(p Provider) bool {
	switch p.(type) {
	case ValueProvider, *ValueProvider:
		return true
	}

	return false
}

// IsClassProvider reports whether p is a class provider.
func IsClassProvider(p Provider) bool {
	switch p.(type) {
	case ClassProvider, *ClassProvider:
		return true
	}

	return false
}

// IsFactoryProvider reports whether p is a factory provider.
func IsFactoryProvider(p Provider) bool {
	switch p.(type) {
	case FactoryProvider, *FactoryProvider:
		return true
	}

	return false
}

func providerToken(p Provider) Token {
	if p == nil {
		return nil
	}

	return p.Token()
}

// findProvider returns the first provider for tok, or nil.
func findProvider(providers []Provider, tok Token) Provider {
	for _, p := range providers {
		if p != nil && p.Token() == tok {
			return p
		}
	}

	return nil
}
