package strata

import (
	"errors"
	"sync"

	"go.uber.org/zap"
)

// ResolvingInjector is the hierarchical resolver. It caches one singleton
// per token and delegates to its ancestors and scope pins as described on Get.
type ResolvingInjector struct {
	parent     Injector
	providers  []Provider
	bootstrap  []Token
	catalog    *Catalog
	middleware *middlewareChain
	logger     *zap.Logger

	classes map[ClassToken]any
	ids     map[Token]any
	order   []cacheRecord // creation order, used by Close
	mu      sync.RWMutex
}

var _ Injector = (*ResolvingInjector)(nil)

// cacheRecord remembers a cached token and whether this injector built it.
type cacheRecord struct {
	tok   Token
	owned bool
}

// New creates an injector and resolves its bootstrap tokens. If any bootstrap
// token fails, New returns that error.
func New(opts ...Option) (*ResolvingInjector, error) {
	cfg := applyOptions(opts)

	// A typed nil parent means no parent.
	if p, ok := cfg.parent.(*ResolvingInjector); ok && p == nil {
		cfg.parent = nil
	}

	catalog := cfg.catalog
	if catalog == nil {
		if p, ok := cfg.parent.(*ResolvingInjector); ok {
			catalog = p.catalog
		} else {
			catalog = DefaultCatalog
		}
	}

	inj := &ResolvingInjector{
		parent:     cfg.parent,
		providers:  append([]Provider(nil), cfg.providers...),
		bootstrap:  append([]Token(nil), cfg.bootstrap...),
		catalog:    catalog,
		middleware: newMiddlewareChain(),
		logger:     cfg.logger,
	}
	inj.init()

	for _, mw := range cfg.middleware {
		inj.middleware.add(mw)
	}

	for _, tok := range inj.bootstrap {
		if _, err := inj.Get(tok); err != nil {
			return nil, err
		}

		inj.logger.Debug("bootstrapped token", zap.Stringer("token", tok))
	}

	return inj, nil
}

// MustNew is New that panics on error. Use only during startup.
func MustNew(opts ...Option) *ResolvingInjector {
	inj, err := New(opts...)
	if err != nil {
		panic(err)
	}

	return inj
}

// NewChild creates an injector whose parent is i.
func (i *ResolvingInjector) NewChild(opts ...Option) (*ResolvingInjector, error) {
	return New(append([]Option{WithParent(i)}, opts...)...)
}

func (i *ResolvingInjector) init() {
	i.classes = make(map[ClassToken]any)
	i.ids = make(map[Token]any)
	i.order = nil
}

// Use adds middleware to the injector.
func (i *ResolvingInjector) Use(middleware Middleware) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.middleware.add(middleware)
}

// Catalog returns the metadata side table this injector reads.
func (i *ResolvingInjector) Catalog() *Catalog {
	return i.catalog
}

// Parent implements Injector.
func (i *ResolvingInjector) Parent() Injector {
	return i.parent
}

// Root implements Injector.
func (i *ResolvingInjector) Root() Injector {
	var current Injector = i
	for current.Parent() != nil {
		current = current.Parent()
	}

	return current
}

// Has implements Injector.
func (i *ResolvingInjector) Has(tok Token) bool {
	return i.WhoHas(tok) != nil
}

// WhoHas implements Injector.
func (i *ResolvingInjector) WhoHas(tok Token) Injector {
	if _, ok := i.cached(tok); ok {
		return i
	}

	if i.parent == nil {
		return nil
	}

	return i.parent.WhoHas(tok)
}

// Cached returns the tokens cached by this injector, in creation order.
func (i *ResolvingInjector) Cached() []Token {
	i.mu.RLock()
	defer i.mu.RUnlock()

	tokens := make([]Token, len(i.order))
	for idx, rec := range i.order {
		tokens[idx] = rec.tok
	}

	return tokens
}

// Get resolves tok with the following precedence:
//
//  1. tok is a class pinned to another injector: that injector's GetStrict.
//  2. tok is a class pinned to the root and i has a parent: the root's GetStrict.
//  3. i has a local provider for tok: built from it and cached here, or at the
//     root when the provider is root scoped.
//  4. an injector in the chain already caches tok: that instance.
//  5. otherwise a class token is constructed and cached here; an id token
//     fails with ErrUnresolvable.
//
// A failed call leaves every cache as it was before the call.
func (i *ResolvingInjector) Get(tok Token) (any, error) {
	res := newResolution()

	v, err := i.get(tok, res)
	if err != nil {
		res.rollback()
		return nil, err
	}

	return v, nil
}

// GetStrict implements Injector.
func (i *ResolvingInjector) GetStrict(tok Token) (any, error) {
	res := newResolution()

	v, err := i.getStrict(tok, res)
	if err != nil {
		res.rollback()
		return nil, err
	}

	return v, nil
}

// CreateInstance builds a new instance of cls, resolving each declared
// dependency through Get. The instance itself is never cached.
func (i *ResolvingInjector) CreateInstance(cls ClassToken) (any, error) {
	res := newResolution()

	v, err := i.createInstance(cls, res)
	if err != nil {
		res.rollback()
		return nil, err
	}

	return v, nil
}

// Reset drops every singleton cached by i. Parents and children keep theirs.
func (i *ResolvingInjector) Reset() {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.init()
	i.logger.Debug("injector reset")
}

// get runs middleware around resolve.
func (i *ResolvingInjector) get(tok Token, res *resolution) (any, error) {
	if err := i.middleware.beforeResolve(tok); err != nil {
		return nil, err
	}

	v, err := i.resolve(tok, res)

	if mwErr := i.middleware.afterResolve(tok, v, err); mwErr != nil {
		return nil, mwErr
	}

	return v, err
}

func (i *ResolvingInjector) resolve(tok Token, res *resolution) (any, error) {
	if tok == nil {
		return nil, ErrUnresolvable(nil)
	}

	if cls, ok := tok.(ClassToken); ok && tok.Kind() == KindClass {
		meta := i.catalog.Lookup(cls)

		if meta.In != nil && meta.In != Injector(i) {
			return strictOn(meta.In, tok, res)
		}

		if meta.InRoot && i.parent != nil {
			return strictOn(i.Root(), tok, res)
		}
	}

	if p := findProvider(i.providers, tok); p != nil {
		if p.RootScoped() && i.parent != nil {
			if root, ok := i.Root().(*ResolvingInjector); ok {
				return root.strictWith(tok, p, res)
			}
		}

		return i.strictWith(tok, p, res)
	}

	if owner := i.WhoHas(tok); owner != nil {
		return strictOn(owner, tok, res)
	}

	return i.getStrict(tok, res)
}

// strictOn calls the strict path of target, keeping the resolution when it can.
func strictOn(target Injector, tok Token, res *resolution) (any, error) {
	if r, ok := target.(*ResolvingInjector); ok {
		return r.getStrict(tok, res)
	}

	return target.GetStrict(tok)
}

func (i *ResolvingInjector) getStrict(tok Token, res *resolution) (any, error) {
	return i.strictWith(tok, findProvider(i.providers, tok), res)
}

// strictWith returns the cached instance or builds one from p (nil means no
// provider) and caches it here.
func (i *ResolvingInjector) strictWith(tok Token, p Provider, res *resolution) (any, error) {
	if tok == nil {
		return nil, ErrUnresolvable(nil)
	}

	if v, ok := i.cached(tok); ok {
		return v, nil
	}

	if err := res.enter(i, tok); err != nil {
		return nil, err
	}
	defer res.leave()

	var (
		v     any
		err   error
		owned = true
	)

	switch {
	case p != nil:
		owned = !IsValueProvider(p)
		v, err = i.fromProvider(p, res)
	case IsClassToken(tok):
		v, err = i.createInstance(tok.(ClassToken), res)
	default:
		return nil, ErrUnresolvable(tok)
	}

	if err != nil {
		return nil, err
	}

	return i.store(tok, v, owned, res), nil
}

// fromProvider produces an instance according to the provider's shape.
func (i *ResolvingInjector) fromProvider(p Provider, res *resolution) (any, error) {
	switch pv := p.(type) {
	case ValueProvider:
		return pv.Value, nil
	case *ValueProvider:
		if pv == nil {
			return nil, ErrInvalidProvider(p)
		}

		return pv.Value, nil
	case ClassProvider:
		return i.fromClassProvider(pv, res)
	case *ClassProvider:
		if pv == nil {
			return nil, ErrInvalidProvider(p)
		}

		return i.fromClassProvider(*pv, res)
	case FactoryProvider:
		return i.fromFactory(pv, res)
	case *FactoryProvider:
		if pv == nil {
			return nil, ErrInvalidProvider(p)
		}

		return i.fromFactory(*pv, res)
	default:
		return nil, ErrInvalidProvider(p)
	}
}

func (i *ResolvingInjector) fromClassProvider(p ClassProvider, res *resolution) (any, error) {
	if p.Class == nil {
		return nil, ErrInvalidProvider(p)
	}

	return i.createInstance(p.Class, res)
}

func (i *ResolvingInjector) fromFactory(p FactoryProvider, res *resolution) (any, error) {
	if p.Factory == nil {
		return nil, ErrInvalidProvider(p)
	}

	deps := make([]any, len(p.Deps))
	for idx, dep := range p.Deps {
		v, err := i.get(dep, res)
		if err != nil {
			return nil, err
		}

		deps[idx] = v
	}

	v, err := p.Factory(deps...)
	if err != nil {
		return nil, NewConstructionError(p.Provide, err)
	}

	return v, nil
}

func (i *ResolvingInjector) createInstance(cls ClassToken, res *resolution) (any, error) {
	if cls == nil {
		return nil, ErrUnresolvable(nil)
	}

	if cls.Abstract() {
		return nil, ErrAbstractClass(cls)
	}

	meta := i.catalog.Lookup(cls)

	args := make(Args, len(meta.Deps))
	for idx, dep := range meta.Deps {
		if dep == nil {
			args[idx] = unset
			continue
		}

		v, err := i.get(dep, res)
		if err != nil {
			return nil, err
		}

		args[idx] = v
	}

	v, err := cls.construct(args)
	if err != nil {
		if errors.Is(err, ErrAbstractClassSentinel) {
			return nil, err
		}

		return nil, NewConstructionError(cls, err)
	}

	if err := bindMembers(v, cls, meta.Members); err != nil {
		return nil, err
	}

	return v, nil
}

func (i *ResolvingInjector) cached(tok Token) (any, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	if cls, ok := tok.(ClassToken); ok && tok.Kind() == KindClass {
		v, found := i.classes[cls]
		return v, found
	}

	v, found := i.ids[tok]

	return v, found
}

// store caches v for tok unless another call got there first, in which case
// the earlier instance is kept and returned.
func (i *ResolvingInjector) store(tok Token, v any, owned bool, res *resolution) any {
	i.mu.Lock()
	defer i.mu.Unlock()

	if cls, ok := tok.(ClassToken); ok && tok.Kind() == KindClass {
		if existing, found := i.classes[cls]; found {
			return existing
		}

		i.classes[cls] = v
	} else {
		if existing, found := i.ids[tok]; found {
			return existing
		}

		i.ids[tok] = v
	}

	i.order = append(i.order, cacheRecord{tok: tok, owned: owned})
	res.record(i, tok)

	return v
}

// evict removes a single cache entry.
func (i *ResolvingInjector) evict(tok Token) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if cls, ok := tok.(ClassToken); ok && tok.Kind() == KindClass {
		delete(i.classes, cls)
	} else {
		delete(i.ids, tok)
	}

	for idx := len(i.order) - 1; idx >= 0; idx-- {
		if i.order[idx].tok == tok {
			i.order = append(i.order[:idx], i.order[idx+1:]...)
			break
		}
	}
}
