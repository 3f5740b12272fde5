package strata

import (
	"fmt"

	"github.com/xraph/go-utils/errs"
)

// =============================================================================
// ERROR CODES
// =============================================================================

const (
	// CodeUnresolvable indicates an id token with no provider anywhere in the chain
	CodeUnresolvable = "UNRESOLVABLE_TOKEN"

	// CodeInvalidProvider indicates a provider matching none of the value, class or factory shapes
	CodeInvalidProvider = "INVALID_PROVIDER"

	// CodeNoAppInjector indicates the app injector slot was read before initialization
	CodeNoAppInjector = "NO_APP_INJECTOR"

	// CodeCircularDependency indicates a token was requested while it was being built
	CodeCircularDependency = "CIRCULAR_DEPENDENCY"

	// CodeTypeMismatch indicates a resolved instance is not of the requested type
	CodeTypeMismatch = "TYPE_MISMATCH"

	// CodeAbstractClass indicates an abstract class token without a provider
	CodeAbstractClass = "ABSTRACT_CLASS"

	// CodeConstructionFailed indicates a constructor or factory returned an error
	CodeConstructionFailed = "CONSTRUCTION_FAILED"

	// CodeInvalidMember indicates a declared member cannot be bound on the instance
	CodeInvalidMember = "INVALID_MEMBER"
)

// =============================================================================
// SENTINEL ERRORS
// =============================================================================

// ErrUnresolvableSentinel matches any unresolvable token error.
var ErrUnresolvableSentinel = errs.NewError(CodeUnresolvable, "unresolvable token", nil)

// ErrInvalidProviderSentinel matches any malformed provider error.
var ErrInvalidProviderSentinel = errs.NewError(CodeInvalidProvider, "invalid provider", nil)

// ErrNoAppInjector is returned when the app injector is used before InitApp or SetApp.
var ErrNoAppInjector = errs.NewError(CodeNoAppInjector, "app injector is not initialized", nil)

// ErrCircularDependencySentinel matches any circular dependency error.
var ErrCircularDependencySentinel = errs.NewError(CodeCircularDependency, "circular dependency", nil)

// ErrTypeMismatchSentinel matches any type mismatch error.
var ErrTypeMismatchSentinel = errs.NewError(CodeTypeMismatch, "type mismatch", nil)

// ErrAbstractClassSentinel matches any abstract class instantiation error.
var ErrAbstractClassSentinel = errs.NewError(CodeAbstractClass, "abstract class", nil)

// ErrConstructionFailedSentinel matches any construction failure.
var ErrConstructionFailedSentinel = errs.NewError(CodeConstructionFailed, "construction failed", nil)

// ErrInvalidMemberSentinel matches any member binding error.
var ErrInvalidMemberSentinel = errs.NewError(CodeInvalidMember, "invalid member", nil)

// =============================================================================
// ERROR CONSTRUCTORS
// =============================================================================

// ErrUnresolvable creates an error for an id token nobody provides.
func ErrUnresolvable(tok Token) *errs.Error {
	return errs.NewError(
		CodeUnresolvable,
		fmt.Sprintf("token '%s' is not a class and has no provider", tokenName(tok)),
		nil,
	).WithContext("token", tokenName(tok)).(*errs.Error)
}

// ErrInvalidProvider creates an error for a provider of unknown shape.
func ErrInvalidProvider(p Provider) *errs.Error {
	return errs.NewError(
		CodeInvalidProvider,
		fmt.Sprintf("provider %T for '%s' must be a value, class or factory", p, tokenName(providerToken(p))),
		nil,
	).WithContext("token", tokenName(providerToken(p))).
		WithContext("provider_type", fmt.Sprintf("%T", p)).(*errs.Error)
}

// ErrCircularDependency creates an error naming the dependency chain.
func ErrCircularDependency(cycle []string) *errs.Error {
	return errs.NewError(
		CodeCircularDependency,
		fmt.Sprintf("circular dependency detected: %v", cycle),
		nil,
	).WithContext("cycle", cycle).(*errs.Error)
}

// ErrTypeMismatch creates an error for a resolved instance of the wrong type.
func ErrTypeMismatch(tok Token, actual any) *errs.Error {
	return errs.NewError(
		CodeTypeMismatch,
		fmt.Sprintf("token '%s' type mismatch: got %T", tokenName(tok), actual),
		nil,
	).WithContext("token", tokenName(tok)).
		WithContext("actual_type", fmt.Sprintf("%T", actual)).(*errs.Error)
}

// ErrAbstractClass creates an error for an abstract class that was asked to construct itself.
func ErrAbstractClass(tok Token) *errs.Error {
	return errs.NewError(
		CodeAbstractClass,
		fmt.Sprintf("class '%s' is abstract and has no provider", tokenName(tok)),
		nil,
	).WithContext("token", tokenName(tok)).(*errs.Error)
}

// NewConstructionError wraps a constructor or factory failure.
func NewConstructionError(tok Token, cause error) *errs.Error {
	return errs.NewError(
		CodeConstructionFailed,
		fmt.Sprintf("token '%s' construction failed", tokenName(tok)),
		cause,
	).WithContext("token", tokenName(tok)).(*errs.Error)
}

// ErrInvalidMember creates an error for an injected member that cannot be bound.
func ErrInvalidMember(tok Token, field, reason string) *errs.Error {
	return errs.NewError(
		CodeInvalidMember,
		fmt.Sprintf("class '%s' member '%s': %s", tokenName(tok), field, reason),
		nil,
	).WithContext("token", tokenName(tok)).
		WithContext("member", field).(*errs.Error)
}
