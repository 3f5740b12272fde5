package strata

import "fmt"

// Get resolves tok from inj and asserts the result to T.
// A nil instance yields the zero value of T.
func Get[T any](inj Injector, tok Token) (T, error) {
	var zero T

	instance, err := inj.Get(tok)
	if err != nil {
		return zero, err
	}

	return assertType[T](tok, instance)
}

// MustGet resolves or panics - use only during startup.
func MustGet[T any](inj Injector, tok Token) T {
	instance, err := Get[T](inj, tok)
	if err != nil {
		panic(fmt.Sprintf("failed to resolve %s: %v", tokenName(tok), err))
	}

	return instance
}

// GetClass resolves a class token with its type inferred.
func GetClass[T any](inj Injector, cls *Class[T]) (T, error) {
	return Get[T](inj, cls)
}

// GetID resolves an id token with its type inferred.
func GetID[T any](inj Injector, id *ID[T]) (T, error) {
	return Get[T](inj, id)
}

// Create builds a fresh, uncached instance of cls.
func Create[T any](inj Injector, cls *Class[T]) (T, error) {
	var zero T

	instance, err := inj.CreateInstance(cls)
	if err != nil {
		return zero, err
	}

	return assertType[T](cls, instance)
}

func assertType[T any](tok Token, instance any) (T, error) {
	var zero T

	if instance == nil {
		return zero, nil
	}

	typed, ok := instance.(T)
	if !ok {
		return zero, ErrTypeMismatch(tok, instance)
	}

	return typed, nil
}
