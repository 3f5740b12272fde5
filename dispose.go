package strata

import (
	"fmt"
	"io"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Disposable is implemented by instances that release resources when their
// injector is closed.
type Disposable interface {
	Dispose() error
}

// Close disposes every singleton this injector built, newest first, then
// resets the caches. Values supplied through value providers are not
// disposed because the injector does not own them. Instances implementing
// Disposable have Dispose called; otherwise io.Closer instances are closed.
// All errors are returned together.
func (i *ResolvingInjector) Close() error {
	i.mu.Lock()

	records := i.order
	instances := make([]any, len(records))

	for idx, rec := range records {
		if cls, ok := rec.tok.(ClassToken); ok && rec.tok.Kind() == KindClass {
			instances[idx] = i.classes[cls]
		} else {
			instances[idx] = i.ids[rec.tok]
		}
	}

	i.init()
	i.mu.Unlock()

	var errs error

	for idx := len(records) - 1; idx >= 0; idx-- {
		if !records[idx].owned {
			continue
		}

		errs = multierr.Append(errs, dispose(records[idx].tok, instances[idx]))
	}

	i.logger.Debug("injector closed",
		zap.Int("instances", len(records)),
		zap.Int("errors", len(multierr.Errors(errs))),
	)

	return errs
}

func dispose(tok Token, instance any) error {
	switch v := instance.(type) {
	case Disposable:
		if err := v.Dispose(); err != nil {
			return fmt.Errorf("failed to dispose %s: %w", tokenName(tok), err)
		}
	case io.Closer:
		if err := v.Close(); err != nil {
			return fmt.Errorf("failed to close %s: %w", tokenName(tok), err)
		}
	}

	return nil
}
