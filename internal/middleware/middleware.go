// Package middleware wraps console menu operations with logging and panic
// recovery, the way HTTP handlers are wrapped in a server.
package middleware

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wecare/internal/model"

	"github.com/rs/zerolog"
)

// Operation is a single menu action.
type Operation func(ctx context.Context) error

// Middleware decorates a named operation.
type Middleware func(name string, next Operation) Operation

// ErrPanic is returned by Recovery when the wrapped operation panicked.
var ErrPanic = errors.New("operation panicked")

// Chain wraps op with mws. The first middleware is the outermost.
func Chain(name string, op Operation, mws ...Middleware) Operation {
	for i := len(mws) - 1; i >= 0; i-- {
		op = mws[i](name, op)
	}
	return op
}

// Logging logs each operation with its timing and outcome.
func Logging(logger zerolog.Logger) Middleware {
	return func(name string, next Operation) Operation {
		return func(ctx context.Context) error {
			start := time.Now()

			err := next(ctx)

			var event *zerolog.Event
			if err != nil {
				event = logger.Warn().Err(err).Str("error_kind", model.KindOf(err).String())
			} else {
				event = logger.Info()
			}
			event.
				Str("operation", name).
				Dur("duration", time.Since(start)).
				Bool("ok", err == nil).
				Msg("menu operation")

			return err
		}
	}
}

// Recovery recovers from panics and converts them into an ErrPanic error.
func Recovery(logger zerolog.Logger) Middleware {
	return func(name string, next Operation) Operation {
		return func(ctx context.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					logger.Error().
						Interface("panic", r).
						Str("operation", name).
						Msg("panic recovered")

					err = fmt.Errorf("%w: %s: %v", ErrPanic, name, r)
				}
			}()

			return next(ctx)
		}
	}
}
