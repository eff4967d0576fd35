package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"

	"github.com/magmaminds/admissions/pkg/logger"
)

const maxRetryInterval = 30 * time.Second

type permanentError struct{ err error }

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks err as not worth retrying. The bus acks the message and logs err.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// IsPermanent reports whether err, or anything it wraps, was marked Permanent.
func IsPermanent(err error) bool {
	var p *permanentError
	return errors.As(err, &p)
}

// retryPolicy runs a handler up to attempts times, doubling the delay after each failure.
type retryPolicy struct {
	attempts  int
	baseDelay time.Duration
}

// wrap adapts h to Watermill's retry middleware. The handler receives the
// message context, so callers set it with msg.SetContext before invoking.
func (p retryPolicy) wrap(h Handler, log logger.Logger) message.HandlerFunc {
	retry := middleware.Retry{
		MaxRetries:      p.attempts - 1,
		InitialInterval: p.baseDelay,
		MaxInterval:     maxRetryInterval,
		Multiplier:      2,
		ShouldRetry: func(params middleware.RetryParams) bool {
			return !IsPermanent(params.Err)
		},
		Logger: &slogAdapter{log: log},
	}
	return retry.Middleware(func(msg *message.Message) ([]*message.Message, error) {
		return nil, h(msg.Context(), msg)
	})
}

func (p retryPolicy) run(ctx context.Context, msg *message.Message, h Handler, log logger.Logger) error {
	msg.SetContext(ctx)
	_, err := p.wrap(h, log)(msg)
	if err == nil || IsPermanent(err) || errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("events: handler failed after %d attempts: %w", p.attempts, err)
}
