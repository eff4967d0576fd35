// Package events is the PostgreSQL-backed pub/sub bus between the API and the worker,
// built on Watermill's SQL transport.
//
// Every subscriber shares the "<service>-consumer" group, so each message is
// handled by one worker instance. Handlers must be idempotent: a failed message
// is retried with backoff and then nacked for redelivery. Wrap an error with
// Permanent to acknowledge and drop a message that can never succeed.
//
// Trace context travels in message metadata, so a worker span continues the
// request that published the event.
package events

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	watermillsql "github.com/ThreeDotsLabs/watermill-sql/v3/pkg/sql"
	"github.com/ThreeDotsLabs/watermill/components/forwarder"
	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/magmaminds/admissions/pkg/config"
	"github.com/magmaminds/admissions/pkg/logger"
)

const (
	defaultAttempts  = 3
	defaultBaseDelay = time.Second
	closeTimeout     = 30 * time.Second
	errBuffer        = 100

	// outboxTopic carries enveloped messages for the forwarder.
	outboxTopic = "_forwarder_queue"
)

// Handler processes one message. ctx carries the publisher's trace.
type Handler func(ctx context.Context, msg *message.Message) error

// EventBus publishes and consumes messages stored in PostgreSQL.
type EventBus struct {
	db        *sql.DB
	publisher message.Publisher
	sub       *watermillsql.Subscriber
	fwd       *forwarder.Forwarder
	outbox    bool
	retry     retryPolicy
	log       logger.Logger
	wg        sync.WaitGroup
}

// NewEventBus connects to cfg.DatabaseURL and publishes straight to the topic tables.
// Used by the worker, which only consumes.
func NewEventBus(cfg *config.Config, log logger.Logger) (*EventBus, error) {
	return open(cfg, log, false)
}

// NewEventBusWithForwarder publishes through a durable outbox topic that a
// forwarder daemon relays to the real topics. Call StartForwarder before publishing.
// Used by the API so a submitted application's event survives a crash right after Publish.
func NewEventBusWithForwarder(cfg *config.Config, log logger.Logger) (*EventBus, error) {
	return open(cfg, log, true)
}

func open(cfg *config.Config, log logger.Logger, outbox bool) (*EventBus, error) {
	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("events: open db: %w", err)
	}
	// The bus polls on its own small pool so it never starves request traffic.
	db.SetMaxOpenConns(4)

	wlog := &slogAdapter{log: log}

	pub, err := newPublisher(db, wlog)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	var publisher message.Publisher = pub
	if outbox {
		publisher = forwarder.NewPublisher(pub, forwarder.PublisherConfig{ForwarderTopic: outboxTopic})
	}

	sub, err := newSubscriber(db, cfg.ServiceName+"-consumer", wlog)
	if err != nil {
		_ = pub.Close()
		_ = db.Close()
		return nil, err
	}

	return &EventBus{
		db:        db,
		publisher: publisher,
		sub:       sub,
		outbox:    outbox,
		retry:     retryPolicy{attempts: defaultAttempts, baseDelay: defaultBaseDelay},
		log:       log,
	}, nil
}

func newPublisher(db *sql.DB, wlog watermill.LoggerAdapter) (*watermillsql.Publisher, error) {
	pub, err := watermillsql.NewPublisher(db, watermillsql.PublisherConfig{
		SchemaAdapter:        watermillsql.DefaultPostgreSQLSchema{},
		AutoInitializeSchema: true,
	}, wlog)
	if err != nil {
		return nil, fmt.Errorf("events: new publisher: %w", err)
	}
	return pub, nil
}

func newSubscriber(db *sql.DB, group string, wlog watermill.LoggerAdapter) (*watermillsql.Subscriber, error) {
	sub, err := watermillsql.NewSubscriber(db, watermillsql.SubscriberConfig{
		SchemaAdapter:    watermillsql.DefaultPostgreSQLSchema{},
		OffsetsAdapter:   watermillsql.DefaultPostgreSQLOffsetsAdapter{},
		InitializeSchema: true,
		ConsumerGroup:    group,
	}, wlog)
	if err != nil {
		return nil, fmt.Errorf("events: new subscriber %s: %w", group, err)
	}
	return sub, nil
}

// StartForwarder runs the outbox relay until ctx is done. It returns once the
// relay is running. Only valid on a bus from NewEventBusWithForwarder, and only once.
func (b *EventBus) StartForwarder(ctx context.Context) error {
	if !b.outbox {
		return errors.New("events: StartForwarder called on non-forwarder EventBus")
	}
	if b.fwd != nil {
		return errors.New("events: forwarder already started")
	}

	wlog := &slogAdapter{log: b.log}

	outboxSub, err := newSubscriber(b.db, "forwarder-consumer", wlog)
	if err != nil {
		return err
	}
	target, err := newPublisher(b.db, wlog)
	if err != nil {
		_ = outboxSub.Close()
		return err
	}

	fwd, err := forwarder.NewForwarder(outboxSub, target, wlog, forwarder.Config{ForwarderTopic: outboxTopic})
	if err != nil {
		_ = target.Close()
		_ = outboxSub.Close()
		return fmt.Errorf("events: create forwarder: %w", err)
	}
	b.fwd = fwd

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		if err := fwd.Run(ctx); err != nil {
			b.log.ErrorContext(ctx, "events: forwarder stopped with error", "error", err)
			return
		}
		b.log.InfoContext(ctx, "events: forwarder stopped")
	}()

	select {
	case <-fwd.Running():
		b.log.InfoContext(ctx, "events: forwarder started")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("events: waiting for forwarder: %w", ctx.Err())
	}
}

// NewJSONMessage encodes v as the payload of a new message with a random UUID.
func NewJSONMessage(v any) (*message.Message, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("events: encode payload: %w", err)
	}
	return message.NewMessage(watermill.NewUUID(), payload), nil
}

// DecodeJSON decodes msg's payload into T. Decoding failures are Permanent.
func DecodeJSON[T any](msg *message.Message) (T, error) {
	var v T
	if err := json.Unmarshal(msg.Payload, &v); err != nil {
		return v, Permanent(fmt.Errorf("events: decode message %s: %w", msg.UUID, err))
	}
	return v, nil
}

// Publish writes msgs to topic, stamping each with the trace context from ctx.
func (b *EventBus) Publish(ctx context.Context, topic string, msgs ...*message.Message) error {
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	for _, msg := range msgs {
		for k, v := range carrier {
			msg.Metadata.Set(k, v)
		}
	}
	if err := b.publisher.Publish(topic, msgs...); err != nil { //nolint:contextcheck
		return fmt.Errorf("events: publish to %s: %w", topic, err)
	}
	return nil
}

// Subscribe consumes topic in the background until ctx is done or the bus closes.
//
// A nil handler result acks the message. A Permanent error is logged and acked.
// Any other error is retried per the bus retry policy, then the message is
// nacked and the error sent on the returned channel. The channel is buffered
// and must be drained by the caller; it closes when consumption stops.
func (b *EventBus) Subscribe(ctx context.Context, topic string, handler Handler) (<-chan error, error) {
	ch, err := b.sub.Subscribe(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("events: subscribe to %s: %w", topic, err)
	}

	errCh := make(chan error, errBuffer)

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		defer close(errCh)
		for msg := range ch {
			b.dispatch(ctx, topic, msg, handler, errCh)
		}
	}()

	return errCh, nil
}

func (b *EventBus) dispatch(ctx context.Context, topic string, msg *message.Message, handler Handler, errCh chan<- error) {
	msgCtx := extractTrace(ctx, msg)

	err := b.retry.run(msgCtx, msg, handler, b.log)
	switch {
	case err == nil:
		msg.Ack()
	case IsPermanent(err):
		b.log.WarnContext(msgCtx, "events: dropping message",
			"topic", topic, "message_id", msg.UUID, "error", err)
		msg.Ack()
	default:
		msg.Nack()
		select {
		case errCh <- err:
		default:
			b.log.ErrorContext(msgCtx, "events: error channel full, dropping error",
				"topic", topic, "error", err)
		}
	}
}

func extractTrace(ctx context.Context, msg *message.Message) context.Context {
	carrier := propagation.MapCarrier{}
	for k, v := range msg.Metadata {
		carrier[k] = v
	}
	return otel.GetTextMapPropagator().Extract(ctx, carrier)
}

// Ping checks the bus database connection.
func (b *EventBus) Ping(ctx context.Context) error {
	if err := b.db.PingContext(ctx); err != nil {
		return fmt.Errorf("events: ping db: %w", err)
	}
	return nil
}

// Close stops consumption, waits up to 30s for in-flight handlers, then
// closes the publisher and the database pool.
func (b *EventBus) Close() error {
	if err := b.sub.Close(); err != nil {
		return fmt.Errorf("events: close subscriber: %w", err)
	}
	if b.fwd != nil {
		if err := b.fwd.Close(); err != nil {
			return fmt.Errorf("events: close forwarder: %w", err)
		}
	}

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(closeTimeout):
		b.log.Error("events: timed out waiting for in-flight handlers")
	}

	if err := b.publisher.Close(); err != nil {
		return fmt.Errorf("events: close publisher: %w", err)
	}
	return b.db.Close()
}

// slogAdapter bridges logger.Logger to watermill.LoggerAdapter.
type slogAdapter struct{ log logger.Logger }

func (a *slogAdapter) Error(msg string, err error, fields watermill.LogFields) {
	a.log.Error(msg, append(fieldsToArgs(fields), "error", err)...)
}
func (a *slogAdapter) Info(msg string, fields watermill.LogFields) {
	a.log.Info(msg, fieldsToArgs(fields)...)
}
func (a *slogAdapter) Debug(msg string, fields watermill.LogFields) {
	a.log.Debug(msg, fieldsToArgs(fields)...)
}
func (a *slogAdapter) Trace(msg string, fields watermill.LogFields) {
	a.log.Debug(msg, fieldsToArgs(fields)...)
}
func (a *slogAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &slogAdapter{log: a.log.With(fieldsToArgs(fields)...)}
}

func fieldsToArgs(fields watermill.LogFields) []any {
	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return args
}
