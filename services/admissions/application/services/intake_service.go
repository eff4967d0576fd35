package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	pkgevents "github.com/magmaminds/admissions/pkg/events"
	"github.com/magmaminds/admissions/pkg/logger"
	"github.com/magmaminds/admissions/pkg/notify"
	admdomain "github.com/magmaminds/admissions/services/admissions/domain"
	"github.com/magmaminds/admissions/services/admissions/domain/events"
	"github.com/magmaminds/admissions/services/admissions/domain/models"
	"github.com/magmaminds/admissions/services/admissions/domain/repositories"
	domainsvcs "github.com/magmaminds/admissions/services/admissions/domain/services"
)

// Response messages returned to the applicant.
const (
	MsgSubmitted          = "Application submitted successfully"
	MsgSubmittedNoMessage = "Application submitted successfully, but failed to send WhatsApp"
)

const (
	channelEmail    = "email"
	channelWhatsApp = "whatsapp"
)

// EmailSender delivers the staff email.
type EmailSender interface {
	Send(ctx context.Context, e notify.Email) error
}

// MessageSender delivers the staff WhatsApp message and returns the provider id.
type MessageSender interface {
	Send(ctx context.Context, m notify.Message) (string, error)
}

// EventPublisher publishes integration events. *events.EventBus satisfies it.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, msgs ...*message.Message) error
}

// IntakeConfig addresses staff notifications.
type IntakeConfig struct {
	MailFrom     string
	MailTo       string
	WhatsAppFrom string
	WhatsAppTo   string
	// Timeout bounds each notification leg. Zero means no bound.
	Timeout  time.Duration
	Location *time.Location
}

// SubmitInput is the applicant-supplied form.
type SubmitInput struct {
	Name   string
	Email  string
	Phone  string
	Course string
}

// SubmissionOutcome is the result of a stored application.
type SubmissionOutcome struct {
	ID                 int64
	Message            string
	MessagingDelivered bool
}

// IntakeService stores applications and notifies staff.
//
// The email leg runs detached from the request and its result is only logged.
// The WhatsApp leg is awaited and its result decides the response message.
// Neither leg can fail a submission once the row is stored.
type IntakeService struct {
	repo      repositories.ApplicationRepository
	mailer    EmailSender
	messenger MessageSender
	publisher EventPublisher
	cfg       IntakeConfig
	log       logger.Logger
	now       func() time.Time

	mu       sync.Mutex // guards closed and inflight.Add
	closed   bool
	inflight sync.WaitGroup

	notifications metric.Int64Counter
	submissions   metric.Int64Counter
}

// NewIntakeService wires the intake workflow. publisher may be nil.
func NewIntakeService(
	repo repositories.ApplicationRepository,
	mailer EmailSender,
	messenger MessageSender,
	publisher EventPublisher,
	cfg IntakeConfig,
	log logger.Logger,
) *IntakeService {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}

	meter := otel.Meter("github.com/magmaminds/admissions/services/admissions")
	notifications, err := meter.Int64Counter("admissions.notifications",
		metric.WithDescription("Staff notification attempts by channel and outcome"))
	if err != nil {
		notifications, _ = noop.NewMeterProvider().Meter("").Int64Counter("admissions.notifications")
	}
	submissions, err := meter.Int64Counter("admissions.applications.submitted",
		metric.WithDescription("Applications stored"))
	if err != nil {
		submissions, _ = noop.NewMeterProvider().Meter("").Int64Counter("admissions.applications.submitted")
	}

	return &IntakeService{
		repo:          repo,
		mailer:        mailer,
		messenger:     messenger,
		publisher:     publisher,
		cfg:           cfg,
		log:           log,
		now:           time.Now,
		notifications: notifications,
		submissions:   submissions,
	}
}

// Submit validates and stores an application, then notifies staff.
// Errors wrapping admdomain.ErrMissingFields mean nothing was stored.
// Any other error is a storage failure and no notification was attempted.
func (s *IntakeService) Submit(ctx context.Context, in SubmitInput) (SubmissionOutcome, error) {
	submittedAt := s.now()

	app, err := models.NewApplication(in.Name, in.Email, in.Phone, in.Course, submittedAt)
	if err != nil {
		return SubmissionOutcome{}, fmt.Errorf("%w: %w", admdomain.ErrMissingFields, err)
	}

	id, err := s.repo.Create(ctx, app)
	if err != nil {
		return SubmissionOutcome{}, fmt.Errorf("store application: %w", err)
	}
	app.ID = id
	s.submissions.Add(ctx, 1)

	s.publishSubmitted(ctx, app)
	s.notifyByEmail(ctx, app)
	delivered := s.notifyByWhatsApp(ctx, app, submittedAt)

	out := SubmissionOutcome{ID: id, Message: MsgSubmitted, MessagingDelivered: delivered}
	if !delivered {
		out.Message = MsgSubmittedNoMessage
	}
	return out, nil
}

// Wait blocks until detached email sends have finished.
func (s *IntakeService) Wait() {
	s.inflight.Wait()
}

// Close stops detaching email sends and waits for those in flight. Submissions
// that arrive afterwards, from handlers still running past the server's
// shutdown deadline, send their email inline instead.
func (s *IntakeService) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.inflight.Wait()
}

func (s *IntakeService) publishSubmitted(ctx context.Context, app *models.Application) {
	if s.publisher == nil {
		return
	}

	msg, err := pkgevents.NewJSONMessage(events.ApplicationSubmittedEvent{
		EventID:       uuid.New(),
		Version:       1,
		ApplicationID: app.ID,
		Course:        app.Course,
		OccurredAt:    app.SubmittedAt,
	})
	if err != nil {
		s.log.ErrorContext(ctx, "encode application event", "application_id", app.ID, "error", err)
		return
	}

	if err := s.publisher.Publish(ctx, events.TopicApplicationSubmitted, msg); err != nil {
		s.log.WarnContext(ctx, "publish application event", "application_id", app.ID, "error", err)
	}
}

func (s *IntakeService) notifyByEmail(ctx context.Context, app *models.Application) {
	content, err := domainsvcs.ComposeEmail(app)
	if err != nil {
		s.log.ErrorContext(ctx, "compose staff email", "application_id", app.ID, "error", err)
		s.count(ctx, channelEmail, false)
		return
	}
	email := notify.Email{
		From:    s.cfg.MailFrom,
		To:      s.cfg.MailTo,
		Subject: content.Subject,
		HTML:    content.HTML,
		Text:    content.Text,
	}

	// Detached from the request so a client disconnect does not abort the send.
	sendCtx := context.WithoutCancel(ctx)
	send := func() {
		sendCtx, cancel := s.withTimeout(sendCtx)
		defer cancel()

		if err := s.mailer.Send(sendCtx, email); err != nil {
			s.log.ErrorContext(sendCtx, "staff email failed", "application_id", app.ID, "error", err)
			s.count(sendCtx, channelEmail, false)
			return
		}
		s.log.InfoContext(sendCtx, "staff email sent", "application_id", app.ID)
		s.count(sendCtx, channelEmail, true)
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		send()
		return
	}
	s.inflight.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.inflight.Done()
		send()
	}()
}

func (s *IntakeService) notifyByWhatsApp(ctx context.Context, app *models.Application, at time.Time) bool {
	msg := notify.Message{
		From: s.cfg.WhatsAppFrom,
		To:   s.cfg.WhatsAppTo,
		Body: domainsvcs.ComposeWhatsApp(app, at, s.cfg.Location),
	}

	sendCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	sid, err := s.messenger.Send(sendCtx, msg)
	if err != nil {
		s.log.ErrorContext(ctx, "staff whatsapp failed", "application_id", app.ID, "error", err)
		s.count(ctx, channelWhatsApp, false)
		return false
	}
	s.log.InfoContext(ctx, "staff whatsapp sent", "application_id", app.ID, "message_sid", sid)
	s.count(ctx, channelWhatsApp, true)
	return true
}

func (s *IntakeService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.cfg.Timeout)
}

func (s *IntakeService) count(ctx context.Context, channel string, ok bool) {
	outcome := "sent"
	if !ok {
		outcome = "failed"
	}
	s.notifications.Add(ctx, 1, metric.WithAttributes(
		attribute.String("channel", channel),
		attribute.String("outcome", outcome),
	))
}
