package services

import (
	"github.com/magmaminds/admissions/pkg/app"
	"github.com/magmaminds/admissions/pkg/cache"
	"github.com/magmaminds/admissions/services/admissions/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for the admissions context.
type Services struct {
	Intake *IntakeService
	Tally  *TallyService
}

// New wires the admissions services with infrastructure from the Application container.
// Tally is nil when Redis is not configured.
func New(a *app.Application) *Services {
	cfg := a.Config

	var publisher EventPublisher
	if a.EventBus != nil {
		publisher = a.EventBus
	}

	intake := NewIntakeService(
		postgres.NewApplicationRepository(a.Db),
		a.Mailer,
		a.Messenger,
		publisher,
		IntakeConfig{
			MailFrom:     cfg.MailFrom,
			MailTo:       cfg.MailStaffTo,
			WhatsAppFrom: cfg.WhatsAppFrom,
			WhatsAppTo:   cfg.WhatsAppTo,
			Timeout:      cfg.NotifyTimeout,
			Location:     cfg.Location(),
		},
		a.Logger,
	)

	var tally *TallyService
	if a.Redis != nil {
		tally = NewTallyService(cache.NewApplicationTally(a.Redis))
	}

	return &Services{Intake: intake, Tally: tally}
}
