// Package app holds the infrastructure container handed to every bounded context.
package app

import (
	"github.com/magmaminds/admissions/pkg/cache"
	"github.com/magmaminds/admissions/pkg/config"
	"github.com/magmaminds/admissions/pkg/database"
	"github.com/magmaminds/admissions/pkg/events"
	"github.com/magmaminds/admissions/pkg/logger"
	"github.com/magmaminds/admissions/pkg/notify"
)

// Application holds shared infrastructure dependencies for all services.
// Pass it to each context's route or subscriber registration at startup.
//
// Logging: Logger is backed by a trace-aware handler. Use the context methods
// so trace_id, span_id and request_id are attached automatically:
//
//	app.Logger.InfoContext(ctx, "application stored", "application_id", id)
//
// Use Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Config    *config.Config
	Db        *database.Database
	Logger    logger.Logger
	EventBus  *events.EventBus   // nil disables event publishing
	Redis     *cache.RedisClient // nil disables the application tally
	Mailer    *notify.SMTPSender
	Messenger *notify.TwilioSender
}

// NewNotifiers builds the staff notification senders from cfg.
func NewNotifiers(cfg *config.Config) (*notify.SMTPSender, *notify.TwilioSender) {
	mailer := notify.NewSMTPSender(notify.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
	})
	return mailer, notify.NewTwilioSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken)
}
