package services

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	pkgevents "github.com/magmaminds/admissions/pkg/events"
	"github.com/magmaminds/admissions/services/admissions/domain/events"
)

// CourseTally is the per-course submission counter. *cache.ApplicationTally satisfies it.
type CourseTally interface {
	Increment(ctx context.Context, eventID uuid.UUID, course string) (bool, error)
	Counts(ctx context.Context) (map[string]int64, error)
}

// TallyService maintains and reads the submissions-per-course read model.
type TallyService struct {
	tally CourseTally
}

// NewTallyService returns a TallyService over tally.
func NewTallyService(tally CourseTally) *TallyService {
	return &TallyService{tally: tally}
}

// HandleSubmitted is the application.submitted subscriber. Undecodable
// payloads and events without an id are dropped rather than retried.
func (s *TallyService) HandleSubmitted(ctx context.Context, msg *message.Message) error {
	evt, err := pkgevents.DecodeJSON[events.ApplicationSubmittedEvent](msg)
	if err != nil {
		return err
	}
	if evt.EventID == uuid.Nil {
		return pkgevents.Permanent(fmt.Errorf("application.submitted %s: missing event_id", msg.UUID))
	}
	if _, err := s.tally.Increment(ctx, evt.EventID, evt.Course); err != nil {
		return fmt.Errorf("tally application %d: %w", evt.ApplicationID, err)
	}
	return nil
}

// Counts returns submissions per course label.
func (s *TallyService) Counts(ctx context.Context) (map[string]int64, error) {
	counts, err := s.tally.Counts(ctx)
	if err != nil {
		return nil, fmt.Errorf("read tally: %w", err)
	}
	return counts, nil
}
