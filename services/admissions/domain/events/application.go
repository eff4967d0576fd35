package events

import (
	"time"

	"github.com/google/uuid"
)

// TopicApplicationSubmitted is the Watermill topic published when an Application is stored.
const TopicApplicationSubmitted = "application.submitted"

// ApplicationSubmittedEvent is published after a new Application is persisted.
// It carries no applicant contact details.
type ApplicationSubmittedEvent struct {
	EventID       uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version       int       `json:"version"`  // Schema version; increment on breaking changes
	ApplicationID int64     `json:"application_id"`
	Course        string    `json:"course"`
	OccurredAt    time.Time `json:"occurred_at"`
}
