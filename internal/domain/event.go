package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventType enumerates all domain event types carried on the change feed.
type EventType string

const (
	EventScoreUpserted      EventType = "golf.score.upserted"
	EventPressOpened        EventType = "golf.press.opened"
	EventMatchCreated       EventType = "golf.match.created"
	EventMatchStatusChanged EventType = "golf.match.status_changed"
	EventAttestationPosted  EventType = "golf.attestation.posted"
)

// AggregateType enumerates the aggregate root types for outbox events.
type AggregateType string

const (
	AggregateMatch       AggregateType = "match"
	AggregateScore       AggregateType = "score"
	AggregatePress       AggregateType = "press"
	AggregateAttestation AggregateType = "attestation"
)

// OutboxDraft is the payload written to the event_outbox table, in the
// same transaction as the row change it describes. The outbox poller
// publishes drafts to the change feed.
type OutboxDraft struct {
	EventID       uuid.UUID       `json:"eventId"`
	AggregateType AggregateType   `json:"aggregateType"`
	AggregateID   string          `json:"aggregateId"`
	EventType     EventType       `json:"eventType"`
	PartitionKey  string          `json:"partitionKey"`
	Payload       json.RawMessage `json:"payload"`
	OccurredAt    time.Time       `json:"occurredAt"`
}

// ChangeEvent is the row-level change notification delivered to
// synchronizer sessions and websocket rooms. Exactly one of Score, Press,
// Attestation, or Status is set, according to Type.
type ChangeEvent struct {
	Type        EventType    `json:"type"`
	MatchID     uuid.UUID    `json:"match_id"`
	Score       *HoleScore   `json:"score,omitempty"`
	Press       *Press       `json:"press,omitempty"`
	Attestation *Attestation `json:"attestation,omitempty"`
	Status      MatchStatus  `json:"status,omitempty"`
	OccurredAt  time.Time    `json:"occurred_at"`
}
