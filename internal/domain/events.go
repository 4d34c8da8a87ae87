package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// NewScoreUpsertedEvent creates the change-feed event for a score write.
// Partitioned by match so consumers see one match's writes in order.
func NewScoreUpsertedEvent(score *HoleScore) OutboxDraft {
	payload, _ := json.Marshal(ChangeEvent{
		Type:       EventScoreUpserted,
		MatchID:    score.MatchID,
		Score:      score,
		OccurredAt: time.Now(),
	})
	return OutboxDraft{
		EventID:       uuid.New(),
		AggregateType: AggregateScore,
		AggregateID:   score.MatchID.String(),
		EventType:     EventScoreUpserted,
		PartitionKey:  score.MatchID.String(),
		Payload:       payload,
		OccurredAt:    time.Now(),
	}
}

// NewPressOpenedEvent creates the change-feed event for a new press.
func NewPressOpenedEvent(press *Press) OutboxDraft {
	payload, _ := json.Marshal(ChangeEvent{
		Type:       EventPressOpened,
		MatchID:    press.MatchID,
		Press:      press,
		OccurredAt: time.Now(),
	})
	return OutboxDraft{
		EventID:       uuid.New(),
		AggregateType: AggregatePress,
		AggregateID:   press.MatchID.String(),
		EventType:     EventPressOpened,
		PartitionKey:  press.MatchID.String(),
		Payload:       payload,
		OccurredAt:    time.Now(),
	}
}

// NewMatchStatusEvent creates the change-feed event for a status transition.
func NewMatchStatusEvent(matchID uuid.UUID, status MatchStatus) OutboxDraft {
	payload, _ := json.Marshal(ChangeEvent{
		Type:       EventMatchStatusChanged,
		MatchID:    matchID,
		Status:     status,
		OccurredAt: time.Now(),
	})
	return OutboxDraft{
		EventID:       uuid.New(),
		AggregateType: AggregateMatch,
		AggregateID:   matchID.String(),
		EventType:     EventMatchStatusChanged,
		PartitionKey:  matchID.String(),
		Payload:       payload,
		OccurredAt:    time.Now(),
	}
}

// NewAttestationEvent creates the change-feed event for an attestation row.
func NewAttestationEvent(att *Attestation) OutboxDraft {
	payload, _ := json.Marshal(ChangeEvent{
		Type:        EventAttestationPosted,
		MatchID:     att.MatchID,
		Attestation: att,
		OccurredAt:  time.Now(),
	})
	return OutboxDraft{
		EventID:       uuid.New(),
		AggregateType: AggregateAttestation,
		AggregateID:   att.MatchID.String(),
		EventType:     EventAttestationPosted,
		PartitionKey:  att.MatchID.String(),
		Payload:       payload,
		OccurredAt:    time.Now(),
	}
}
