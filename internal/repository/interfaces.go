package repository

import (
	"context"

	"github.com/dt604/bloodsheet-golf/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX abstracts pgx.Tx and pgxpool.Pool so repositories work with both.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// MatchRepository provides access to matches.
type MatchRepository interface {
	// FindByID returns a match by ID.
	FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Match, error)

	// FindByJoinCode returns a match by its join code.
	FindByJoinCode(ctx context.Context, db DBTX, code string) (*domain.Match, error)

	// ListByGroup returns all sibling matches of a group.
	ListByGroup(ctx context.Context, db DBTX, groupID uuid.UUID) ([]domain.Match, error)

	// Create inserts a new match.
	Create(ctx context.Context, db DBTX, match *domain.Match) error

	// UpdateStatus transitions the match lifecycle.
	UpdateStatus(ctx context.Context, db DBTX, id uuid.UUID, status domain.MatchStatus) error

	// Delete removes an abandoned match; child rows cascade.
	Delete(ctx context.Context, db DBTX, id uuid.UUID) error
}

// PlayerRepository provides access to match_players.
type PlayerRepository interface {
	// ListByMatch returns the participants of a match in join order.
	ListByMatch(ctx context.Context, db DBTX, matchID uuid.UUID) ([]domain.PlayerInMatch, error)

	// Insert adds a participant.
	Insert(ctx context.Context, db DBTX, player *domain.PlayerInMatch) error

	// UpdateHandicap applies a mid-round handicap correction. Affects all
	// recomputation from this point; nothing historical is rewritten.
	UpdateHandicap(ctx context.Context, db DBTX, matchID, userID uuid.UUID, handicap float64) error
}

// ScoreRepository provides access to hole_scores.
type ScoreRepository interface {
	// Upsert writes a score row, overwriting on the (match, hole, player)
	// key. Idempotent; the last write physically committed wins.
	Upsert(ctx context.Context, db DBTX, score *domain.HoleScore) error

	// ListByMatch returns all score rows of one match.
	ListByMatch(ctx context.Context, db DBTX, matchID uuid.UUID) ([]domain.HoleScore, error)

	// ListByMatches returns all score rows across sibling matches.
	ListByMatches(ctx context.Context, db DBTX, matchIDs []uuid.UUID) ([]domain.HoleScore, error)
}

// PressRepository provides access to presses.
type PressRepository interface {
	// Insert creates a press. Presses are immutable after creation.
	Insert(ctx context.Context, db DBTX, press *domain.Press) error

	// ListByMatch returns a match's presses ordered by start hole.
	ListByMatch(ctx context.Context, db DBTX, matchID uuid.UUID) ([]domain.Press, error)
}

// AttestationRepository provides access to attestations.
type AttestationRepository interface {
	// Insert writes an attestation row. Duplicate attestations by the
	// same user are absorbed, not errors.
	Insert(ctx context.Context, db DBTX, att *domain.Attestation) error

	// ListByMatch returns a match's attestations.
	ListByMatch(ctx context.Context, db DBTX, matchID uuid.UUID) ([]domain.Attestation, error)
}

// CourseRepository provides access to the course directory mirror.
type CourseRepository interface {
	// FindByID returns a course with its 18 holes in order.
	FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Course, error)

	// UpdateStrokeIndex persists a scorekeeper's stroke index correction.
	UpdateStrokeIndex(ctx context.Context, db DBTX, courseID uuid.UUID, holeNumber, newIndex int) error
}

// OutboxRepository provides access to the event_outbox table.
type OutboxRepository interface {
	// Insert writes an outbox event (within the same transaction as the
	// row change it describes).
	Insert(ctx context.Context, db DBTX, draft domain.OutboxDraft) error

	// FetchUnpublished returns unpublished events for the outbox poller.
	FetchUnpublished(ctx context.Context, db DBTX, limit int) ([]domain.OutboxDraft, error)

	// MarkPublished marks events as published.
	MarkPublished(ctx context.Context, db DBTX, ids []uuid.UUID) error
}
