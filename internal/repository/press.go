package repository

import (
	"context"
	"fmt"

	"github.com/dt604/bloodsheet-golf/internal/domain"
	"github.com/google/uuid"
)

type pressRepo struct{}

// NewPressRepository returns a pgx-backed PressRepository.
func NewPressRepository() PressRepository {
	return &pressRepo{}
}

func (r *pressRepo) Insert(ctx context.Context, db DBTX, press *domain.Press) error {
	_, err := db.Exec(ctx, `
		INSERT INTO presses (id, match_id, start_hole, pressed_by_team, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING`,
		press.ID, press.MatchID, press.StartHole, press.PressedByTeam,
		press.Status, press.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert press: %w", err)
	}
	return nil
}

func (r *pressRepo) ListByMatch(ctx context.Context, db DBTX, matchID uuid.UUID) ([]domain.Press, error) {
	rows, err := db.Query(ctx, `
		SELECT id, match_id, start_hole, pressed_by_team, status, created_at
		FROM presses WHERE match_id = $1 ORDER BY start_hole, created_at`, matchID)
	if err != nil {
		return nil, fmt.Errorf("list presses: %w", err)
	}
	defer rows.Close()

	var out []domain.Press
	for rows.Next() {
		var p domain.Press
		if err := rows.Scan(&p.ID, &p.MatchID, &p.StartHole, &p.PressedByTeam,
			&p.Status, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan press: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type attestationRepo struct{}

// NewAttestationRepository returns a pgx-backed AttestationRepository.
func NewAttestationRepository() AttestationRepository {
	return &attestationRepo{}
}

func (r *attestationRepo) Insert(ctx context.Context, db DBTX, att *domain.Attestation) error {
	_, err := db.Exec(ctx, `
		INSERT INTO attestations (match_id, user_id, attested_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (match_id, user_id) DO NOTHING`,
		att.MatchID, att.UserID, att.AttestedAt,
	)
	if err != nil {
		return fmt.Errorf("insert attestation: %w", err)
	}
	return nil
}

func (r *attestationRepo) ListByMatch(ctx context.Context, db DBTX, matchID uuid.UUID) ([]domain.Attestation, error) {
	rows, err := db.Query(ctx, `
		SELECT match_id, user_id, attested_at
		FROM attestations WHERE match_id = $1 ORDER BY attested_at`, matchID)
	if err != nil {
		return nil, fmt.Errorf("list attestations: %w", err)
	}
	defer rows.Close()

	var out []domain.Attestation
	for rows.Next() {
		var a domain.Attestation
		if err := rows.Scan(&a.MatchID, &a.UserID, &a.AttestedAt); err != nil {
			return nil, fmt.Errorf("scan attestation: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
