package repository

import (
	"encoding/json"
	"context"
	"fmt"

	"github.com/dt604/bloodsheet-golf/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type matchRepo struct{}

// NewMatchRepository returns a pgx-backed MatchRepository.
func NewMatchRepository() MatchRepository {
	return &matchRepo{}
}

const matchColumns = `id, join_code, course_id, group_id, format, wager_amount, wager_type, status, side_bets, created_by, created_at, updated_at`

func (r *matchRepo) FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Match, error) {
	row := db.QueryRow(ctx, `SELECT `+matchColumns+` FROM matches WHERE id = $1`, id)
	return scanMatch(row)
}

func (r *matchRepo) FindByJoinCode(ctx context.Context, db DBTX, code string) (*domain.Match, error) {
	row := db.QueryRow(ctx, `SELECT `+matchColumns+` FROM matches WHERE join_code = $1`, code)
	return scanMatch(row)
}

func (r *matchRepo) ListByGroup(ctx context.Context, db DBTX, groupID uuid.UUID) ([]domain.Match, error) {
	rows, err := db.Query(ctx, `SELECT `+matchColumns+` FROM matches WHERE group_id = $1 ORDER BY created_at`, groupID)
	if err != nil {
		return nil, fmt.Errorf("list matches by group: %w", err)
	}
	defer rows.Close()

	var out []domain.Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

func (r *matchRepo) Create(ctx context.Context, db DBTX, match *domain.Match) error {
	sideBets, err := json.Marshal(match.SideBets)
	if err != nil {
		return fmt.Errorf("marshal side bets: %w", err)
	}
	_, err = db.Exec(ctx, `
		INSERT INTO matches (id, join_code, course_id, group_id, format, wager_amount, wager_type, status, side_bets, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		match.ID, match.JoinCode, match.CourseID, match.GroupID,
		match.Format, match.WagerAmount, match.WagerType, match.Status,
		sideBets, match.CreatedBy, match.CreatedAt, match.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert match: %w", err)
	}
	return nil
}

func (r *matchRepo) UpdateStatus(ctx context.Context, db DBTX, id uuid.UUID, status domain.MatchStatus) error {
	tag, err := db.Exec(ctx, `UPDATE matches SET status = $1, updated_at = now() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("update match status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("match", id.String())
	}
	return nil
}

func (r *matchRepo) Delete(ctx context.Context, db DBTX, id uuid.UUID) error {
	_, err := db.Exec(ctx, `DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete match: %w", err)
	}
	return nil
}

func scanMatch(row pgx.Row) (*domain.Match, error) {
	var m domain.Match
	var sideBets []byte
	err := row.Scan(&m.ID, &m.JoinCode, &m.CourseID, &m.GroupID, &m.Format,
		&m.WagerAmount, &m.WagerType, &m.Status, &sideBets, &m.CreatedBy,
		&m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan match: %w", err)
	}
	if len(sideBets) > 0 {
		if err := json.Unmarshal(sideBets, &m.SideBets); err != nil {
			return nil, fmt.Errorf("unmarshal side bets: %w", err)
		}
	}
	return &m, nil
}
