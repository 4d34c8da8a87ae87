package repository

import (
	"context"
	"fmt"

	"github.com/dt604/bloodsheet-golf/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type scoreRepo struct{}

// NewScoreRepository returns a pgx-backed ScoreRepository.
func NewScoreRepository() ScoreRepository {
	return &scoreRepo{}
}

// Upsert is a full-row overwrite on the (match, hole, player) key. No
// field-level merge, no version check; two devices racing on the same
// hole resolve to whichever write lands last.
func (r *scoreRepo) Upsert(ctx context.Context, db DBTX, score *domain.HoleScore) error {
	_, err := db.Exec(ctx, `
		INSERT INTO hole_scores (match_id, hole_number, player_id, gross, net, trash_dots, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		ON CONFLICT (match_id, hole_number, player_id)
		DO UPDATE SET gross = EXCLUDED.gross, net = EXCLUDED.net,
		              trash_dots = EXCLUDED.trash_dots, updated_at = now()`,
		score.MatchID, score.HoleNumber, score.PlayerID,
		score.Gross, score.Net, tagStrings(score.TrashDots),
	)
	if err != nil {
		return fmt.Errorf("upsert score: %w", err)
	}
	return nil
}

func (r *scoreRepo) ListByMatch(ctx context.Context, db DBTX, matchID uuid.UUID) ([]domain.HoleScore, error) {
	return r.ListByMatches(ctx, db, []uuid.UUID{matchID})
}

func (r *scoreRepo) ListByMatches(ctx context.Context, db DBTX, matchIDs []uuid.UUID) ([]domain.HoleScore, error) {
	rows, err := db.Query(ctx, `
		SELECT match_id, hole_number, player_id, gross, net, trash_dots, updated_at
		FROM hole_scores WHERE match_id = ANY($1) ORDER BY hole_number, player_id`, matchIDs)
	if err != nil {
		return nil, fmt.Errorf("list scores: %w", err)
	}
	defer rows.Close()
	return scanScores(rows)
}

func scanScores(rows pgx.Rows) ([]domain.HoleScore, error) {
	var out []domain.HoleScore
	for rows.Next() {
		var s domain.HoleScore
		var dots []string
		if err := rows.Scan(&s.MatchID, &s.HoleNumber, &s.PlayerID,
			&s.Gross, &s.Net, &dots, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		for _, d := range dots {
			s.TrashDots = append(s.TrashDots, domain.TrashTag(d))
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func tagStrings(tags []domain.TrashTag) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = string(t)
	}
	return out
}
