package repository

import (
	"context"
	"fmt"

	"github.com/dt604/bloodsheet-golf/internal/domain"
	"github.com/google/uuid"
)

type playerRepo struct{}

// NewPlayerRepository returns a pgx-backed PlayerRepository.
func NewPlayerRepository() PlayerRepository {
	return &playerRepo{}
}

func (r *playerRepo) ListByMatch(ctx context.Context, db DBTX, matchID uuid.UUID) ([]domain.PlayerInMatch, error) {
	rows, err := db.Query(ctx, `
		SELECT user_id, match_id, team, initial_handicap, handicap, display_name, avatar_url, is_guest, created_at
		FROM match_players WHERE match_id = $1 ORDER BY created_at`, matchID)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	defer rows.Close()

	var out []domain.PlayerInMatch
	for rows.Next() {
		var p domain.PlayerInMatch
		if err := rows.Scan(&p.UserID, &p.MatchID, &p.Team, &p.InitialHandicap,
			&p.Handicap, &p.DisplayName, &p.AvatarURL, &p.IsGuest, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *playerRepo) Insert(ctx context.Context, db DBTX, player *domain.PlayerInMatch) error {
	_, err := db.Exec(ctx, `
		INSERT INTO match_players (user_id, match_id, team, initial_handicap, handicap, display_name, avatar_url, is_guest, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		player.UserID, player.MatchID, player.Team, player.InitialHandicap,
		player.Handicap, player.DisplayName, player.AvatarURL, player.IsGuest, player.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert player: %w", err)
	}
	return nil
}

func (r *playerRepo) UpdateHandicap(ctx context.Context, db DBTX, matchID, userID uuid.UUID, handicap float64) error {
	tag, err := db.Exec(ctx, `
		UPDATE match_players SET handicap = $1 WHERE match_id = $2 AND user_id = $3`,
		handicap, matchID, userID)
	if err != nil {
		return fmt.Errorf("update handicap: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("player", userID.String())
	}
	return nil
}
