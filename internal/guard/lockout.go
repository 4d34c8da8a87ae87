package guard

import (
	"context"
	"time"

	"github.com/dt604/bloodsheet-golf/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	MaxJoinAttempts   = 10
	JoinLockoutWindow = 15 * time.Minute
)

// RecordJoinAttempt inserts a join-code attempt row.
func RecordJoinAttempt(ctx context.Context, pool *pgxpool.Pool, userID, code string, success bool) {
	_, _ = pool.Exec(ctx, `
		INSERT INTO join_attempts (user_id, code, success)
		VALUES ($1, $2, $3)`,
		userID, code, success)
}

// CheckJoinLocked rejects the user if they have burned MaxJoinAttempts
// failed join codes inside the lockout window. Join codes are short enough
// to brute-force without this.
func CheckJoinLocked(ctx context.Context, pool *pgxpool.Pool, userID string) error {
	var count int
	err := pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM join_attempts
		WHERE user_id = $1 AND success = false
		  AND created_at > $2`,
		userID, time.Now().Add(-JoinLockoutWindow)).Scan(&count)
	if err != nil {
		return nil // fail open on DB error, don't block joins
	}
	if count >= MaxJoinAttempts {
		return domain.ErrRateLimited("too many failed join attempts, try again later")
	}
	return nil
}
