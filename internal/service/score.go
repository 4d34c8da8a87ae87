package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/dt604/bloodsheet-golf/internal/domain"
	"github.com/dt604/bloodsheet-golf/internal/repository"
	"github.com/dt604/bloodsheet-golf/internal/scoring"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ScoreService handles score and press writes. Every mutation lands in
// the same transaction as its outbox event so the change feed never
// misses a row.
type ScoreService struct {
	pool    *pgxpool.Pool
	matches repository.MatchRepository
	players repository.PlayerRepository
	scores  repository.ScoreRepository
	presses repository.PressRepository
	courses repository.CourseRepository
	outbox  repository.OutboxRepository
	logger  *slog.Logger
}

// NewScoreService creates a ScoreService.
func NewScoreService(
	pool *pgxpool.Pool,
	matches repository.MatchRepository,
	players repository.PlayerRepository,
	scores repository.ScoreRepository,
	presses repository.PressRepository,
	courses repository.CourseRepository,
	outbox repository.OutboxRepository,
	logger *slog.Logger,
) *ScoreService {
	return &ScoreService{
		pool:    pool,
		matches: matches,
		players: players,
		scores:  scores,
		presses: presses,
		courses: courses,
		outbox:  outbox,
		logger:  logger,
	}
}

// UpsertScoreInput holds one score edit.
type UpsertScoreInput struct {
	HoleNumber int               `json:"hole_number"`
	PlayerID   uuid.UUID         `json:"player_id"`
	Gross      int               `json:"gross"`
	TrashDots  []domain.TrashTag `json:"trash_dots,omitempty"`
}

// UpsertScore writes a score row, overwriting any prior row on the
// (match, hole, player) key. Net is allocated server-side so every
// persisted row is self-contained.
func (s *ScoreService) UpsertScore(ctx context.Context, matchID uuid.UUID, input UpsertScoreInput) (*domain.HoleScore, error) {
	if err := domain.ValidateGross(input.Gross); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}
	if err := domain.ValidateHoleNumber(input.HoleNumber); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}
	if err := domain.ValidateTrashDots(input.TrashDots); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}

	match, course, players, err := s.loadMatchContext(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if match.Status != domain.MatchInProgress {
		return nil, domain.ErrMatchLocked(match.Status)
	}
	hole := course.HoleByNumber(input.HoleNumber)
	if hole == nil {
		return nil, domain.ErrValidation("hole not on course")
	}
	if !rosterContains(players, input.PlayerID) {
		return nil, domain.ErrValidation("player not in match")
	}

	alloc := scoring.NewCard(*match, *course, players, nil, nil).Allocations()
	score := &domain.HoleScore{
		MatchID:    matchID,
		HoleNumber: input.HoleNumber,
		PlayerID:   input.PlayerID,
		Gross:      input.Gross,
		Net:        scoring.NetScore(input.Gross, alloc[input.PlayerID], hole.StrokeIndex),
		TrashDots:  input.TrashDots,
		UpdatedAt:  time.Now().UTC(),
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	if err := s.scores.Upsert(ctx, tx, score); err != nil {
		return nil, domain.ErrInternal("upsert score", err)
	}
	if err := s.outbox.Insert(ctx, tx, domain.NewScoreUpsertedEvent(score)); err != nil {
		return nil, domain.ErrInternal("insert outbox", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, domain.ErrInternal("commit tx", err)
	}

	s.logger.Debug("score upserted",
		"match_id", matchID, "hole", input.HoleNumber,
		"player_id", input.PlayerID, "gross", input.Gross)
	return score, nil
}

// OpenPressInput holds a press request.
type OpenPressInput struct {
	StartHole     int         `json:"start_hole"`
	PressedByTeam domain.Team `json:"pressed_by_team"`
}

// OpenPress creates a press. Any team may press at any hole; presses
// are immutable once created.
func (s *ScoreService) OpenPress(ctx context.Context, matchID uuid.UUID, input OpenPressInput) (*domain.Press, error) {
	if err := domain.ValidateHoleNumber(input.StartHole); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}
	match, err := s.matches.FindByID(ctx, s.pool, matchID)
	if err != nil {
		return nil, domain.ErrInternal("find match", err)
	}
	if match == nil {
		return nil, domain.ErrNotFound("match", matchID.String())
	}
	if match.Status != domain.MatchInProgress {
		return nil, domain.ErrMatchLocked(match.Status)
	}
	if match.WagerType != domain.WagerNassau {
		return nil, domain.ErrValidation("presses require a nassau wager")
	}

	press := &domain.Press{
		ID:            uuid.New(),
		MatchID:       matchID,
		StartHole:     input.StartHole,
		PressedByTeam: input.PressedByTeam,
		Status:        domain.PressActive,
		CreatedAt:     time.Now().UTC(),
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	if err := s.presses.Insert(ctx, tx, press); err != nil {
		return nil, domain.ErrInternal("insert press", err)
	}
	if err := s.outbox.Insert(ctx, tx, domain.NewPressOpenedEvent(press)); err != nil {
		return nil, domain.ErrInternal("insert outbox", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, domain.ErrInternal("commit tx", err)
	}

	s.logger.Info("press opened",
		"match_id", matchID, "start_hole", input.StartHole, "team", input.PressedByTeam)
	return press, nil
}

// ListScores returns all score rows of a match.
func (s *ScoreService) ListScores(ctx context.Context, matchID uuid.UUID) ([]domain.HoleScore, error) {
	scores, err := s.scores.ListByMatch(ctx, s.pool, matchID)
	if err != nil {
		return nil, domain.ErrInternal("list scores", err)
	}
	return scores, nil
}

// ListScoresByMatches returns score rows across sibling matches.
func (s *ScoreService) ListScoresByMatches(ctx context.Context, matchIDs []uuid.UUID) ([]domain.HoleScore, error) {
	scores, err := s.scores.ListByMatches(ctx, s.pool, matchIDs)
	if err != nil {
		return nil, domain.ErrInternal("list scores", err)
	}
	return scores, nil
}

// ListPresses returns a match's presses ordered by start hole.
func (s *ScoreService) ListPresses(ctx context.Context, matchID uuid.UUID) ([]domain.Press, error) {
	presses, err := s.presses.ListByMatch(ctx, s.pool, matchID)
	if err != nil {
		return nil, domain.ErrInternal("list presses", err)
	}
	return presses, nil
}

// Card assembles the full scoring view of one match.
func (s *ScoreService) Card(ctx context.Context, matchID uuid.UUID) (*scoring.Card, error) {
	match, course, players, err := s.loadMatchContext(ctx, matchID)
	if err != nil {
		return nil, err
	}
	scores, err := s.scores.ListByMatch(ctx, s.pool, matchID)
	if err != nil {
		return nil, domain.ErrInternal("list scores", err)
	}
	presses, err := s.presses.ListByMatch(ctx, s.pool, matchID)
	if err != nil {
		return nil, domain.ErrInternal("list presses", err)
	}
	return scoring.NewCard(*match, *course, players, scores, presses), nil
}

// GroupCards assembles cards for every sibling match of a group.
func (s *ScoreService) GroupCards(ctx context.Context, groupID uuid.UUID) ([]*scoring.Card, error) {
	matches, err := s.matches.ListByGroup(ctx, s.pool, groupID)
	if err != nil {
		return nil, domain.ErrInternal("list group", err)
	}
	if len(matches) == 0 {
		return nil, domain.ErrNotFound("group", groupID.String())
	}
	cards := make([]*scoring.Card, 0, len(matches))
	for i := range matches {
		card, err := s.Card(ctx, matches[i].ID)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

func (s *ScoreService) loadMatchContext(ctx context.Context, matchID uuid.UUID) (*domain.Match, *domain.Course, []domain.PlayerInMatch, error) {
	match, err := s.matches.FindByID(ctx, s.pool, matchID)
	if err != nil {
		return nil, nil, nil, domain.ErrInternal("find match", err)
	}
	if match == nil {
		return nil, nil, nil, domain.ErrNotFound("match", matchID.String())
	}
	course, err := s.courses.FindByID(ctx, s.pool, match.CourseID)
	if err != nil {
		return nil, nil, nil, domain.ErrInternal("load course", err)
	}
	if course == nil {
		return nil, nil, nil, domain.ErrNotFound("course", match.CourseID.String())
	}
	players, err := s.players.ListByMatch(ctx, s.pool, matchID)
	if err != nil {
		return nil, nil, nil, domain.ErrInternal("list players", err)
	}
	return match, course, players, nil
}
