package service

import (
	"context"
	"crypto/rand"
	"log/slog"
	"time"

	"github.com/dt604/bloodsheet-golf/internal/domain"
	"github.com/dt604/bloodsheet-golf/internal/guard"
	"github.com/dt604/bloodsheet-golf/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MatchService handles match lifecycle: creation, joining, submission,
// attestation, and abandonment.
type MatchService struct {
	pool         *pgxpool.Pool
	matches      repository.MatchRepository
	players      repository.PlayerRepository
	courses      repository.CourseRepository
	attestations repository.AttestationRepository
	outbox       repository.OutboxRepository
	logger       *slog.Logger
}

// NewMatchService creates a MatchService.
func NewMatchService(
	pool *pgxpool.Pool,
	matches repository.MatchRepository,
	players repository.PlayerRepository,
	courses repository.CourseRepository,
	attestations repository.AttestationRepository,
	outbox repository.OutboxRepository,
	logger *slog.Logger,
) *MatchService {
	return &MatchService{
		pool:         pool,
		matches:      matches,
		players:      players,
		courses:      courses,
		attestations: attestations,
		outbox:       outbox,
		logger:       logger,
	}
}

// CreatePlayerInput describes one participant at match creation.
type CreatePlayerInput struct {
	UserID      uuid.UUID    `json:"user_id"`
	Team        domain.Team  `json:"team"`
	Handicap    float64      `json:"handicap"`
	DisplayName string       `json:"display_name"`
	AvatarURL   string       `json:"avatar_url,omitempty"`
	Guest       bool         `json:"guest,omitempty"`
}

// CreateMatchInput holds the match creation request. The creator is the
// scorekeeper.
type CreateMatchInput struct {
	CourseID    uuid.UUID            `json:"course_id"`
	GroupID     *uuid.UUID           `json:"group_id,omitempty"`
	Format      domain.MatchFormat   `json:"format"`
	WagerAmount int64                `json:"wager_amount"`
	WagerType   domain.WagerType     `json:"wager_type"`
	SideBets    domain.SideBetConfig `json:"side_bets"`
	Players     []CreatePlayerInput  `json:"players"`
}

// CreateMatch creates a match with its initial roster and announces it
// on the change feed.
func (s *MatchService) CreateMatch(ctx context.Context, creatorID uuid.UUID, input CreateMatchInput) (*domain.Match, error) {
	if err := domain.ValidateMatchFormat(input.Format); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}
	if err := domain.ValidateWagerAmount(input.WagerAmount); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}
	for _, p := range input.Players {
		if err := domain.ValidateHandicap(p.Handicap); err != nil {
			return nil, domain.ErrValidation(err.Error())
		}
	}
	course, err := s.courses.FindByID(ctx, s.pool, input.CourseID)
	if err != nil {
		return nil, domain.ErrInternal("load course", err)
	}
	if course == nil {
		return nil, domain.ErrNotFound("course", input.CourseID.String())
	}

	now := time.Now().UTC()
	match := &domain.Match{
		ID:          uuid.New(),
		JoinCode:    newJoinCode(),
		CourseID:    input.CourseID,
		GroupID:     input.GroupID,
		Format:      input.Format,
		WagerAmount: input.WagerAmount,
		WagerType:   input.WagerType,
		Status:      domain.MatchInProgress,
		SideBets:    input.SideBets,
		CreatedBy:   creatorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	if err := s.matches.Create(ctx, tx, match); err != nil {
		return nil, domain.ErrInternal("create match", err)
	}
	for _, in := range input.Players {
		player := domain.PlayerInMatch{
			UserID:          in.UserID,
			MatchID:         match.ID,
			Team:            in.Team,
			InitialHandicap: in.Handicap,
			DisplayName:     in.DisplayName,
			AvatarURL:       in.AvatarURL,
			IsGuest:         in.Guest,
			CreatedAt:       now,
		}
		if in.Guest {
			player = domain.NewGuestPlayer(match.ID, in.Team, in.DisplayName, in.Handicap)
		}
		if err := s.players.Insert(ctx, tx, &player); err != nil {
			return nil, domain.ErrInternal("insert player", err)
		}
	}
	if err := s.outbox.Insert(ctx, tx, domain.NewMatchStatusEvent(match.ID, match.Status)); err != nil {
		return nil, domain.ErrInternal("insert outbox", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, domain.ErrInternal("commit tx", err)
	}

	s.logger.Info("match created",
		"match_id", match.ID, "format", match.Format,
		"join_code", match.JoinCode, "created_by", creatorID)
	return match, nil
}

// JoinInput holds a join-by-code request.
type JoinInput struct {
	Team        domain.Team `json:"team"`
	Handicap    float64     `json:"handicap"`
	DisplayName string      `json:"display_name"`
	AvatarURL   string      `json:"avatar_url,omitempty"`
}

// JoinByCode adds the authenticated user to the match with the given
// join code.
func (s *MatchService) JoinByCode(ctx context.Context, userID uuid.UUID, code string, input JoinInput) (*domain.Match, error) {
	if err := domain.ValidateHandicap(input.Handicap); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}
	if err := guard.CheckJoinLocked(ctx, s.pool, userID.String()); err != nil {
		return nil, err
	}
	match, err := s.matches.FindByJoinCode(ctx, s.pool, code)
	if err != nil {
		return nil, domain.ErrInternal("find match", err)
	}
	if match == nil {
		guard.RecordJoinAttempt(ctx, s.pool, userID.String(), code, false)
		return nil, domain.ErrNotFound("match", code)
	}
	guard.RecordJoinAttempt(ctx, s.pool, userID.String(), code, true)
	if match.Status != domain.MatchSetup && match.Status != domain.MatchInProgress {
		return nil, domain.ErrMatchLocked(match.Status)
	}

	player := domain.PlayerInMatch{
		UserID:          userID,
		MatchID:         match.ID,
		Team:            input.Team,
		InitialHandicap: input.Handicap,
		DisplayName:     input.DisplayName,
		AvatarURL:       input.AvatarURL,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.players.Insert(ctx, s.pool, &player); err != nil {
		return nil, domain.ErrInternal("insert player", err)
	}

	s.logger.Info("player joined", "match_id", match.ID, "user_id", userID, "team", input.Team)
	return match, nil
}

// AddGuest adds a guest player with a synthesized stable id. Guests are
// never resolved against the identity provider.
func (s *MatchService) AddGuest(ctx context.Context, matchID, requesterID uuid.UUID, input JoinInput) (*domain.PlayerInMatch, error) {
	if err := domain.ValidateHandicap(input.Handicap); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}
	match, err := s.requireScorekeeper(ctx, matchID, requesterID)
	if err != nil {
		return nil, err
	}
	if match.Status != domain.MatchSetup && match.Status != domain.MatchInProgress {
		return nil, domain.ErrMatchLocked(match.Status)
	}

	guest := domain.NewGuestPlayer(matchID, input.Team, input.DisplayName, input.Handicap)
	if err := s.players.Insert(ctx, s.pool, &guest); err != nil {
		return nil, domain.ErrInternal("insert guest", err)
	}
	return &guest, nil
}

// GetMatch returns a match by id.
func (s *MatchService) GetMatch(ctx context.Context, id uuid.UUID) (*domain.Match, error) {
	match, err := s.matches.FindByID(ctx, s.pool, id)
	if err != nil {
		return nil, domain.ErrInternal("find match", err)
	}
	if match == nil {
		return nil, domain.ErrNotFound("match", id.String())
	}
	return match, nil
}

// ListGroup returns the sibling matches of a group.
func (s *MatchService) ListGroup(ctx context.Context, groupID uuid.UUID) ([]domain.Match, error) {
	matches, err := s.matches.ListByGroup(ctx, s.pool, groupID)
	if err != nil {
		return nil, domain.ErrInternal("list group", err)
	}
	return matches, nil
}

// ListPlayers returns a match's roster.
func (s *MatchService) ListPlayers(ctx context.Context, matchID uuid.UUID) ([]domain.PlayerInMatch, error) {
	players, err := s.players.ListByMatch(ctx, s.pool, matchID)
	if err != nil {
		return nil, domain.ErrInternal("list players", err)
	}
	return players, nil
}

// ListAttestations returns a match's attestation rows.
func (s *MatchService) ListAttestations(ctx context.Context, matchID uuid.UUID) ([]domain.Attestation, error) {
	atts, err := s.attestations.ListByMatch(ctx, s.pool, matchID)
	if err != nil {
		return nil, domain.ErrInternal("list attestations", err)
	}
	return atts, nil
}

// Submit transitions the match to pending_attestation. Scorekeeper only.
func (s *MatchService) Submit(ctx context.Context, matchID, requesterID uuid.UUID) error {
	match, err := s.requireScorekeeper(ctx, matchID, requesterID)
	if err != nil {
		return err
	}
	if match.Status != domain.MatchInProgress {
		return domain.ErrMatchLocked(match.Status)
	}
	return s.transition(ctx, matchID, domain.MatchPendingAttestation)
}

// Attest records the caller's attestation. Once every non-scorekeeper
// participant has attested, the match completes.
func (s *MatchService) Attest(ctx context.Context, matchID, userID uuid.UUID) error {
	match, err := s.GetMatch(ctx, matchID)
	if err != nil {
		return err
	}
	if match.Status != domain.MatchPendingAttestation {
		return domain.ErrMatchLocked(match.Status)
	}
	if userID == match.CreatedBy {
		return domain.ErrValidation("scorekeeper does not attest their own card")
	}
	players, err := s.players.ListByMatch(ctx, s.pool, matchID)
	if err != nil {
		return domain.ErrInternal("list players", err)
	}
	if !rosterContains(players, userID) {
		return domain.ErrForbidden("not a participant")
	}

	att := &domain.Attestation{MatchID: matchID, UserID: userID, AttestedAt: time.Now().UTC()}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	if err := s.attestations.Insert(ctx, tx, att); err != nil {
		return domain.ErrInternal("insert attestation", err)
	}
	if err := s.outbox.Insert(ctx, tx, domain.NewAttestationEvent(att)); err != nil {
		return domain.ErrInternal("insert outbox", err)
	}

	atts, err := s.attestations.ListByMatch(ctx, tx, matchID)
	if err != nil {
		return domain.ErrInternal("list attestations", err)
	}
	if allAttested(players, atts, match.CreatedBy) {
		if err := s.matches.UpdateStatus(ctx, tx, matchID, domain.MatchCompleted); err != nil {
			return domain.ErrInternal("complete match", err)
		}
		if err := s.outbox.Insert(ctx, tx, domain.NewMatchStatusEvent(matchID, domain.MatchCompleted)); err != nil {
			return domain.ErrInternal("insert outbox", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.ErrInternal("commit tx", err)
	}
	s.logger.Info("attestation posted", "match_id", matchID, "user_id", userID)
	return nil
}

// Abandon deletes a match and all its child rows. Scorekeeper only;
// completed matches cannot be abandoned.
func (s *MatchService) Abandon(ctx context.Context, matchID, requesterID uuid.UUID) error {
	match, err := s.requireScorekeeper(ctx, matchID, requesterID)
	if err != nil {
		return err
	}
	if match.Status == domain.MatchCompleted {
		return domain.ErrMatchLocked(match.Status)
	}
	if err := s.matches.Delete(ctx, s.pool, matchID); err != nil {
		return domain.ErrInternal("delete match", err)
	}
	s.logger.Info("match abandoned", "match_id", matchID)
	return nil
}

// CorrectHandicap applies a mid-round handicap correction. It affects
// all recomputation from the next read; nothing historical is rewritten.
func (s *MatchService) CorrectHandicap(ctx context.Context, matchID, requesterID, playerID uuid.UUID, handicap float64) error {
	if err := domain.ValidateHandicap(handicap); err != nil {
		return domain.ErrValidation(err.Error())
	}
	if _, err := s.requireScorekeeper(ctx, matchID, requesterID); err != nil {
		return err
	}
	if err := s.players.UpdateHandicap(ctx, s.pool, matchID, playerID, handicap); err != nil {
		return domain.ErrInternal("update handicap", err)
	}
	s.logger.Info("handicap corrected", "match_id", matchID, "player_id", playerID, "handicap", handicap)
	return nil
}

// GetCourse returns a course with its holes.
func (s *MatchService) GetCourse(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	course, err := s.courses.FindByID(ctx, s.pool, id)
	if err != nil {
		return nil, domain.ErrInternal("load course", err)
	}
	if course == nil {
		return nil, domain.ErrNotFound("course", id.String())
	}
	return course, nil
}

// CorrectStrokeIndex persists a scorekeeper's stroke index edit on the
// course directory mirror.
func (s *MatchService) CorrectStrokeIndex(ctx context.Context, courseID uuid.UUID, holeNumber, newIndex int) error {
	if err := domain.ValidateHoleNumber(holeNumber); err != nil {
		return domain.ErrValidation(err.Error())
	}
	if err := domain.ValidateStrokeIndex(newIndex); err != nil {
		return domain.ErrValidation(err.Error())
	}
	if err := s.courses.UpdateStrokeIndex(ctx, s.pool, courseID, holeNumber, newIndex); err != nil {
		return domain.ErrInternal("update stroke index", err)
	}
	return nil
}

func (s *MatchService) transition(ctx context.Context, matchID uuid.UUID, status domain.MatchStatus) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	if err := s.matches.UpdateStatus(ctx, tx, matchID, status); err != nil {
		return domain.ErrInternal("update status", err)
	}
	if err := s.outbox.Insert(ctx, tx, domain.NewMatchStatusEvent(matchID, status)); err != nil {
		return domain.ErrInternal("insert outbox", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.ErrInternal("commit tx", err)
	}
	s.logger.Info("match status changed", "match_id", matchID, "status", status)
	return nil
}

func (s *MatchService) requireScorekeeper(ctx context.Context, matchID, requesterID uuid.UUID) (*domain.Match, error) {
	match, err := s.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if match.CreatedBy != requesterID {
		return nil, domain.ErrForbidden("scorekeeper only")
	}
	return match, nil
}

func rosterContains(players []domain.PlayerInMatch, userID uuid.UUID) bool {
	for _, p := range players {
		if p.UserID == userID {
			return true
		}
	}
	return false
}

func allAttested(players []domain.PlayerInMatch, atts []domain.Attestation, scorekeeper uuid.UUID) bool {
	attested := make(map[uuid.UUID]bool, len(atts))
	for _, a := range atts {
		attested[a.UserID] = true
	}
	for _, p := range players {
		if p.UserID == scorekeeper || p.IsGuest {
			continue
		}
		if !attested[p.UserID] {
			return false
		}
	}
	return true
}

const joinCodeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// newJoinCode generates a 6-character code from an alphabet with the
// ambiguous characters removed.
func newJoinCode() string {
	buf := make([]byte, 6)
	rand.Read(buf)
	for i := range buf {
		buf[i] = joinCodeAlphabet[int(buf[i])%len(joinCodeAlphabet)]
	}
	return string(buf)
}
