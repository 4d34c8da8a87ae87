package sync

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/dt604/bloodsheet-golf/internal/domain"
	"github.com/dt604/bloodsheet-golf/internal/scoring"
	"github.com/dt604/bloodsheet-golf/internal/settle"
	"github.com/google/uuid"
)

// matchState is the raw-fact snapshot for one match.
type matchState struct {
	match        domain.Match
	course       domain.Course
	players      []domain.PlayerInMatch
	scores       map[domain.ScoreKey]domain.HoleScore
	presses      map[uuid.UUID]domain.Press
	attestations []domain.Attestation
}

// Session owns the canonical local snapshot for a set of sibling matches.
// All methods are safe for concurrent use. Local score edits update the
// snapshot synchronously and are flushed on a debounce; incoming change
// events and periodic refreshes merge by upsert key.
type Session struct {
	store  Store
	feed   Feed
	userID uuid.UUID
	log    *slog.Logger
	opts   Options

	mu      sync.Mutex
	matches map[uuid.UUID]*matchState
	order   []uuid.UUID
	pending map[domain.ScoreKey]domain.HoleScore
	timer   *time.Timer
	closed  bool

	events      chan RemoteChange
	unsubscribe Unsubscribe
	stopPoll    context.CancelFunc
	pollDone    chan struct{}
	writes      sync.WaitGroup
}

// Open loads the snapshot for the given matches, subscribes to the change
// feed, and starts the polling fallback. The caller must Close the session
// when the round screen is left.
func Open(ctx context.Context, store Store, feed Feed, userID uuid.UUID, matchIDs []uuid.UUID, log *slog.Logger, opts Options) (*Session, error) {
	if len(matchIDs) == 0 {
		return nil, fmt.Errorf("open session: no matches")
	}
	opts = opts.withDefaults()

	s := &Session{
		store:    store,
		feed:     feed,
		userID:   userID,
		log:      log,
		opts:     opts,
		matches:  make(map[uuid.UUID]*matchState, len(matchIDs)),
		order:    append([]uuid.UUID(nil), matchIDs...),
		pending:  make(map[domain.ScoreKey]domain.HoleScore),
		events:   make(chan RemoteChange, opts.EventBuffer),
		pollDone: make(chan struct{}),
	}
	for _, id := range matchIDs {
		st, err := s.loadMatch(ctx, id)
		if err != nil {
			return nil, err
		}
		s.matches[id] = st
	}
	if err := s.loadScores(ctx); err != nil {
		return nil, err
	}

	unsub, err := feed.Subscribe(ctx, matchIDs, s.ApplyRemote)
	if err != nil {
		return nil, fmt.Errorf("subscribe: %w", err)
	}
	s.unsubscribe = unsub

	pollCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.stopPoll = cancel
	go s.pollLoop(pollCtx)

	return s, nil
}

func (s *Session) loadMatch(ctx context.Context, id uuid.UUID) (*matchState, error) {
	m, err := s.store.GetMatch(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load match %s: %w", id, err)
	}
	if m == nil {
		return nil, domain.ErrNotFound("match", id.String())
	}
	course, err := s.store.GetCourse(ctx, m.CourseID)
	if err != nil {
		return nil, fmt.Errorf("load course %s: %w", m.CourseID, err)
	}
	players, err := s.store.ListPlayers(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load players for %s: %w", id, err)
	}
	presses, err := s.store.ListPresses(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load presses for %s: %w", id, err)
	}
	atts, err := s.store.ListAttestations(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load attestations for %s: %w", id, err)
	}

	st := &matchState{
		match:        *m,
		course:       *course,
		players:      players,
		scores:       make(map[domain.ScoreKey]domain.HoleScore),
		presses:      make(map[uuid.UUID]domain.Press, len(presses)),
		attestations: atts,
	}
	for _, p := range presses {
		st.presses[p.ID] = p
	}
	return st, nil
}

func (s *Session) loadScores(ctx context.Context) error {
	scores, err := s.store.ListScores(ctx, s.order)
	if err != nil {
		return fmt.Errorf("load scores: %w", err)
	}
	for _, sc := range scores {
		if st := s.matches[sc.MatchID]; st != nil {
			st.scores[sc.Key()] = sc
		}
	}
	return nil
}

// Events delivers remote-change notifications. If the consumer falls
// behind, events are dropped rather than blocking the merge path.
func (s *Session) Events() <-chan RemoteChange {
	return s.events
}

// Card builds the scoring view for one match from the current snapshot.
func (s *Session) Card(matchID uuid.UUID) (*scoring.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.matches[matchID]
	if !ok {
		return nil, domain.ErrNotFound("match", matchID.String())
	}
	return st.card(), nil
}

// Cards builds the scoring view for every open match, in open order.
func (s *Session) Cards() []*scoring.Card {
	s.mu.Lock()
	defer s.mu.Unlock()
	cards := make([]*scoring.Card, 0, len(s.order))
	for _, id := range s.order {
		cards = append(cards, s.matches[id].card())
	}
	return cards
}

// Settlement computes the net ledger across all open matches from the
// viewer's perspective.
func (s *Session) Settlement(viewer uuid.UUID) settle.GroupLedger {
	return settle.ComputeGroup(s.Cards(), viewer)
}

func (st *matchState) card() *scoring.Card {
	scores := make([]domain.HoleScore, 0, len(st.scores))
	for _, sc := range st.scores {
		scores = append(scores, sc)
	}
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].HoleNumber != scores[j].HoleNumber {
			return scores[i].HoleNumber < scores[j].HoleNumber
		}
		return scores[i].PlayerID.String() < scores[j].PlayerID.String()
	})
	presses := make([]domain.Press, 0, len(st.presses))
	for _, p := range st.presses {
		presses = append(presses, p)
	}
	return scoring.NewCard(st.match, st.course, st.players, scores, presses)
}

// RecordScore validates and applies a local score edit. The snapshot is
// updated before the write is confirmed; the write itself happens on the
// debounce. Net is allocated here from the player's differential so the
// persisted row is self-contained.
func (s *Session) RecordScore(matchID uuid.UUID, holeNumber int, playerID uuid.UUID, gross int, dots []domain.TrashTag) error {
	if err := domain.ValidateGross(gross); err != nil {
		return err
	}
	if err := domain.ValidateHoleNumber(holeNumber); err != nil {
		return err
	}
	if err := domain.ValidateTrashDots(dots); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return fmt.Errorf("session closed")
	}
	st, ok := s.matches[matchID]
	if !ok {
		return domain.ErrNotFound("match", matchID.String())
	}
	hole := st.course.HoleByNumber(holeNumber)
	if hole == nil {
		return domain.ErrValidation("hole not on course")
	}
	if st.match.Status != domain.MatchInProgress {
		return domain.ErrMatchLocked(st.match.Status)
	}
	if st.playerInMatch(playerID) == nil {
		return domain.ErrValidation("player not in match")
	}

	alloc := st.card().Allocations()
	score := domain.HoleScore{
		MatchID:    matchID,
		HoleNumber: holeNumber,
		PlayerID:   playerID,
		Gross:      gross,
		Net:        scoring.NetScore(gross, alloc[playerID], hole.StrokeIndex),
		TrashDots:  append([]domain.TrashTag(nil), dots...),
		UpdatedAt:  time.Now().UTC(),
	}
	st.scores[score.Key()] = score
	s.pending[score.Key()] = score
	s.scheduleFlush()
	return nil
}

func (st *matchState) playerInMatch(id uuid.UUID) *domain.PlayerInMatch {
	for i := range st.players {
		if st.players[i].UserID == id {
			return &st.players[i]
		}
	}
	return nil
}

// scheduleFlush arms (or re-arms) the debounce timer. Caller holds mu.
func (s *Session) scheduleFlush() {
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.opts.DebounceInterval, s.flush)
}

// flush writes every pending score. Failures are logged, never rolled
// back; the next refresh reconciles if the write truly did not land.
func (s *Session) flush() {
	s.mu.Lock()
	batch := s.pending
	s.pending = make(map[domain.ScoreKey]domain.HoleScore)
	s.timer = nil
	s.mu.Unlock()
	if len(batch) == 0 {
		return
	}

	s.writes.Add(1)
	go func() {
		defer s.writes.Done()
		ctx := context.Background()
		for _, sc := range batch {
			if err := s.store.UpsertScore(ctx, sc); err != nil {
				s.log.Warn("score write failed, keeping optimistic value",
					"match_id", sc.MatchID, "hole", sc.HoleNumber,
					"player_id", sc.PlayerID, "error", err)
			}
		}
	}()
}

// OpenPress starts a press for the given team from startHole. Unlike
// scores, presses are written through immediately; they are immutable
// once created so there is nothing to debounce.
func (s *Session) OpenPress(ctx context.Context, matchID uuid.UUID, startHole int, team domain.Team) (*domain.Press, error) {
	if err := domain.ValidateHoleNumber(startHole); err != nil {
		return nil, err
	}
	s.mu.Lock()
	st, ok := s.matches[matchID]
	if !ok {
		s.mu.Unlock()
		return nil, domain.ErrNotFound("match", matchID.String())
	}
	if st.match.Status != domain.MatchInProgress {
		status := st.match.Status
		s.mu.Unlock()
		return nil, domain.ErrMatchLocked(status)
	}
	press := domain.Press{
		ID:            uuid.New(),
		MatchID:       matchID,
		StartHole:     startHole,
		PressedByTeam: team,
		Status:        domain.PressActive,
		CreatedAt:     time.Now().UTC(),
	}
	st.presses[press.ID] = press
	s.mu.Unlock()

	if err := s.store.InsertPress(ctx, press); err != nil {
		s.log.Warn("press write failed, keeping optimistic value",
			"match_id", matchID, "start_hole", startHole, "error", err)
	}
	return &press, nil
}

// ApplyRemote merges one change-feed event into the snapshot. It is the
// Feed callback and may also be called directly by tests.
func (s *Session) ApplyRemote(ev domain.ChangeEvent) {
	s.mu.Lock()
	st, ok := s.matches[ev.MatchID]
	if !ok || s.closed {
		s.mu.Unlock()
		return
	}

	var notify *RemoteChange
	switch ev.Type {
	case domain.EventScoreUpserted:
		if ev.Score != nil {
			notify = s.mergeScore(st, *ev.Score)
		}
	case domain.EventPressOpened:
		if ev.Press != nil {
			if _, seen := st.presses[ev.Press.ID]; !seen {
				st.presses[ev.Press.ID] = *ev.Press
			}
		}
	case domain.EventMatchStatusChanged:
		if ev.Status != "" {
			st.match.Status = ev.Status
		}
	case domain.EventAttestationPosted:
		if ev.Attestation != nil {
			st.addAttestation(*ev.Attestation)
		}
	}
	s.mu.Unlock()

	if notify != nil {
		s.emit(*notify)
	}
}

// mergeScore applies the upsert-by-key rule and decides whether the row
// is a notifiable remote change. Keys with an unflushed local edit are
// left alone so the optimistic value does not flicker. Caller holds mu.
func (s *Session) mergeScore(st *matchState, incoming domain.HoleScore) *RemoteChange {
	key := incoming.Key()
	if _, dirty := s.pending[key]; dirty {
		return nil
	}
	prev, had := st.scores[key]
	if had && prev.Equal(&incoming) {
		return nil
	}
	st.scores[key] = incoming
	if incoming.PlayerID == s.userID {
		return nil
	}
	rc := RemoteChange{MatchID: st.match.ID, Score: incoming}
	if had {
		p := prev
		rc.Previous = &p
	}
	return &rc
}

func (st *matchState) addAttestation(a domain.Attestation) {
	for _, have := range st.attestations {
		if have.UserID == a.UserID {
			return
		}
	}
	st.attestations = append(st.attestations, a)
}

func (s *Session) emit(rc RemoteChange) {
	select {
	case s.events <- rc:
	default:
		s.log.Debug("remote change dropped, consumer behind",
			"match_id", rc.MatchID, "hole", rc.Score.HoleNumber)
	}
}

// Refresh re-fetches the full snapshot for every open match and
// reconciles it by the same upsert rule the change feed uses. Push
// delivery is best effort; this is what makes correctness independent
// of it.
func (s *Session) Refresh(ctx context.Context) error {
	scores, err := s.store.ListScores(ctx, s.order)
	if err != nil {
		return fmt.Errorf("refresh scores: %w", err)
	}
	fresh := make(map[uuid.UUID]*matchState, len(s.order))
	for _, id := range s.order {
		st, err := s.loadMatch(ctx, id)
		if err != nil {
			return err
		}
		fresh[id] = st
	}
	for _, sc := range scores {
		if st := fresh[sc.MatchID]; st != nil {
			st.scores[sc.Key()] = sc
		}
	}

	var notices []RemoteChange
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	for _, id := range s.order {
		old := s.matches[id]
		next := fresh[id]
		for key, local := range s.pending {
			if key.MatchID == id {
				next.scores[key] = local
			}
		}
		for key, sc := range next.scores {
			prev, had := old.scores[key]
			if _, dirty := s.pending[key]; dirty {
				continue
			}
			if sc.PlayerID == s.userID || (had && prev.Equal(&sc)) {
				continue
			}
			rc := RemoteChange{MatchID: id, Score: sc}
			if had {
				p := prev
				rc.Previous = &p
			}
			notices = append(notices, rc)
		}
		s.matches[id] = next
	}
	s.mu.Unlock()

	for _, rc := range notices {
		s.emit(rc)
	}
	return nil
}

func (s *Session) pollLoop(ctx context.Context) {
	defer close(s.pollDone)
	ticker := time.NewTicker(s.opts.PollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Refresh(ctx); err != nil {
				s.log.Warn("poll refresh failed", "error", err)
			}
		}
	}
}

// Close tears down the subscription and the polling loop and flushes any
// pending edits. In-flight writes are not cancelled; they complete or
// fail on their own.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()

	s.stopPoll()
	<-s.pollDone
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
	s.flush()
	s.writes.Wait()
	close(s.events)
}
