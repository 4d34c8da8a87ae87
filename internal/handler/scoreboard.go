package handler

import (
	"net/http"

	"github.com/dt604/bloodsheet-golf/internal/domain"
	"github.com/dt604/bloodsheet-golf/internal/scoring"
	"github.com/dt604/bloodsheet-golf/internal/service"
	"github.com/dt604/bloodsheet-golf/internal/settle"
	"github.com/google/uuid"
)

// ScoreboardHandler serves the derived views of a match: per-hole
// points, segment standings, press windows, skins, and the settlement
// ledger. Everything here is recomputed from the raw rows on each
// request; none of it is stored.
type ScoreboardHandler struct {
	scores *service.ScoreService
}

// NewScoreboardHandler creates a new ScoreboardHandler.
func NewScoreboardHandler(scores *service.ScoreService) *ScoreboardHandler {
	return &ScoreboardHandler{scores: scores}
}

// SegmentView is one Nassau segment's running state.
type SegmentView struct {
	Name        string `json:"name"`
	PointsA     int    `json:"points_a"`
	PointsB     int    `json:"points_b"`
	HolesUp     int    `json:"holes_up"`
	HolesPlayed int    `json:"holes_played"`
	Complete    bool   `json:"complete"`
	Label       string `json:"label"`
}

// PressView is one press window's running state.
type PressView struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	StartHole int       `json:"start_hole"`
	PressedBy string    `json:"pressed_by"`
	HolesUp   int       `json:"holes_up"`
	Complete  bool      `json:"complete"`
	Label     string    `json:"label"`
}

// HolePointsView is the point outcome of one complete hole.
type HolePointsView struct {
	Hole    int `json:"hole"`
	PointsA int `json:"points_a"`
	PointsB int `json:"points_b"`
}

// Scoreboard is the assembled live view of one match.
type Scoreboard struct {
	Match       *domain.Match       `json:"match"`
	CurrentHole int                 `json:"current_hole"`
	Points      []HolePointsView    `json:"points,omitempty"`
	Segments    []SegmentView       `json:"segments,omitempty"`
	Presses     []PressView         `json:"presses,omitempty"`
	Skins       *scoring.SkinsResult `json:"skins,omitempty"`
}

// GetScoreboard handles GET /matches/{id}/scoreboard.
func (h *ScoreboardHandler) GetScoreboard(w http.ResponseWriter, r *http.Request) {
	matchID, err := pathID(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}
	card, err := h.scores.Card(r.Context(), matchID)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, buildScoreboard(card))
}

func buildScoreboard(card *scoring.Card) Scoreboard {
	board := Scoreboard{
		Match:       &card.Match,
		CurrentHole: card.CurrentHole(),
	}

	if card.Match.Format == domain.FormatSkins {
		skins := card.Skins()
		board.Skins = &skins
		return board
	}

	points := card.PointsByHole()
	for hole := 1; hole <= 18; hole++ {
		if p, ok := points[hole]; ok {
			board.Points = append(board.Points, HolePointsView{Hole: hole, PointsA: p.A, PointsB: p.B})
		}
	}
	for _, seg := range []scoring.Segment{scoring.Front, scoring.Back, scoring.Overall} {
		st := card.SegmentStatus(seg)
		board.Segments = append(board.Segments, SegmentView{
			Name:        seg.Name,
			PointsA:     st.PointsA,
			PointsB:     st.PointsB,
			HolesUp:     st.HolesUp(),
			HolesPlayed: st.HolesPlayed,
			Complete:    st.Complete,
			Label:       st.Label(),
		})
	}
	for _, win := range card.PressWindows() {
		board.Presses = append(board.Presses, PressView{
			ID:        win.Press.ID,
			Name:      win.Name(),
			StartHole: win.Press.StartHole,
			PressedBy: string(win.Press.PressedByTeam),
			HolesUp:   win.Status.HolesUp(),
			Complete:  win.Status.Complete,
			Label:     win.Label(),
		})
	}
	return board
}

// GetGroupScoreboard handles GET /groups/{id}/scoreboard: every sibling
// match's live view in one response, so a group sees everyone's round
// regardless of which match they are scoring.
func (h *ScoreboardHandler) GetGroupScoreboard(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathID(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}
	cards, err := h.scores.GroupCards(r.Context(), groupID)
	if err != nil {
		RespondError(w, err)
		return
	}
	boards := make([]Scoreboard, 0, len(cards))
	for _, card := range cards {
		boards = append(boards, buildScoreboard(card))
	}
	RespondJSON(w, http.StatusOK, boards)
}

// GetSettlement handles GET /matches/{id}/settlement. The ledger is
// computed from the caller's perspective.
func (h *ScoreboardHandler) GetSettlement(w http.ResponseWriter, r *http.Request) {
	viewer, err := callerID(r)
	if err != nil {
		RespondError(w, err)
		return
	}
	matchID, err := pathID(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}
	card, err := h.scores.Card(r.Context(), matchID)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, settle.Compute(card, viewer))
}

// GetGroupSettlement handles GET /groups/{id}/settlement. Sibling
// matches settle independently and the caller's participating totals
// net into one figure.
func (h *ScoreboardHandler) GetGroupSettlement(w http.ResponseWriter, r *http.Request) {
	viewer, err := callerID(r)
	if err != nil {
		RespondError(w, err)
		return
	}
	groupID, err := pathID(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}
	cards, err := h.scores.GroupCards(r.Context(), groupID)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, settle.ComputeGroup(cards, viewer))
}
