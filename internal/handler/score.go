package handler

import (
	"net/http"

	"github.com/dt604/bloodsheet-golf/internal/domain"
	"github.com/dt604/bloodsheet-golf/internal/guard"
	"github.com/dt604/bloodsheet-golf/internal/service"
)

// ScoreHandler handles score and press endpoints.
type ScoreHandler struct {
	scores  *service.ScoreService
	presses *guard.IdempotencyGuard
}

// NewScoreHandler creates a new ScoreHandler.
func NewScoreHandler(scores *service.ScoreService) *ScoreHandler {
	return &ScoreHandler{scores: scores, presses: guard.NewIdempotencyGuard()}
}

// UpsertScore handles PUT /matches/{id}/scores. The write is idempotent
// on the (match, hole, player) key.
func (h *ScoreHandler) UpsertScore(w http.ResponseWriter, r *http.Request) {
	matchID, err := pathID(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}

	var input service.UpsertScoreInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}

	score, err := h.scores.UpsertScore(r.Context(), matchID, input)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, score)
}

// ListScores handles GET /matches/{id}/scores.
func (h *ScoreHandler) ListScores(w http.ResponseWriter, r *http.Request) {
	matchID, err := pathID(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}
	scores, err := h.scores.ListScores(r.Context(), matchID)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, scores)
}

// OpenPress handles POST /matches/{id}/presses. Presses are append-only,
// so a client-supplied Idempotency-Key header guards against double-taps.
func (h *ScoreHandler) OpenPress(w http.ResponseWriter, r *http.Request) {
	matchID, err := pathID(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}

	var input service.OpenPressInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}

	key := r.Header.Get("Idempotency-Key")
	if res := h.presses.Check(key); !res.Allowed {
		RespondError(w, domain.ErrConflict(res.Reason))
		return
	}

	press, err := h.scores.OpenPress(r.Context(), matchID, input)
	if err != nil {
		h.presses.Remove(key)
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusCreated, press)
}

// ListPresses handles GET /matches/{id}/presses.
func (h *ScoreHandler) ListPresses(w http.ResponseWriter, r *http.Request) {
	matchID, err := pathID(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}
	presses, err := h.scores.ListPresses(r.Context(), matchID)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, presses)
}
