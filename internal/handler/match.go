package handler

import (
	"net/http"

	"github.com/dt604/bloodsheet-golf/internal/auth"
	"github.com/dt604/bloodsheet-golf/internal/domain"
	"github.com/dt604/bloodsheet-golf/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// MatchHandler handles match lifecycle endpoints.
type MatchHandler struct {
	matches *service.MatchService
}

// NewMatchHandler creates a new MatchHandler.
func NewMatchHandler(matches *service.MatchService) *MatchHandler {
	return &MatchHandler{matches: matches}
}

// CreateMatch handles POST /matches.
func (h *MatchHandler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	var input service.CreateMatchInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}

	match, err := h.matches.CreateMatch(r.Context(), userID, input)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusCreated, match)
}

// GetMatch handles GET /matches/{id}.
func (h *MatchHandler) GetMatch(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}
	match, err := h.matches.GetMatch(r.Context(), id)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, match)
}

// ListGroup handles GET /groups/{id}/matches.
func (h *MatchHandler) ListGroup(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathID(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}
	matches, err := h.matches.ListGroup(r.Context(), groupID)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, matches)
}

// ListPlayers handles GET /matches/{id}/players.
func (h *MatchHandler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}
	players, err := h.matches.ListPlayers(r.Context(), id)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, players)
}

// ListAttestations handles GET /matches/{id}/attestations.
func (h *MatchHandler) ListAttestations(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}
	atts, err := h.matches.ListAttestations(r.Context(), id)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, atts)
}

// Join handles POST /matches/join/{code}.
func (h *MatchHandler) Join(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	var input service.JoinInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}

	match, err := h.matches.JoinByCode(r.Context(), userID, chi.URLParam(r, "code"), input)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, match)
}

// AddGuest handles POST /matches/{id}/guests.
func (h *MatchHandler) AddGuest(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		RespondError(w, err)
		return
	}
	matchID, err := pathID(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}

	var input service.JoinInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}

	guest, err := h.matches.AddGuest(r.Context(), matchID, userID, input)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusCreated, guest)
}

// Submit handles POST /matches/{id}/submit.
func (h *MatchHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		RespondError(w, err)
		return
	}
	matchID, err := pathID(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}
	if err := h.matches.Submit(r.Context(), matchID, userID); err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]string{"status": string(domain.MatchPendingAttestation)})
}

// Attest handles POST /matches/{id}/attest.
func (h *MatchHandler) Attest(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		RespondError(w, err)
		return
	}
	matchID, err := pathID(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}
	if err := h.matches.Attest(r.Context(), matchID, userID); err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusNoContent, nil)
}

// Abandon handles DELETE /matches/{id}.
func (h *MatchHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		RespondError(w, err)
		return
	}
	matchID, err := pathID(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}
	if err := h.matches.Abandon(r.Context(), matchID, userID); err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusNoContent, nil)
}

// CorrectHandicap handles PATCH /matches/{id}/players/{playerId}/handicap.
func (h *MatchHandler) CorrectHandicap(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		RespondError(w, err)
		return
	}
	matchID, err := pathID(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}
	playerID, err := pathID(r, "playerId")
	if err != nil {
		RespondError(w, err)
		return
	}

	var input struct {
		Handicap float64 `json:"handicap"`
	}
	if err := DecodeJSON(r, &input); err != nil {
		RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}

	if err := h.matches.CorrectHandicap(r.Context(), matchID, userID, playerID, input.Handicap); err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusNoContent, nil)
}

// callerID resolves the authenticated user from the request context.
func callerID(r *http.Request) (uuid.UUID, error) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		return uuid.Nil, domain.ErrUnauthorized("no auth context")
	}
	id, err := claims.UserID()
	if err != nil {
		return uuid.Nil, domain.ErrUnauthorized("invalid subject")
	}
	return id, nil
}

// pathID parses a UUID path parameter.
func pathID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, domain.ErrValidation("invalid " + name)
	}
	return id, nil
}
