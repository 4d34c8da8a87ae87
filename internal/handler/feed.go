package handler

import (
	"net/http"
	"strings"

	"github.com/dt604/bloodsheet-golf/internal/auth"
	"github.com/dt604/bloodsheet-golf/internal/infra"
	"github.com/google/uuid"
)

// FeedHandler upgrades devices onto the push change feed.
type FeedHandler struct {
	hub *infra.WSHub
}

// NewFeedHandler creates a new FeedHandler.
func NewFeedHandler(hub *infra.WSHub) *FeedHandler {
	return &FeedHandler{hub: hub}
}

// Subscribe handles GET /feed?matches=id,id,... It upgrades the
// connection and joins one room per requested match. Delivery is best
// effort; devices poll as a fallback regardless.
func (h *FeedHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		http.Error(w, `{"code":"UNAUTHORIZED","message":"no auth context"}`, http.StatusUnauthorized)
		return
	}

	raw := r.URL.Query().Get("matches")
	if raw == "" {
		http.Error(w, `{"code":"VALIDATION_ERROR","message":"matches query param required"}`, http.StatusBadRequest)
		return
	}
	var matchIDs []uuid.UUID
	for _, part := range strings.Split(raw, ",") {
		id, err := uuid.Parse(strings.TrimSpace(part))
		if err != nil {
			http.Error(w, `{"code":"VALIDATION_ERROR","message":"invalid match id"}`, http.StatusBadRequest)
			return
		}
		matchIDs = append(matchIDs, id)
	}

	h.hub.ServeWS(w, r, claims.Subject, matchIDs)
}
