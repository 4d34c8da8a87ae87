package handler

import (
	"net/http"

	"github.com/dt604/bloodsheet-golf/internal/domain"
	"github.com/dt604/bloodsheet-golf/internal/service"
)

// CourseHandler serves the course directory mirror.
type CourseHandler struct {
	matches *service.MatchService
}

// NewCourseHandler creates a new CourseHandler.
func NewCourseHandler(matches *service.MatchService) *CourseHandler {
	return &CourseHandler{matches: matches}
}

// GetCourse handles GET /courses/{id}.
func (h *CourseHandler) GetCourse(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}
	course, err := h.matches.GetCourse(r.Context(), id)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, course)
}

// CorrectStrokeIndex handles PATCH /courses/{id}/holes/{hole}/stroke-index.
// Scorekeepers may fix a bad stroke index; devices pick it up on their
// next refresh.
func (h *CourseHandler) CorrectStrokeIndex(w http.ResponseWriter, r *http.Request) {
	if _, err := callerID(r); err != nil {
		RespondError(w, err)
		return
	}
	courseID, err := pathID(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}

	var input struct {
		HoleNumber  int `json:"hole_number"`
		StrokeIndex int `json:"stroke_index"`
	}
	if err := DecodeJSON(r, &input); err != nil {
		RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}

	if err := h.matches.CorrectStrokeIndex(r.Context(), courseID, input.HoleNumber, input.StrokeIndex); err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusNoContent, nil)
}
