package handler

import (
	"net/http"

	"github.com/fitstake/fitstake-go/internal/challenge"
)

// ParticipationHandler serves the resolved user's participation state
type ParticipationHandler struct {
	service challenge.Service
}

func NewParticipationHandler(service challenge.Service) *ParticipationHandler {
	return &ParticipationHandler{service: service}
}

// HandleGetMyParticipations lists the resolved user's participations.
// Without a resolvable identity this returns a well-formed empty list,
// never an error.
func (h *ParticipationHandler) HandleGetMyParticipations(w http.ResponseWriter, r *http.Request) {
	email := GetOptionalQueryParam(r, "email", "")

	list, err := h.service.GetMyParticipations(r.Context(), email)
	if err != nil {
		respondServiceError(w, r, "Get my participations", err)
		return
	}

	respondJSON(w, http.StatusOK, list)
}

// HandleGetUserParticipation answers whether a user participates in one
// challenge. "Not participating" is a 200 with participating=false.
func (h *ParticipationHandler) HandleGetUserParticipation(w http.ResponseWriter, r *http.Request) {
	id, ok := GetPathParam(r, w, "id")
	if !ok {
		return
	}
	email := GetOptionalQueryParam(r, "email", "")

	participation, err := h.service.GetUserParticipation(r.Context(), id, email)
	if err != nil {
		respondServiceError(w, r, "Get user participation", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"participating": participation != nil,
		"participation": participation,
	})
}
