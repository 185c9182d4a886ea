package handler

import (
	"net/http"

	"github.com/fitstake/fitstake-go/internal/challenge"
	"github.com/fitstake/fitstake-go/internal/domain"
	"github.com/fitstake/fitstake-go/internal/logger"
	"github.com/fitstake/fitstake-go/internal/utils"
)

// withDisplayParticipants sets the display-formatted participant count on
// each enriched challenge before it is written out.
func withDisplayParticipants(challenges []domain.EnrichedChallenge) []domain.EnrichedChallenge {
	for i := range challenges {
		challenges[i].DisplayParticipants = utils.FormatCount(challenges[i].ParticipantCount)
	}
	return challenges
}

// ChallengeHandler serves the cached, enriched challenge collections
type ChallengeHandler struct {
	service challenge.Service
}

func NewChallengeHandler(service challenge.Service) *ChallengeHandler {
	return &ChallengeHandler{service: service}
}

// HandleListChallenges returns the enriched challenge collection
func (h *ChallengeHandler) HandleListChallenges(w http.ResponseWriter, r *http.Request) {
	challenges, err := h.service.GetChallenges(r.Context())
	if err != nil {
		respondServiceError(w, r, "List challenges", err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Data: withDisplayParticipants(challenges)})
}

// HandleGetChallenge returns one enriched challenge by id
func (h *ChallengeHandler) HandleGetChallenge(w http.ResponseWriter, r *http.Request) {
	id, ok := GetPathParam(r, w, "id")
	if !ok {
		return
	}

	result, err := h.service.GetChallenge(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, "Get challenge", err)
		return
	}

	result.DisplayParticipants = utils.FormatCount(result.ParticipantCount)
	respondJSON(w, http.StatusOK, result)
}

// HandleSearchChallenges runs a filtered, sorted challenge search
func (h *ChallengeHandler) HandleSearchChallenges(w http.ResponseWriter, r *http.Request) {
	query := domain.ChallengeSearchQuery{
		Text:     GetOptionalQueryParam(r, "q", ""),
		Category: GetOptionalQueryParam(r, "category", ""),
		Status:   GetOptionalQueryParam(r, "status", ""),
		Sort:     GetOptionalQueryParam(r, "sort", ""),
	}

	if query.Status != "" && !ValidChallengeStatuses[query.Status] {
		respondError(w, http.StatusBadRequest, "Invalid challenge status")
		return
	}

	results, err := h.service.SearchChallenges(r.Context(), query)
	if err != nil {
		respondServiceError(w, r, "Search challenges", err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Data: withDisplayParticipants(results)})
}

type JoinChallengeRequest struct {
	StakeAmount float64 `json:"stake_amount" validate:"required,gt=0"`
	UserEmail   string  `json:"user_email" validate:"omitempty,email"`
}

// HandleJoinChallenge stakes an amount on a challenge for the resolved user
func (h *ChallengeHandler) HandleJoinChallenge(w http.ResponseWriter, r *http.Request) {
	id, ok := GetPathParam(r, w, "id")
	if !ok {
		return
	}

	var req JoinChallengeRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Join challenge"); err != nil {
		return
	}

	result, err := h.service.JoinChallenge(r.Context(), id, req.StakeAmount, req.UserEmail)
	if err != nil {
		respondServiceError(w, r, "Join challenge", err)
		return
	}

	respondJSON(w, http.StatusCreated, result)
}

type CompleteChallengeRequest struct {
	MetricValue float64 `json:"metric_value" validate:"gte=0"`
	Source      string  `json:"source" validate:"omitempty,max=64"`
	RecordedAt  string  `json:"recorded_at" validate:"omitempty,max=64"`
	UserEmail   string  `json:"user_email" validate:"omitempty,email"`
}

func (r CompleteChallengeRequest) toResult() domain.ChallengeResult {
	return domain.ChallengeResult{
		MetricValue: r.MetricValue,
		Source:      r.Source,
		RecordedAt:  r.RecordedAt,
	}
}

// HandleCompleteChallenge reports a challenge as completed
func (h *ChallengeHandler) HandleCompleteChallenge(w http.ResponseWriter, r *http.Request) {
	id, ok := GetPathParam(r, w, "id")
	if !ok {
		return
	}

	var req CompleteChallengeRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Complete challenge"); err != nil {
		return
	}

	result, err := h.service.CompleteChallenge(r.Context(), id, req.toResult(), req.UserEmail)
	if err != nil {
		respondServiceError(w, r, "Complete challenge", err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// HandleSubmitResult submits an intermediate result for validation
func (h *ChallengeHandler) HandleSubmitResult(w http.ResponseWriter, r *http.Request) {
	id, ok := GetPathParam(r, w, "id")
	if !ok {
		return
	}

	var req CompleteChallengeRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Submit result"); err != nil {
		return
	}

	result, err := h.service.SubmitResult(r.Context(), id, req.toResult(), req.UserEmail)
	if err != nil {
		respondServiceError(w, r, "Submit result", err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// HandleRefreshSync forces a cache refresh of the challenge collections
func (h *ChallengeHandler) HandleRefreshSync(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Refresh(r.Context()); err != nil {
		respondServiceError(w, r, "Refresh sync", err)
		return
	}

	logger.FromContext(r.Context()).Info("Manual sync refresh completed")
	respondJSON(w, http.StatusOK, SuccessResponse{Message: "Sync refreshed"})
}
