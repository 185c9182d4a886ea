package handler

import (
	"net/http"

	"github.com/fitstake/fitstake-go/internal/challenge"
	"github.com/fitstake/fitstake-go/internal/utils"
)

// ActivityHandler serves the global activity feed
type ActivityHandler struct {
	service challenge.Service
}

func NewActivityHandler(service challenge.Service) *ActivityHandler {
	return &ActivityHandler{service: service}
}

// HandleGetActivity returns recent platform activity with display-formatted
// amounts
func (h *ActivityHandler) HandleGetActivity(w http.ResponseWriter, r *http.Request) {
	limit, ok := GetOptionalIntParam(r, "limit", 0)
	if !ok {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidLimitParam)
		return
	}

	feed, err := h.service.ActivityFeed(r.Context(), limit)
	if err != nil {
		respondServiceError(w, r, "Get activity", err)
		return
	}

	for i := range feed {
		if feed[i].Amount != 0 {
			feed[i].DisplayAmount = utils.FormatMoney(feed[i].Amount)
		}
	}

	respondJSON(w, http.StatusOK, DataResponse{Data: feed})
}
