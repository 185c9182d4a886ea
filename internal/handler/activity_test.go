package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitstake/fitstake-go/internal/domain"
)

func TestHandleGetActivityFormatsAmounts(t *testing.T) {
	svc := &stubService{
		activityFunc: func(ctx context.Context, limit int) ([]domain.ActivityEntry, error) {
			return []domain.ActivityEntry{
				{ID: "a1", Type: "join", Amount: 1234.5},
				{ID: "a2", Type: "message", Amount: 0},
			}, nil
		},
	}
	h := NewActivityHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/challenges/activity", nil)
	rec := httptest.NewRecorder()
	h.HandleGetActivity(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Data []domain.ActivityEntry `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "$1,234.50", resp.Data[0].DisplayAmount)
	assert.Empty(t, resp.Data[1].DisplayAmount)
}

func TestHandleGetActivityPassesLimit(t *testing.T) {
	var gotLimit int
	svc := &stubService{
		activityFunc: func(ctx context.Context, limit int) ([]domain.ActivityEntry, error) {
			gotLimit = limit
			return nil, nil
		},
	}
	h := NewActivityHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/challenges/activity?limit=5", nil)
	rec := httptest.NewRecorder()
	h.HandleGetActivity(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, gotLimit)
}

func TestHandleGetActivityBadLimit(t *testing.T) {
	h := NewActivityHandler(&stubService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/challenges/activity?limit=abc", nil)
	rec := httptest.NewRecorder()
	h.HandleGetActivity(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
