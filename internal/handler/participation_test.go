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

func TestHandleGetMyParticipationsAnonymous(t *testing.T) {
	h := NewParticipationHandler(&stubService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/challenges/my-participations", nil)
	rec := httptest.NewRecorder()
	h.HandleGetMyParticipations(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, "anonymous reads are a valid state, not an error")
	var resp domain.ParticipationList
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Empty(t, resp.Participations)
}

func TestHandleGetMyParticipations(t *testing.T) {
	svc := &stubService{
		participationsFunc: func(ctx context.Context, email string) (*domain.ParticipationList, error) {
			assert.Equal(t, "user@test.dev", email)
			return &domain.ParticipationList{
				Success: true,
				Participations: []domain.EnrichedParticipation{
					{Participation: domain.Participation{ID: "p1", ChallengeID: "c1"}},
				},
				Total: 1,
			}, nil
		},
	}
	h := NewParticipationHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/challenges/my-participations?email=user%40test.dev", nil)
	rec := httptest.NewRecorder()
	h.HandleGetMyParticipations(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp domain.ParticipationList
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.Total)
}

func TestHandleGetUserParticipationNotParticipating(t *testing.T) {
	h := NewParticipationHandler(&stubService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/challenges/c1/participation", nil)
	req = withPathParam(req, "id", "c1")
	rec := httptest.NewRecorder()
	h.HandleGetUserParticipation(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Participating bool             `json:"participating"`
		Participation *json.RawMessage `json:"participation"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Participating)
}

func TestHandleGetUserParticipation(t *testing.T) {
	svc := &stubService{
		participationFunc: func(ctx context.Context, challengeID, email string) (*domain.EnrichedParticipation, error) {
			return &domain.EnrichedParticipation{
				Participation: domain.Participation{ID: "p1", ChallengeID: challengeID, UserEmail: email},
			}, nil
		},
	}
	h := NewParticipationHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/challenges/c1/participation?email=user%40test.dev", nil)
	req = withPathParam(req, "id", "c1")
	rec := httptest.NewRecorder()
	h.HandleGetUserParticipation(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Participating bool                          `json:"participating"`
		Participation *domain.EnrichedParticipation `json:"participation"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Participating)
	require.NotNil(t, resp.Participation)
	assert.Equal(t, "p1", resp.Participation.ID)
}
