package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/itinerary/backend/internal/domain"
	"github.com/pkordes/itinerary/backend/internal/handler"
)

func TestCreateStay_201(t *testing.T) {
	svc := &mockStayServicer{
		create: func(_ context.Context, stay domain.Stay) (domain.Stay, error) {
			stay.ID = uuid.New()
			return stay, nil
		},
	}
	router := newRouter(nil, nil, nil, svc, nil)

	body := jsonBody(t, map[string]any{
		"name":     "Hotel Avenida",
		"address":  "Av. da Liberdade 1",
		"check_in": "15:00",
	})
	req := httptest.NewRequest(http.MethodPost, "/stays", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	got := decodeResponse[domain.Stay](t, rec.Body)
	assert.Equal(t, "Hotel Avenida", got.Name)
	require.NotNil(t, got.CheckIn)
	assert.Equal(t, "15:00", got.CheckIn.String())
}

func TestDeleteStay_204(t *testing.T) {
	svc := &mockStayServicer{
		delete: func(_ context.Context, _ uuid.UUID, target *uuid.UUID) (*domain.ReassignmentChoice, error) {
			assert.Nil(t, target)
			return nil, nil
		},
	}
	router := newRouter(nil, nil, nil, svc, nil)

	req := httptest.NewRequest(http.MethodDelete, "/stays/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestDeleteStay_409_WithCandidates(t *testing.T) {
	stayID := uuid.New()
	candidates := []domain.Stay{
		{ID: uuid.New(), Name: "Hotel A", Address: "Rua A"},
		{ID: uuid.New(), Name: "Hotel B", Address: "Rua B"},
	}
	svc := &mockStayServicer{
		delete: func(_ context.Context, id uuid.UUID, _ *uuid.UUID) (*domain.ReassignmentChoice, error) {
			return &domain.ReassignmentChoice{StayID: id, Candidates: candidates},
				fmt.Errorf("delete: %w", domain.ErrAmbiguousReassignment)
		},
	}
	router := newRouter(nil, nil, nil, svc, nil)

	req := httptest.NewRequest(http.MethodDelete, "/stays/"+stayID.String(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
	got := decodeResponse[handler.ErrorResponse](t, rec.Body)
	assert.Equal(t, "ambiguous_reassignment", got.Error.Code)
	require.Len(t, got.Candidates, 2)
	assert.Equal(t, "Hotel A", got.Candidates[0].Name)
}

func TestDeleteStay_WithTarget(t *testing.T) {
	target := uuid.New()
	svc := &mockStayServicer{
		delete: func(_ context.Context, _ uuid.UUID, got *uuid.UUID) (*domain.ReassignmentChoice, error) {
			require.NotNil(t, got)
			assert.Equal(t, target, *got)
			return nil, nil
		},
	}
	router := newRouter(nil, nil, nil, svc, nil)

	req := httptest.NewRequest(http.MethodDelete, "/stays/"+uuid.NewString()+"?target_stay_id="+target.String(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestDeleteStay_BadTarget(t *testing.T) {
	router := newRouter(nil, nil, nil, &mockStayServicer{}, nil)

	req := httptest.NewRequest(http.MethodDelete, "/stays/"+uuid.NewString()+"?target_stay_id=nope", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
