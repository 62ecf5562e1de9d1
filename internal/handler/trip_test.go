package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erslabs/mort-manager/backend/internal/domain"
	"github.com/erslabs/mort-manager/backend/internal/handler"
	"github.com/erslabs/mort-manager/backend/internal/middleware"
)

func tripsOnly(svc handler.TripServicer) http.Handler {
	return newHTTPHandler(handler.Services{Trips: svc})
}

// ---- POST /trips -----------------------------------------------------------

func TestCreateTrip_200(t *testing.T) {
	fixture := tripFixture()
	var got domain.TripInput
	svc := &mockTripServicer{
		create: func(_ context.Context, in domain.TripInput) (domain.Trip, error) {
			got = in
			return fixture, nil
		},
	}

	rec := serve(tripsOnly(svc), http.MethodPost, "/trips", jsonBody(t, map[string]any{
		"name":               "Sierra Loop",
		"duration":           3,
		"groupSize":          4,
		"cookingEquipment":   "Backpacking Stove",
		"dietaryPreferences": []string{"Vegetarian"},
	}))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Sierra Loop", got.Name)
	assert.Equal(t, 3, got.Duration)
	assert.Equal(t, 4, got.GroupSize)
	assert.Equal(t, domain.BackpackingStove, got.CookingEquipment)
	assert.Equal(t, []domain.DietaryTag{"Vegetarian"}, got.DietaryPreferences, "normalization is the service's job")

	var resp domain.Trip
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, fixture.ID, resp.ID)
	assert.Equal(t, fixture.Name, resp.Name)
}

func TestCreateTrip_400_ValidationError(t *testing.T) {
	svc := &mockTripServicer{
		create: func(_ context.Context, _ domain.TripInput) (domain.Trip, error) {
			return domain.Trip{}, fmt.Errorf("%w: duration failed min", domain.ErrValidation)
		},
	}

	rec := serve(tripsOnly(svc), http.MethodPost, "/trips", jsonBody(t, map[string]any{"name": "x", "duration": 0}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, "validation_error", resp.Error.Code)
	assert.Equal(t, "invalid trip data", resp.Error.Message)
}

func TestCreateTrip_400_MalformedJSON(t *testing.T) {
	svc := &mockTripServicer{
		create: func(_ context.Context, _ domain.TripInput) (domain.Trip, error) {
			t.Fatal("service must not be called")
			return domain.Trip{}, nil
		},
	}

	rec := serve(tripsOnly(svc), http.MethodPost, "/trips", bytes.NewBufferString(`{"name":`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation_error", decodeError(t, rec).Error.Code)
}

func TestCreateTrip_400_WrongFieldType(t *testing.T) {
	svc := &mockTripServicer{}

	rec := serve(tripsOnly(svc), http.MethodPost, "/trips", bytes.NewBufferString(`{"name":"x","duration":"three"}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateTrip_413_BodyTooLarge(t *testing.T) {
	svc := &mockTripServicer{}
	h := middleware.NewMaxBodySizeHandler(64)(tripsOnly(svc))

	big := `{"name":"` + strings.Repeat("a", 200) + `"}`
	rec := serve(h, http.MethodPost, "/trips", bytes.NewBufferString(big))

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestCreateTrip_500_Unexpected(t *testing.T) {
	svc := &mockTripServicer{
		create: func(_ context.Context, _ domain.TripInput) (domain.Trip, error) {
			return domain.Trip{}, errors.New("connection reset")
		},
	}

	rec := serve(tripsOnly(svc), http.MethodPost, "/trips", jsonBody(t, map[string]any{"name": "x"}))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, "internal_error", resp.Error.Code)
	assert.NotContains(t, resp.Error.Message, "connection reset")
}

// ---- GET /trips ------------------------------------------------------------

func TestListTrips_200(t *testing.T) {
	trips := []domain.Trip{tripFixture(), tripFixture()}
	svc := &mockTripServicer{
		list: func(_ context.Context) ([]domain.Trip, error) { return trips, nil },
	}

	rec := serve(tripsOnly(svc), http.MethodGet, "/trips", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp []domain.Trip
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp, 2)
	assert.Equal(t, trips[0].ID, resp[0].ID)
}

func TestListTrips_200_EmptyArray(t *testing.T) {
	svc := &mockTripServicer{
		list: func(_ context.Context) ([]domain.Trip, error) { return []domain.Trip{}, nil },
	}

	rec := serve(tripsOnly(svc), http.MethodGet, "/trips", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

// ---- GET /trips/{id} -------------------------------------------------------

func TestGetTrip_200(t *testing.T) {
	fixture := tripFixture()
	svc := &mockTripServicer{
		getByID: func(_ context.Context, id uuid.UUID) (domain.Trip, error) {
			assert.Equal(t, fixture.ID, id)
			return fixture, nil
		},
	}

	rec := serve(tripsOnly(svc), http.MethodGet, "/trips/"+fixture.ID.String(), nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Backpacking Stove", resp["cookingEquipment"])
	assert.EqualValues(t, 4, resp["groupSize"])
}

func TestGetTrip_404(t *testing.T) {
	svc := &mockTripServicer{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Trip, error) {
			return domain.Trip{}, fmt.Errorf("repo: %w", domain.ErrNotFound)
		},
	}

	rec := serve(tripsOnly(svc), http.MethodGet, "/trips/"+uuid.NewString(), nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, "not_found", resp.Error.Code)
	assert.Equal(t, "trip not found", resp.Error.Message)
}

func TestGetTrip_404_MalformedID(t *testing.T) {
	svc := &mockTripServicer{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Trip, error) {
			t.Fatal("service must not be called")
			return domain.Trip{}, nil
		},
	}

	rec := serve(tripsOnly(svc), http.MethodGet, "/trips/not-a-uuid", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ---- PUT /trips/{id} -------------------------------------------------------

func TestUpdateTrip_200_PartialPatch(t *testing.T) {
	fixture := tripFixture()
	var got domain.TripPatch
	svc := &mockTripServicer{
		update: func(_ context.Context, id uuid.UUID, p domain.TripPatch) (domain.Trip, error) {
			assert.Equal(t, fixture.ID, id)
			got = p
			return fixture, nil
		},
	}

	rec := serve(tripsOnly(svc), http.MethodPut, "/trips/"+fixture.ID.String(), jsonBody(t, map[string]any{"groupSize": 6}))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got.GroupSize)
	assert.Equal(t, 6, *got.GroupSize)
	assert.Nil(t, got.Name)
	assert.Nil(t, got.Duration)
	assert.Nil(t, got.CookingEquipment)
	assert.Nil(t, got.DietaryPreferences)
}

func TestUpdateTrip_ClearsPreferencesWithEmptyArray(t *testing.T) {
	var got domain.TripPatch
	svc := &mockTripServicer{
		update: func(_ context.Context, _ uuid.UUID, p domain.TripPatch) (domain.Trip, error) {
			got = p
			return tripFixture(), nil
		},
	}

	rec := serve(tripsOnly(svc), http.MethodPut, "/trips/"+uuid.NewString(), bytes.NewBufferString(`{"dietaryPreferences":[]}`))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got.DietaryPreferences)
	assert.Empty(t, got.DietaryPreferences)
}

func TestUpdateTrip_404(t *testing.T) {
	svc := &mockTripServicer{
		update: func(_ context.Context, _ uuid.UUID, _ domain.TripPatch) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrNotFound
		},
	}

	rec := serve(tripsOnly(svc), http.MethodPut, "/trips/"+uuid.NewString(), jsonBody(t, map[string]any{"name": "x"}))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateTrip_400(t *testing.T) {
	svc := &mockTripServicer{
		update: func(_ context.Context, _ uuid.UUID, _ domain.TripPatch) (domain.Trip, error) {
			return domain.Trip{}, fmt.Errorf("%w: groupSize failed min", domain.ErrValidation)
		},
	}

	rec := serve(tripsOnly(svc), http.MethodPut, "/trips/"+uuid.NewString(), jsonBody(t, map[string]any{"groupSize": 0}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ---- DELETE /trips/{id} ----------------------------------------------------

func TestDeleteTrip_200(t *testing.T) {
	id := uuid.New()
	svc := &mockTripServicer{
		delete: func(_ context.Context, got uuid.UUID) error {
			assert.Equal(t, id, got)
			return nil
		},
	}

	rec := serve(tripsOnly(svc), http.MethodDelete, "/trips/"+id.String(), nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
}

func TestDeleteTrip_404(t *testing.T) {
	svc := &mockTripServicer{
		delete: func(_ context.Context, _ uuid.UUID) error { return domain.ErrNotFound },
	}

	rec := serve(tripsOnly(svc), http.MethodDelete, "/trips/"+uuid.NewString(), nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
