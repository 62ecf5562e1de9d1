package handler_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/erslabs/mort-manager/backend/internal/domain"
	"github.com/erslabs/mort-manager/backend/internal/handler"
)

func TestLiveShoppingList_SubscribesKnownTrip(t *testing.T) {
	trip := tripFixture()
	var subscribed uuid.UUID
	h := newHTTPHandler(handler.Services{
		Trips: &mockTripServicer{
			getByID: func(context.Context, uuid.UUID) (domain.Trip, error) { return trip, nil },
		},
		Live: &mockLiveSubscriber{
			subscribe: func(w http.ResponseWriter, _ *http.Request, id uuid.UUID) {
				subscribed = id
				w.WriteHeader(http.StatusSwitchingProtocols)
			},
		},
	})

	rec := serve(h, http.MethodGet, "/trips/"+trip.ID.String()+"/shopping-list/live", nil)

	assert.Equal(t, http.StatusSwitchingProtocols, rec.Code)
	assert.Equal(t, trip.ID, subscribed)
}

func TestLiveShoppingList_404_UnknownTrip(t *testing.T) {
	h := newHTTPHandler(handler.Services{
		Trips: &mockTripServicer{
			getByID: func(context.Context, uuid.UUID) (domain.Trip, error) { return domain.Trip{}, domain.ErrNotFound },
		},
		Live: &mockLiveSubscriber{
			subscribe: func(http.ResponseWriter, *http.Request, uuid.UUID) {
				t.Fatal("must not subscribe to an unknown trip")
			},
		},
	})

	rec := serve(h, http.MethodGet, "/trips/"+uuid.NewString()+"/shopping-list/live", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
