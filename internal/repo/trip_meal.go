package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/erslabs/mort-manager/backend/internal/domain"
)

// TripMealRepo defines the persistence operations for trip meal assignments.
// The store guarantees at most one TripMeal per (trip, day, meal type) slot.
type TripMealRepo interface {
	// SetSlot places mealID in the slot, atomically replacing any trip meal
	// already there. The returned record always carries a fresh ID; the
	// replaced record no longer exists afterwards.
	SetSlot(ctx context.Context, tripID uuid.UUID, slot domain.Slot, mealID uuid.UUID) (domain.TripMeal, error)

	// ListByTrip returns the trip meals of a trip in creation order.
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.TripMeal, error)

	// RemoveBySlot deletes the trip meal occupying the slot.
	// Returns domain.ErrNotFound if the slot is empty.
	RemoveBySlot(ctx context.Context, tripID uuid.UUID, slot domain.Slot) error
}

// pgTripMealRepo is the Postgres implementation of TripMealRepo.
type pgTripMealRepo struct {
	db db
}

// NewTripMealRepo constructs a TripMealRepo backed by the provided db connection.
func NewTripMealRepo(db db) TripMealRepo {
	return &pgTripMealRepo{db: db}
}

const tripMealColumns = `id, trip_id, meal_id, day, meal_type`

// SetSlot relies on the trip_meals_slot_key unique constraint: the conflict
// arm swaps in the proposed row's id, meal and timestamp, so replacement is
// one statement with no window in which the slot is empty.
func (r *pgTripMealRepo) SetSlot(ctx context.Context, tripID uuid.UUID, slot domain.Slot, mealID uuid.UUID) (domain.TripMeal, error) {
	const q = `
		INSERT INTO trip_meals (trip_id, meal_id, day, meal_type)
		VALUES (@trip_id, @meal_id, @day, @meal_type)
		ON CONFLICT ON CONSTRAINT trip_meals_slot_key DO UPDATE
		SET id         = EXCLUDED.id,
		    meal_id    = EXCLUDED.meal_id,
		    created_at = EXCLUDED.created_at
		RETURNING ` + tripMealColumns

	args := pgx.NamedArgs{
		"trip_id":   tripID,
		"meal_id":   mealID,
		"day":       slot.Day,
		"meal_type": string(slot.MealType),
	}

	result, err := scanTripMeal(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.TripMeal{}, fmt.Errorf("repo.TripMealRepo.SetSlot: %w", err)
	}
	return result, nil
}

// ListByTrip returns the trip's meals ordered by creation time.
func (r *pgTripMealRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.TripMeal, error) {
	const q = `
		SELECT ` + tripMealColumns + `
		FROM trip_meals
		WHERE trip_id = @trip_id
		ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.TripMealRepo.ListByTrip: %w", err)
	}
	defer rows.Close()

	out := []domain.TripMeal{}
	for rows.Next() {
		tm, err := scanTripMeal(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TripMealRepo.ListByTrip: scan: %w", err)
		}
		out = append(out, tm)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripMealRepo.ListByTrip: rows: %w", err)
	}
	return out, nil
}

// RemoveBySlot deletes the slot's occupant.
func (r *pgTripMealRepo) RemoveBySlot(ctx context.Context, tripID uuid.UUID, slot domain.Slot) error {
	const q = `
		DELETE FROM trip_meals
		WHERE trip_id = @trip_id AND day = @day AND meal_type = @meal_type`

	args := pgx.NamedArgs{
		"trip_id":   tripID,
		"day":       slot.Day,
		"meal_type": string(slot.MealType),
	}

	tag, err := r.db.Exec(ctx, q, args)
	if err != nil {
		return fmt.Errorf("repo.TripMealRepo.RemoveBySlot: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripMealRepo.RemoveBySlot: %w", domain.ErrNotFound)
	}
	return nil
}

// scanTripMeal maps a single database row into a domain.TripMeal.
func scanTripMeal(s scanner) (domain.TripMeal, error) {
	var (
		tm               domain.TripMeal
		id, tripID, meal pgtype.UUID
		mealType         string
	)

	if err := s.Scan(&id, &tripID, &meal, &tm.Day, &mealType); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.TripMeal{}, domain.ErrNotFound
		}
		return domain.TripMeal{}, err
	}

	tm.ID = uuid.UUID(id.Bytes)
	tm.TripID = uuid.UUID(tripID.Bytes)
	tm.MealID = uuid.UUID(meal.Bytes)
	tm.MealType = domain.MealType(mealType)
	return tm, nil
}
