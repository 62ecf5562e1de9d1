// Package repo contains all storage access logic for the meal planner API.
// Each resource has its own file with an interface and a Postgres
// implementation; memory.go holds the in-memory store that implements every
// interface for single-process deployments and tests.
// No business logic lives here, only queries and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/erslabs/mort-manager/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TripRepo defines the persistence operations for Trips.
// The service layer depends on this interface, not a concrete store.
type TripRepo interface {
	// Create stores a new trip under a freshly generated ID and returns it.
	Create(ctx context.Context, in domain.TripInput) (domain.Trip, error)

	// GetByID retrieves a single trip.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// List returns all trips in creation order.
	List(ctx context.Context) ([]domain.Trip, error)

	// Update shallow-merges the non-nil fields of patch onto the stored trip
	// and returns the result. It does not validate the merged record.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	Update(ctx context.Context, id uuid.UUID, patch domain.TripPatch) (domain.Trip, error)

	// Delete removes a trip together with its trip meals and shopping list.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripColumns = `id, name, duration, group_size, cooking_equipment, dietary_preferences`

// Create inserts a new trip row and returns the full persisted record.
func (r *pgTripRepo) Create(ctx context.Context, in domain.TripInput) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (name, duration, group_size, cooking_equipment, dietary_preferences)
		VALUES (@name, @duration, @group_size, @cooking_equipment, @dietary_preferences)
		RETURNING ` + tripColumns

	args := pgx.NamedArgs{
		"name":                in.Name,
		"duration":            in.Duration,
		"group_size":          in.GroupSize,
		"cooking_equipment":   string(in.CookingEquipment),
		"dietary_preferences": tagsToStrings(in.DietaryPreferences),
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a trip by primary key.
func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips WHERE id = @id`

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns all trips ordered by creation time.
func (r *pgTripRepo) List(ctx context.Context) ([]domain.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: %w", err)
	}
	defer rows.Close()

	trips := []domain.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TripRepo.List: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: rows: %w", err)
	}
	return trips, nil
}

// Update merges the present fields with COALESCE so absent fields keep their
// stored value in a single statement.
func (r *pgTripRepo) Update(ctx context.Context, id uuid.UUID, patch domain.TripPatch) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET name                = COALESCE(@name, name),
		    duration            = COALESCE(@duration, duration),
		    group_size          = COALESCE(@group_size, group_size),
		    cooking_equipment   = COALESCE(@cooking_equipment, cooking_equipment),
		    dietary_preferences = COALESCE(@dietary_preferences, dietary_preferences)
		WHERE id = @id
		RETURNING ` + tripColumns

	args := pgx.NamedArgs{
		"id":                  id,
		"name":                patch.Name, // nil becomes NULL
		"duration":            patch.Duration,
		"group_size":          patch.GroupSize,
		"cooking_equipment":   nil,
		"dietary_preferences": nil,
	}
	if patch.CookingEquipment != nil {
		args["cooking_equipment"] = string(*patch.CookingEquipment)
	}
	if patch.DietaryPreferences != nil {
		args["dietary_preferences"] = tagsToStrings(patch.DietaryPreferences)
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}
	return result, nil
}

// Delete removes a trip by primary key. Trip meals and the shopping list go
// with it through ON DELETE CASCADE.
func (r *pgTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM trips WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan
// helpers to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanTrip maps a single database row into a domain.Trip.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t         domain.Trip
		id        pgtype.UUID
		equipment string
		prefs     []string
	)

	err := s.Scan(&id, &t.Name, &t.Duration, &t.GroupSize, &equipment, &prefs)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	t.CookingEquipment = domain.CookingEquipment(equipment)
	t.DietaryPreferences = stringsToTags(prefs)
	return t, nil
}

// tagsToStrings converts tags for a text[] parameter. Never nil, so the
// column's NOT NULL constraint holds for an empty set.
func tagsToStrings(tags []domain.DietaryTag) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = string(t)
	}
	return out
}

// stringsToTags converts a scanned text[] column. Never nil.
func stringsToTags(raw []string) []domain.DietaryTag {
	out := make([]domain.DietaryTag, len(raw))
	for i, s := range raw {
		out[i] = domain.DietaryTag(s)
	}
	return out
}
