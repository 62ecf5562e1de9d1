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

// ShoppingListRepo defines the persistence operations for shopping lists.
// Lists are addressed by trip: each trip has at most one.
type ShoppingListRepo interface {
	// Create stores a new list for tripID under a freshly generated ID.
	// Returns domain.ErrValidation if the trip already has a list.
	Create(ctx context.Context, tripID uuid.UUID, items []domain.ShoppingItem, totalCost float64) (domain.ShoppingList, error)

	// GetByTrip returns the list of a trip.
	// Returns domain.ErrNotFound if the trip has no list.
	GetByTrip(ctx context.Context, tripID uuid.UUID) (domain.ShoppingList, error)

	// UpdateByTrip merges the non-nil fields of patch onto the trip's list.
	// Returns domain.ErrNotFound if the trip has no list.
	UpdateByTrip(ctx context.Context, tripID uuid.UUID, patch domain.ShoppingListPatch) (domain.ShoppingList, error)

	// UpsertByTrip replaces the items and total of the trip's list in place,
	// creating the list first if the trip has none.
	UpsertByTrip(ctx context.Context, tripID uuid.UUID, items []domain.ShoppingItem, totalCost float64) (domain.ShoppingList, error)
}

// pgShoppingListRepo is the Postgres implementation of ShoppingListRepo.
type pgShoppingListRepo struct {
	db db
}

// NewShoppingListRepo constructs a ShoppingListRepo backed by the provided db connection.
func NewShoppingListRepo(db db) ShoppingListRepo {
	return &pgShoppingListRepo{db: db}
}

const shoppingListColumns = `id, trip_id, items, total_cost`

// Create inserts a list row. A trip that already has a list is reported as
// domain.ErrValidation.
func (r *pgShoppingListRepo) Create(ctx context.Context, tripID uuid.UUID, items []domain.ShoppingItem, totalCost float64) (domain.ShoppingList, error) {
	const q = `
		INSERT INTO shopping_lists (trip_id, items, total_cost)
		VALUES (@trip_id, @items, @total_cost)
		RETURNING ` + shoppingListColumns

	args := pgx.NamedArgs{
		"trip_id":    tripID,
		"items":      domain.CloneItems(items),
		"total_cost": totalCost,
	}

	result, err := scanShoppingList(r.db.QueryRow(ctx, q, args))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ShoppingList{}, fmt.Errorf("repo.ShoppingListRepo.Create: trip already has a list: %w", domain.ErrValidation)
		}
		return domain.ShoppingList{}, fmt.Errorf("repo.ShoppingListRepo.Create: %w", err)
	}
	return result, nil
}

// uniqueViolation is the SQLSTATE Postgres reports for a unique constraint.
const uniqueViolation = "23505"

// GetByTrip looks the list up through the unique trip_id index.
func (r *pgShoppingListRepo) GetByTrip(ctx context.Context, tripID uuid.UUID) (domain.ShoppingList, error) {
	const q = `SELECT ` + shoppingListColumns + ` FROM shopping_lists WHERE trip_id = @trip_id`

	result, err := scanShoppingList(r.db.QueryRow(ctx, q, pgx.NamedArgs{"trip_id": tripID}))
	if err != nil {
		return domain.ShoppingList{}, fmt.Errorf("repo.ShoppingListRepo.GetByTrip: %w", err)
	}
	return result, nil
}

// UpdateByTrip merges present fields with COALESCE.
func (r *pgShoppingListRepo) UpdateByTrip(ctx context.Context, tripID uuid.UUID, patch domain.ShoppingListPatch) (domain.ShoppingList, error) {
	const q = `
		UPDATE shopping_lists
		SET items      = COALESCE(@items, items),
		    total_cost = COALESCE(@total_cost, total_cost)
		WHERE trip_id = @trip_id
		RETURNING ` + shoppingListColumns

	args := pgx.NamedArgs{
		"trip_id":    tripID,
		"items":      nil,
		"total_cost": patch.TotalCost,
	}
	if patch.Items != nil {
		args["items"] = domain.CloneItems(patch.Items)
	}

	result, err := scanShoppingList(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.ShoppingList{}, fmt.Errorf("repo.ShoppingListRepo.UpdateByTrip: %w", err)
	}
	return result, nil
}

// UpsertByTrip keeps the list ID stable across regenerations: the conflict
// arm only touches items and total_cost.
func (r *pgShoppingListRepo) UpsertByTrip(ctx context.Context, tripID uuid.UUID, items []domain.ShoppingItem, totalCost float64) (domain.ShoppingList, error) {
	const q = `
		INSERT INTO shopping_lists (trip_id, items, total_cost)
		VALUES (@trip_id, @items, @total_cost)
		ON CONFLICT (trip_id) DO UPDATE
		SET items      = EXCLUDED.items,
		    total_cost = EXCLUDED.total_cost
		RETURNING ` + shoppingListColumns

	args := pgx.NamedArgs{
		"trip_id":    tripID,
		"items":      domain.CloneItems(items),
		"total_cost": totalCost,
	}

	result, err := scanShoppingList(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.ShoppingList{}, fmt.Errorf("repo.ShoppingListRepo.UpsertByTrip: %w", err)
	}
	return result, nil
}

// scanShoppingList maps a single database row into a domain.ShoppingList.
func scanShoppingList(s scanner) (domain.ShoppingList, error) {
	var (
		l          domain.ShoppingList
		id, tripID pgtype.UUID
	)

	if err := s.Scan(&id, &tripID, &l.Items, &l.TotalCost); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ShoppingList{}, domain.ErrNotFound
		}
		return domain.ShoppingList{}, err
	}

	l.ID = uuid.UUID(id.Bytes)
	l.TripID = uuid.UUID(tripID.Bytes)
	if l.Items == nil {
		l.Items = []domain.ShoppingItem{}
	}
	return l, nil
}
