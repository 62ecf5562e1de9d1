package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/erslabs/mort-manager/backend/internal/domain"
)

// MealRepo defines the persistence operations for Meals.
// Meals are never updated or deleted once created.
type MealRepo interface {
	// Create stores a new meal under a freshly generated ID and returns it.
	Create(ctx context.Context, in domain.MealInput) (domain.Meal, error)

	// GetByID retrieves a single meal.
	// Returns domain.ErrNotFound if no meal with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Meal, error)

	// List returns all meals in creation order.
	List(ctx context.Context) ([]domain.Meal, error)

	// ListByType returns meals whose type equals t exactly.
	ListByType(ctx context.Context, t domain.MealType) ([]domain.Meal, error)

	// ListByDietaryTags returns meals carrying at least one of tags.
	ListByDietaryTags(ctx context.Context, tags []domain.DietaryTag) ([]domain.Meal, error)

	// Search returns meals whose name or description contains query,
	// compared case-insensitively.
	Search(ctx context.Context, query string) ([]domain.Meal, error)

	// Count returns the number of stored meals.
	Count(ctx context.Context) (int, error)
}

// psql builds Postgres-flavoured statements with $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var mealColumns = []string{
	"id", "name", "description", "type", "calories", "cook_time",
	"weight", "cost", "dietary_tags", "ingredients", "instructions", "servings",
}

// pgMealRepo is the Postgres implementation of MealRepo.
type pgMealRepo struct {
	db db
}

// NewMealRepo constructs a MealRepo backed by the provided db connection.
func NewMealRepo(db db) MealRepo {
	return &pgMealRepo{db: db}
}

// Create inserts a meal row. Ingredients are stored as a jsonb array.
func (r *pgMealRepo) Create(ctx context.Context, in domain.MealInput) (domain.Meal, error) {
	ingredients := in.Ingredients
	if ingredients == nil {
		ingredients = []domain.Ingredient{}
	}

	q, args, err := psql.Insert("meals").
		Columns(mealColumns[1:]...).
		Values(
			in.Name, in.Description, string(in.Type), in.Calories, in.CookTime,
			in.Weight, in.Cost, tagsToStrings(in.DietaryTags), ingredients,
			in.Instructions, in.Servings,
		).
		Suffix("RETURNING " + strings.Join(mealColumns, ", ")).
		ToSql()
	if err != nil {
		return domain.Meal{}, fmt.Errorf("repo.MealRepo.Create: build: %w", err)
	}

	result, err := scanMeal(r.db.QueryRow(ctx, q, args...))
	if err != nil {
		return domain.Meal{}, fmt.Errorf("repo.MealRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a meal by primary key.
func (r *pgMealRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Meal, error) {
	q, args, err := psql.Select(mealColumns...).From("meals").
		Where(sq.Expr("id = ?", id)). // sq.Eq would expand the uuid byte array into IN (...)
		ToSql()
	if err != nil {
		return domain.Meal{}, fmt.Errorf("repo.MealRepo.GetByID: build: %w", err)
	}

	result, err := scanMeal(r.db.QueryRow(ctx, q, args...))
	if err != nil {
		return domain.Meal{}, fmt.Errorf("repo.MealRepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns all meals.
func (r *pgMealRepo) List(ctx context.Context) ([]domain.Meal, error) {
	meals, err := r.selectWhere(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("repo.MealRepo.List: %w", err)
	}
	return meals, nil
}

// ListByType returns meals of exactly type t.
func (r *pgMealRepo) ListByType(ctx context.Context, t domain.MealType) ([]domain.Meal, error) {
	meals, err := r.selectWhere(ctx, sq.Eq{"type": string(t)})
	if err != nil {
		return nil, fmt.Errorf("repo.MealRepo.ListByType: %w", err)
	}
	return meals, nil
}

// ListByDietaryTags uses the array overlap operator, which is true when the
// two arrays share at least one element.
func (r *pgMealRepo) ListByDietaryTags(ctx context.Context, tags []domain.DietaryTag) ([]domain.Meal, error) {
	meals, err := r.selectWhere(ctx, sq.Expr("dietary_tags && ?", tagsToStrings(tags)))
	if err != nil {
		return nil, fmt.Errorf("repo.MealRepo.ListByDietaryTags: %w", err)
	}
	return meals, nil
}

// Search matches query as a literal substring: LIKE wildcards in the query
// are escaped.
func (r *pgMealRepo) Search(ctx context.Context, query string) ([]domain.Meal, error) {
	pattern := "%" + likeEscaper.Replace(query) + "%"
	meals, err := r.selectWhere(ctx, sq.Or{
		sq.ILike{"name": pattern},
		sq.ILike{"description": pattern},
	})
	if err != nil {
		return nil, fmt.Errorf("repo.MealRepo.Search: %w", err)
	}
	return meals, nil
}

// Count returns the number of meal rows.
func (r *pgMealRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM meals`).Scan(&n); err != nil {
		return 0, fmt.Errorf("repo.MealRepo.Count: %w", err)
	}
	return n, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// selectWhere runs a meal SELECT with an optional predicate, in creation order.
func (r *pgMealRepo) selectWhere(ctx context.Context, pred sq.Sqlizer) ([]domain.Meal, error) {
	b := psql.Select(mealColumns...).From("meals").OrderBy("created_at", "id")
	if pred != nil {
		b = b.Where(pred)
	}
	q, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	meals := []domain.Meal{}
	for rows.Next() {
		m, err := scanMeal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		meals = append(meals, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return meals, nil
}

// scanMeal maps a single database row into a domain.Meal.
// The jsonb ingredients column decodes straight into the domain slice.
func scanMeal(s scanner) (domain.Meal, error) {
	var (
		m        domain.Meal
		id       pgtype.UUID
		mealType string
		tags     []string
	)

	err := s.Scan(
		&id, &m.Name, &m.Description, &mealType, &m.Calories, &m.CookTime,
		&m.Weight, &m.Cost, &tags, &m.Ingredients, &m.Instructions, &m.Servings,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Meal{}, domain.ErrNotFound
		}
		return domain.Meal{}, err
	}

	m.ID = uuid.UUID(id.Bytes)
	m.Type = domain.MealType(mealType)
	m.DietaryTags = stringsToTags(tags)
	if m.Ingredients == nil {
		m.Ingredients = []domain.Ingredient{}
	}
	return m, nil
}
