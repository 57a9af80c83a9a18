package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/stagebook/internal/model"
)

// CategoryRepo reads trivia categories.  The API never writes them.
type CategoryRepo struct {
	db    *sqlx.DB
	table Table[model.Category, *model.Category]
}

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo {
	return &CategoryRepo{db: db, table: NewTable[model.Category](db)}
}

func (r *CategoryRepo) ListAll(ctx context.Context) ([]model.Category, error) {
	return r.table.ListAll(ctx)
}

func (r *CategoryRepo) GetByID(ctx context.Context, id uint64) (*model.Category, error) {
	return r.table.GetByID(ctx, id)
}

// Referenced returns the categories used by at least one question.
func (r *CategoryRepo) Referenced(ctx context.Context) ([]model.Category, error) {
	return r.table.Filter(ctx, "id IN (SELECT DISTINCT category_id FROM questions)")
}

// ForQuestions returns the categories of the given questions.
func (r *CategoryRepo) ForQuestions(ctx context.Context, qs []model.Question) ([]model.Category, error) {
	if len(qs) == 0 {
		return []model.Category{}, nil
	}
	seen := make(map[uint64]bool, len(qs))
	ids := make([]uint64, 0, len(qs))
	for _, q := range qs {
		if !seen[q.CategoryID] {
			seen[q.CategoryID] = true
			ids = append(ids, q.CategoryID)
		}
	}
	where, args, err := sqlx.In("id IN (?)", ids)
	if err != nil {
		return nil, err
	}
	return r.table.Filter(ctx, where, args...)
}
