package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/stagebook/internal/model"
)

// QuestionRepo encapsulates all database queries related to trivia
// questions.
type QuestionRepo struct {
	db    *sqlx.DB
	table Table[model.Question, *model.Question]
}

func NewQuestionRepo(db *sqlx.DB) *QuestionRepo {
	return &QuestionRepo{db: db, table: NewTable[model.Question](db)}
}

// Create inserts a question.  The category must exist; otherwise
// ErrInvalidReference is returned and nothing is written.
func (r *QuestionRepo) Create(ctx context.Context, q *model.Question) error {
	return WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		ok, err := NewTable[model.Category](tx).Exists(ctx, q.CategoryID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrInvalidReference
		}
		return r.table.With(tx).Create(ctx, q)
	})
}

func (r *QuestionRepo) GetByID(ctx context.Context, id uint64) (*model.Question, error) {
	return r.table.GetByID(ctx, id)
}

// Delete returns ErrNotFound if the question does not exist.
func (r *QuestionRepo) Delete(ctx context.Context, id uint64) error {
	return WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		return r.table.With(tx).Delete(ctx, id)
	})
}

// ListPage returns one page of questions in id order and the total count.
// An empty page yields ErrNotFound.
func (r *QuestionRepo) ListPage(ctx context.Context, p Page) ([]model.Question, int, error) {
	return r.table.Page(ctx, p, "")
}

// Search returns questions whose text contains term, ignoring case.
func (r *QuestionRepo) Search(ctx context.Context, term string) ([]model.Question, int, error) {
	return r.table.Search(ctx, "question", term)
}

// ByCategory returns every question of a category in id order.
func (r *QuestionRepo) ByCategory(ctx context.Context, categoryID uint64) ([]model.Question, error) {
	return r.table.Filter(ctx, "category_id = ?", categoryID)
}

// EligibleIDs lists, in ascending order, the ids of questions in the given
// category (0 means any category) that are not in exclude.
func (r *QuestionRepo) EligibleIDs(ctx context.Context, categoryID uint64, exclude []uint64) ([]uint64, error) {
	where := "1 = 1"
	var args []any
	if categoryID != 0 {
		where += " AND category_id = ?"
		args = append(args, categoryID)
	}
	if len(exclude) > 0 {
		where += " AND id NOT IN (?)"
		args = append(args, exclude)
	}
	q, args, err := sqlx.In("SELECT id FROM questions WHERE "+where+" ORDER BY id", args...)
	if err != nil {
		return nil, err
	}
	ids := []uint64{}
	if err := r.db.SelectContext(ctx, &ids, r.db.Rebind(q), args...); err != nil {
		return nil, err
	}
	return ids, nil
}
