package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/stagebook/internal/model"
)

// DrinkRepo persists the coffee shop menu.  Titles are unique; a duplicate
// yields ErrConflict.
type DrinkRepo struct {
	db    *sqlx.DB
	table Table[model.Drink, *model.Drink]
}

func NewDrinkRepo(db *sqlx.DB) *DrinkRepo {
	return &DrinkRepo{db: db, table: NewTable[model.Drink](db)}
}

func (r *DrinkRepo) ListAll(ctx context.Context) ([]model.Drink, error) {
	return r.table.ListAll(ctx)
}

func (r *DrinkRepo) GetByID(ctx context.Context, id uint64) (*model.Drink, error) {
	return r.table.GetByID(ctx, id)
}

func (r *DrinkRepo) Create(ctx context.Context, d *model.Drink) error {
	return WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		return r.table.With(tx).Create(ctx, d)
	})
}

// Patch loads a drink, applies fn to it and writes it back in one
// transaction.  fn may return an error to abort without writing.
func (r *DrinkRepo) Patch(ctx context.Context, id uint64, fn func(d *model.Drink) error) (*model.Drink, error) {
	var out *model.Drink
	err := WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		t := r.table.With(tx)
		d, err := t.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := fn(d); err != nil {
			return err
		}
		if err := t.Update(ctx, d); err != nil {
			return err
		}
		out = d
		return nil
	})
	return out, err
}

func (r *DrinkRepo) Delete(ctx context.Context, id uint64) error {
	return WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		return r.table.With(tx).Delete(ctx, id)
	})
}
