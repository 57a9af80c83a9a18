package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// WithTx runs fn inside a transaction.  The transaction commits only when fn
// returns nil; any error or panic rolls it back so the store is left in its
// pre-operation state.  The error from fn (or from Commit) is returned.
func WithTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = translate(tx.Commit())
	}()
	return fn(tx)
}
