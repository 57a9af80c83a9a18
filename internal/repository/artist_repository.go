package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/stagebook/internal/model"
)

// ArtistRepo encapsulates all database queries related to artists.
type ArtistRepo struct {
	db    *sqlx.DB
	table Table[model.Artist, *model.Artist]
}

func NewArtistRepo(db *sqlx.DB) *ArtistRepo {
	return &ArtistRepo{db: db, table: NewTable[model.Artist](db)}
}

func (r *ArtistRepo) Create(ctx context.Context, a *model.Artist) error {
	return WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		return r.table.With(tx).Create(ctx, a)
	})
}

func (r *ArtistRepo) GetByID(ctx context.Context, id uint64) (*model.Artist, error) {
	return r.table.GetByID(ctx, id)
}

func (r *ArtistRepo) ListAll(ctx context.Context) ([]model.Artist, error) {
	return r.table.ListAll(ctx)
}

func (r *ArtistRepo) SearchByName(ctx context.Context, term string) ([]model.Artist, int, error) {
	return r.table.Search(ctx, "name", term)
}

func (r *ArtistRepo) Update(ctx context.Context, a *model.Artist) error {
	return WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		return r.table.With(tx).Update(ctx, a)
	})
}

// Delete removes an artist and all of the artist's shows atomically.
func (r *ArtistRepo) Delete(ctx context.Context, id uint64) error {
	return WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := NewTable[model.Show](tx).DeleteWhere(ctx, "artist_id = ?", id); err != nil {
			return err
		}
		return r.table.With(tx).Delete(ctx, id)
	})
}

func (r *ArtistRepo) UpcomingShowCounts(ctx context.Context, now time.Time) (map[uint64]int, error) {
	return countShowsBy(ctx, r.db, "artist_id", now)
}
