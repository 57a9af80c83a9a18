package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/stagebook/internal/model"
)

// ShowRepo persists shows and reads them joined with venue and artist
// details.
type ShowRepo struct {
	db    *sqlx.DB
	table Table[model.Show, *model.Show]
}

func NewShowRepo(db *sqlx.DB) *ShowRepo {
	return &ShowRepo{db: db, table: NewTable[model.Show](db)}
}

const showListingSQL = `SELECT
		s.id,
		s.show_time,
		v.id         AS venue_id,
		v.name       AS venue_name,
		v.image_link AS venue_image_link,
		a.id         AS artist_id,
		a.name       AS artist_name,
		a.image_link AS artist_image_link
	FROM shows s
	JOIN venues v  ON v.id = s.venue_id
	JOIN artists a ON a.id = s.artist_id`

// Create inserts a show after checking, inside the same transaction, that
// both its artist and its venue exist.  A missing parent yields
// ErrInvalidReference and nothing is written.
func (r *ShowRepo) Create(ctx context.Context, s *model.Show) error {
	return WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		ok, err := NewTable[model.Artist](tx).Exists(ctx, s.ArtistID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrInvalidReference
		}
		ok, err = NewTable[model.Venue](tx).Exists(ctx, s.VenueID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrInvalidReference
		}
		return r.table.With(tx).Create(ctx, s)
	})
}

// ListAll returns every show ordered by start time.
func (r *ShowRepo) ListAll(ctx context.Context) ([]model.ShowListing, error) {
	return r.listings(ctx, "")
}

// ForVenue returns the shows booked at a venue ordered by start time.
func (r *ShowRepo) ForVenue(ctx context.Context, venueID uint64) ([]model.ShowListing, error) {
	return r.listings(ctx, "s.venue_id = ?", venueID)
}

// ForArtist returns the shows played by an artist ordered by start time.
func (r *ShowRepo) ForArtist(ctx context.Context, artistID uint64) ([]model.ShowListing, error) {
	return r.listings(ctx, "s.artist_id = ?", artistID)
}

func (r *ShowRepo) listings(ctx context.Context, where string, args ...any) ([]model.ShowListing, error) {
	out := []model.ShowListing{}
	q := r.db.Rebind(showListingSQL + whereClause(where) + " ORDER BY s.show_time, s.id")
	if err := r.db.SelectContext(ctx, &out, q, args...); err != nil {
		return nil, err
	}
	return out, nil
}
