package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/stagebook/internal/model"
)

// VenueRepo encapsulates all database queries related to venues.
type VenueRepo struct {
	db    *sqlx.DB
	table Table[model.Venue, *model.Venue]
}

// NewVenueRepo constructs a VenueRepo with the provided DB handle.
func NewVenueRepo(db *sqlx.DB) *VenueRepo {
	return &VenueRepo{db: db, table: NewTable[model.Venue](db)}
}

// Area groups the venues of one city and state.
type Area struct {
	City   string
	State  string
	Venues []model.Venue
}

// Create inserts a venue; v.ID is populated on success.
func (r *VenueRepo) Create(ctx context.Context, v *model.Venue) error {
	return WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		return r.table.With(tx).Create(ctx, v)
	})
}

// GetByID returns ErrNotFound if the venue does not exist.
func (r *VenueRepo) GetByID(ctx context.Context, id uint64) (*model.Venue, error) {
	return r.table.GetByID(ctx, id)
}

// ListAll returns every venue ordered by id.
func (r *VenueRepo) ListAll(ctx context.Context) ([]model.Venue, error) {
	return r.table.ListAll(ctx)
}

// SearchByName returns venues whose name contains term, ignoring case.
func (r *VenueRepo) SearchByName(ctx context.Context, term string) ([]model.Venue, int, error) {
	return r.table.Search(ctx, "name", term)
}

// ListByArea returns venues grouped by (city, state).  Areas are ordered by
// state then city and venues inside an area by name.
func (r *VenueRepo) ListByArea(ctx context.Context) ([]Area, error) {
	var rows []model.Venue
	q := `SELECT id, name, city, state, address, phone, image_link, facebook_link, genres
	      FROM venues ORDER BY state, city, name, id`
	if err := r.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, err
	}
	out := []Area{}
	for _, v := range rows {
		n := len(out)
		if n == 0 || out[n-1].City != v.City || out[n-1].State != v.State {
			out = append(out, Area{City: v.City, State: v.State})
			n++
		}
		out[n-1].Venues = append(out[n-1].Venues, v)
	}
	return out, nil
}

// Update overwrites every editable field.  It returns ErrNotFound if the
// venue does not exist.
func (r *VenueRepo) Update(ctx context.Context, v *model.Venue) error {
	return WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		return r.table.With(tx).Update(ctx, v)
	})
}

// Delete removes a venue and every show booked there in one transaction.
// It returns ErrNotFound (and deletes nothing) if the venue does not exist.
func (r *VenueRepo) Delete(ctx context.Context, id uint64) error {
	return WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := NewTable[model.Show](tx).DeleteWhere(ctx, "venue_id = ?", id); err != nil {
			return err
		}
		return r.table.With(tx).Delete(ctx, id)
	})
}

// UpcomingShowCounts maps venue id to the number of shows starting at or
// after now.  Venues without upcoming shows are absent from the map.
func (r *VenueRepo) UpcomingShowCounts(ctx context.Context, now time.Time) (map[uint64]int, error) {
	return countShowsBy(ctx, r.db, "venue_id", now)
}

type idCount struct {
	ID uint64 `db:"id"`
	N  int    `db:"n"`
}

// countShowsBy counts upcoming shows grouped by the given shows column.
func countShowsBy(ctx context.Context, db *sqlx.DB, column string, now time.Time) (map[uint64]int, error) {
	q := db.Rebind(`SELECT ` + column + ` AS id, COUNT(*) AS n FROM shows
	                WHERE show_time >= ? GROUP BY ` + column)
	var rows []idCount
	if err := db.SelectContext(ctx, &rows, q, now.UTC()); err != nil {
		return nil, err
	}
	out := make(map[uint64]int, len(rows))
	for _, r := range rows {
		out[r.ID] = r.N
	}
	return out, nil
}
