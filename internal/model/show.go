package model

import "time"

// Show books an artist at a venue at a point in time.  It is a pure join
// entity: both references must exist when the show is created, and shows
// are removed before their venue or artist.
type Show struct {
	ID       uint64    `db:"id"`
	ArtistID uint64    `db:"artist_id"`
	VenueID  uint64    `db:"venue_id"`
	ShowTime time.Time `db:"show_time"`
}

func (*Show) TableName() string { return "shows" }

func (*Show) Columns() []string { return []string{"artist_id", "venue_id", "show_time"} }

func (s *Show) Values() []any { return []any{s.ArtistID, s.VenueID, s.ShowTime.UTC()} }

func (s *Show) PK() uint64      { return s.ID }
func (s *Show) SetPK(id uint64) { s.ID = id }

// ShowListing is a show joined with the names and images of both sides.
type ShowListing struct {
	ID              uint64    `db:"id"`
	ShowTime        time.Time `db:"show_time"`
	VenueID         uint64    `db:"venue_id"`
	VenueName       string    `db:"venue_name"`
	VenueImageLink  string    `db:"venue_image_link"`
	ArtistID        uint64    `db:"artist_id"`
	ArtistName      string    `db:"artist_name"`
	ArtistImageLink string    `db:"artist_image_link"`
}

// Upcoming reports whether the show starts at or after now.
func (s ShowListing) Upcoming(now time.Time) bool { return !s.ShowTime.Before(now) }
