package handler

import (
	"strings"
	"time"

	"github.com/iliyamo/stagebook/internal/model"
	"github.com/iliyamo/stagebook/internal/queue"
	"github.com/iliyamo/stagebook/internal/repository"
)

// FyyurHandler serves venues, artists and the shows booking one at the
// other.
type FyyurHandler struct {
	Venues  *repository.VenueRepo
	Artists *repository.ArtistRepo
	Shows   *repository.ShowRepo
	Events  queue.Publisher
	Now     func() time.Time // splits past from upcoming shows
}

// NewFyyurHandler panics if a repository is missing.
func NewFyyurHandler(venues *repository.VenueRepo, artists *repository.ArtistRepo, shows *repository.ShowRepo, events queue.Publisher) *FyyurHandler {
	if venues == nil || artists == nil || shows == nil {
		panic("nil repository passed to NewFyyurHandler")
	}
	if events == nil {
		events = queue.NopPublisher{}
	}
	return &FyyurHandler{Venues: venues, Artists: artists, Shows: shows, Events: events, Now: time.Now}
}

func (h *FyyurHandler) now() time.Time { return h.Now().UTC() }

// summary is the {id, name, num_upcoming_shows} item used by lists and
// search results.
type summary struct {
	ID               uint64 `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows int    `json:"num_upcoming_shows"`
}

type searchResponse struct {
	Count   int       `json:"count"`
	Data    []summary `json:"data"`
	Message string    `json:"message,omitempty"`
}

// profileRequest is the create/edit form shared by venues and artists.
// Address is ignored for artists.
type profileRequest struct {
	Name         string    `json:"name" form:"name"`
	City         string    `json:"city" form:"city"`
	State        string    `json:"state" form:"state"`
	Address      string    `json:"address" form:"address"`
	Phone        string    `json:"phone" form:"phone"`
	ImageLink    string    `json:"image_link" form:"image_link"`
	FacebookLink string    `json:"facebook_link" form:"facebook_link"`
	Genres       genreList `json:"genres" form:"genres"`
}

func (r *profileRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.City = strings.TrimSpace(r.City)
	r.State = strings.TrimSpace(r.State)
	r.Address = strings.TrimSpace(r.Address)
	r.Phone = strings.TrimSpace(r.Phone)
	r.ImageLink = strings.TrimSpace(r.ImageLink)
	r.FacebookLink = strings.TrimSpace(r.FacebookLink)
}

type searchRequest struct {
	SearchTerm string `json:"search_term" form:"search_term"`
}

// venueShow is a show as listed on a venue page.
type venueShow struct {
	ArtistID        uint64 `json:"artist_id"`
	ArtistName      string `json:"artist_name"`
	ArtistImageLink string `json:"artist_image_link"`
	StartTime       string `json:"start_time"`
}

// artistShow is a show as listed on an artist page.
type artistShow struct {
	VenueID        uint64 `json:"venue_id"`
	VenueName      string `json:"venue_name"`
	VenueImageLink string `json:"venue_image_link"`
	StartTime      string `json:"start_time"`
}

// partition splits listings into past and upcoming relative to now,
// keeping their time order.
func partition[T any](listings []model.ShowListing, now time.Time, view func(model.ShowListing) T) (past, upcoming []T) {
	past, upcoming = []T{}, []T{}
	for _, l := range listings {
		if l.Upcoming(now) {
			upcoming = append(upcoming, view(l))
		} else {
			past = append(past, view(l))
		}
	}
	return past, upcoming
}

func formatShowTime(t time.Time) string { return t.UTC().Format(showTimeFormat) }
