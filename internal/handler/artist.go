package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/stagebook/internal/apperr"
	"github.com/iliyamo/stagebook/internal/model"
	"github.com/iliyamo/stagebook/internal/queue"
)

type artistItem struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

type artistDetail struct {
	ID                 uint64       `json:"id"`
	Name               string       `json:"name"`
	Genres             []string     `json:"genres"`
	City               string       `json:"city"`
	State              string       `json:"state"`
	Phone              string       `json:"phone"`
	ImageLink          string       `json:"image_link"`
	FacebookLink       string       `json:"facebook_link"`
	PastShows          []artistShow `json:"past_shows"`
	UpcomingShows      []artistShow `json:"upcoming_shows"`
	PastShowsCount     int          `json:"past_shows_count"`
	UpcomingShowsCount int          `json:"upcoming_shows_count"`
}

// ListArtists handles GET /artists.
func (h *FyyurHandler) ListArtists(c echo.Context) error {
	artists, err := h.Artists.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	out := make([]artistItem, 0, len(artists))
	for _, a := range artists {
		out = append(out, artistItem{ID: a.ID, Name: a.Name})
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "artists": out})
}

// SearchArtists handles POST /artists/search.
func (h *FyyurHandler) SearchArtists(c echo.Context) error {
	var body searchRequest
	if err := bindBody(c, &body); err != nil {
		return err
	}
	ctx := c.Request().Context()
	artists, count, err := h.Artists.SearchByName(ctx, body.SearchTerm)
	if err != nil {
		return err
	}
	counts, err := h.Artists.UpcomingShowCounts(ctx, h.now())
	if err != nil {
		return err
	}
	resp := searchResponse{Count: count, Data: make([]summary, 0, len(artists))}
	for _, a := range artists {
		resp.Data = append(resp.Data, summary{ID: a.ID, Name: a.Name, NumUpcomingShows: counts[a.ID]})
	}
	if count == 0 {
		resp.Message = "Sorry!! Artist " + body.SearchTerm + " could not be found."
	}
	return c.JSON(http.StatusOK, resp)
}

// GetArtist handles GET /artists/:id.
func (h *FyyurHandler) GetArtist(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	a, err := h.Artists.GetByID(ctx, id)
	if err != nil {
		return err
	}
	listings, err := h.Shows.ForArtist(ctx, id)
	if err != nil {
		return err
	}
	past, upcoming := partition(listings, h.now(), func(l model.ShowListing) artistShow {
		return artistShow{
			VenueID:        l.VenueID,
			VenueName:      l.VenueName,
			VenueImageLink: l.VenueImageLink,
			StartTime:      formatShowTime(l.ShowTime),
		}
	})
	return c.JSON(http.StatusOK, artistDetail{
		ID:                 a.ID,
		Name:               a.Name,
		Genres:             model.SplitGenres(a.Genres),
		City:               a.City,
		State:              a.State,
		Phone:              a.Phone,
		ImageLink:          a.ImageLink,
		FacebookLink:       a.FacebookLink,
		PastShows:          past,
		UpcomingShows:      upcoming,
		PastShowsCount:     len(past),
		UpcomingShowsCount: len(upcoming),
	})
}

func applyArtist(a *model.Artist, r profileRequest) {
	a.Name = r.Name
	a.City = r.City
	a.State = r.State
	a.Phone = r.Phone
	a.ImageLink = r.ImageLink
	a.FacebookLink = r.FacebookLink
	a.Genres = model.JoinGenres(r.Genres)
}

// CreateArtist handles POST /artists/create.
func (h *FyyurHandler) CreateArtist(c echo.Context) error {
	var body profileRequest
	if err := bindBody(c, &body); err != nil {
		return err
	}
	body.normalize()
	if body.Name == "" {
		return apperr.Invalidf("name is required")
	}
	a := &model.Artist{}
	applyArtist(a, body)
	if err := h.Artists.Create(c.Request().Context(), a); err != nil {
		return err
	}
	emit(c, h.Events, "fyyur", "artist", queue.ActionCreated, a.ID, a.Name)
	return c.JSON(http.StatusCreated, map[string]any{
		"success": true,
		"id":      a.ID,
		"message": "Artist " + a.Name + " was successfully listed!",
	})
}

// EditArtist handles POST /artists/:id/edit.
func (h *FyyurHandler) EditArtist(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var body profileRequest
	if err := bindBody(c, &body); err != nil {
		return err
	}
	body.normalize()
	if body.Name == "" {
		return apperr.Invalidf("name is required")
	}
	a := &model.Artist{ID: id}
	applyArtist(a, body)
	if err := h.Artists.Update(c.Request().Context(), a); err != nil {
		return err
	}
	emit(c, h.Events, "fyyur", "artist", queue.ActionUpdated, a.ID, a.Name)
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"id":      a.ID,
		"message": "Artist " + a.Name + " was successfully updated!",
	})
}

// DeleteArtist handles DELETE /artists/:id, removing the artist's shows
// first.
func (h *FyyurHandler) DeleteArtist(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Artists.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	emit(c, h.Events, "fyyur", "artist", queue.ActionDeleted, id, "")
	return c.JSON(http.StatusOK, map[string]any{"success": true})
}
