package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/stagebook/internal/apperr"
	"github.com/iliyamo/stagebook/internal/model"
	"github.com/iliyamo/stagebook/internal/queue"
)

type areaView struct {
	City   string    `json:"city"`
	State  string    `json:"state"`
	Venues []summary `json:"venues"`
}

type venueDetail struct {
	ID                 uint64      `json:"id"`
	Name               string      `json:"name"`
	Genres             []string    `json:"genres"`
	Address            string      `json:"address"`
	City               string      `json:"city"`
	State              string      `json:"state"`
	Phone              string      `json:"phone"`
	ImageLink          string      `json:"image_link"`
	FacebookLink       string      `json:"facebook_link"`
	PastShows          []venueShow `json:"past_shows"`
	UpcomingShows      []venueShow `json:"upcoming_shows"`
	PastShowsCount     int         `json:"past_shows_count"`
	UpcomingShowsCount int         `json:"upcoming_shows_count"`
}

// ListVenues handles GET /venues: venues grouped by city and state.
func (h *FyyurHandler) ListVenues(c echo.Context) error {
	ctx := c.Request().Context()
	areas, err := h.Venues.ListByArea(ctx)
	if err != nil {
		return err
	}
	counts, err := h.Venues.UpcomingShowCounts(ctx, h.now())
	if err != nil {
		return err
	}
	out := make([]areaView, 0, len(areas))
	for _, a := range areas {
		av := areaView{City: a.City, State: a.State, Venues: make([]summary, 0, len(a.Venues))}
		for _, v := range a.Venues {
			av.Venues = append(av.Venues, summary{ID: v.ID, Name: v.Name, NumUpcomingShows: counts[v.ID]})
		}
		out = append(out, av)
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "areas": out})
}

// SearchVenues handles POST /venues/search.
func (h *FyyurHandler) SearchVenues(c echo.Context) error {
	var body searchRequest
	if err := bindBody(c, &body); err != nil {
		return err
	}
	ctx := c.Request().Context()
	venues, count, err := h.Venues.SearchByName(ctx, body.SearchTerm)
	if err != nil {
		return err
	}
	counts, err := h.Venues.UpcomingShowCounts(ctx, h.now())
	if err != nil {
		return err
	}
	resp := searchResponse{Count: count, Data: make([]summary, 0, len(venues))}
	for _, v := range venues {
		resp.Data = append(resp.Data, summary{ID: v.ID, Name: v.Name, NumUpcomingShows: counts[v.ID]})
	}
	if count == 0 {
		resp.Message = "Sorry!! Venue " + body.SearchTerm + " could not be found."
	}
	return c.JSON(http.StatusOK, resp)
}

// GetVenue handles GET /venues/:id.
func (h *FyyurHandler) GetVenue(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	v, err := h.Venues.GetByID(ctx, id)
	if err != nil {
		return err
	}
	listings, err := h.Shows.ForVenue(ctx, id)
	if err != nil {
		return err
	}
	past, upcoming := partition(listings, h.now(), func(l model.ShowListing) venueShow {
		return venueShow{
			ArtistID:        l.ArtistID,
			ArtistName:      l.ArtistName,
			ArtistImageLink: l.ArtistImageLink,
			StartTime:       formatShowTime(l.ShowTime),
		}
	})
	return c.JSON(http.StatusOK, venueDetail{
		ID:                 v.ID,
		Name:               v.Name,
		Genres:             model.SplitGenres(v.Genres),
		Address:            v.Address,
		City:               v.City,
		State:              v.State,
		Phone:              v.Phone,
		ImageLink:          v.ImageLink,
		FacebookLink:       v.FacebookLink,
		PastShows:          past,
		UpcomingShows:      upcoming,
		PastShowsCount:     len(past),
		UpcomingShowsCount: len(upcoming),
	})
}

func applyVenue(v *model.Venue, r profileRequest) {
	v.Name = r.Name
	v.City = r.City
	v.State = r.State
	v.Address = r.Address
	v.Phone = r.Phone
	v.ImageLink = r.ImageLink
	v.FacebookLink = r.FacebookLink
	v.Genres = model.JoinGenres(r.Genres)
}

// CreateVenue handles POST /venues/create.
func (h *FyyurHandler) CreateVenue(c echo.Context) error {
	var body profileRequest
	if err := bindBody(c, &body); err != nil {
		return err
	}
	body.normalize()
	if body.Name == "" {
		return apperr.Invalidf("name is required")
	}
	v := &model.Venue{}
	applyVenue(v, body)
	if err := h.Venues.Create(c.Request().Context(), v); err != nil {
		return err
	}
	emit(c, h.Events, "fyyur", "venue", queue.ActionCreated, v.ID, v.Name)
	return c.JSON(http.StatusCreated, map[string]any{
		"success": true,
		"id":      v.ID,
		"message": "Venue " + v.Name + " was successfully listed!",
	})
}

// EditVenue handles POST /venues/:id/edit.  Every field is replaced.
func (h *FyyurHandler) EditVenue(c echo.Context) error {
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
	v := &model.Venue{ID: id}
	applyVenue(v, body)
	if err := h.Venues.Update(c.Request().Context(), v); err != nil {
		return err
	}
	emit(c, h.Events, "fyyur", "venue", queue.ActionUpdated, v.ID, v.Name)
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"id":      v.ID,
		"message": "Venue " + v.Name + " was successfully updated!",
	})
}

// DeleteVenue handles DELETE /venues/:id.  The venue's shows go with it.
func (h *FyyurHandler) DeleteVenue(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Venues.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	emit(c, h.Events, "fyyur", "venue", queue.ActionDeleted, id, "")
	return c.JSON(http.StatusOK, map[string]any{"success": true})
}
