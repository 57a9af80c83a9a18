package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/stagebook/internal/apperr"
	"github.com/iliyamo/stagebook/internal/model"
	"github.com/iliyamo/stagebook/internal/queue"
	"github.com/iliyamo/stagebook/internal/repository"
)

type showItem struct {
	VenueID         uint64 `json:"venue_id"`
	VenueName       string `json:"venue_name"`
	ArtistID        uint64 `json:"artist_id"`
	ArtistName      string `json:"artist_name"`
	ArtistImageLink string `json:"artist_image_link"`
	StartTime       string `json:"start_time"`
}

// ListShows handles GET /shows: every show in time order.
func (h *FyyurHandler) ListShows(c echo.Context) error {
	listings, err := h.Shows.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	out := make([]showItem, 0, len(listings))
	for _, l := range listings {
		out = append(out, showItem{
			VenueID:         l.VenueID,
			VenueName:       l.VenueName,
			ArtistID:        l.ArtistID,
			ArtistName:      l.ArtistName,
			ArtistImageLink: l.ArtistImageLink,
			StartTime:       formatShowTime(l.ShowTime),
		})
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "shows": out})
}

type createShowRequest struct {
	ArtistID  flexInt `json:"artist_id" form:"artist_id"`
	VenueID   flexInt `json:"venue_id" form:"venue_id"`
	StartTime string  `json:"start_time" form:"start_time"`
}

// CreateShow handles POST /shows/create.  An unknown artist or venue is a
// 422 and nothing is written.
func (h *FyyurHandler) CreateShow(c echo.Context) error {
	var body createShowRequest
	if err := bindBody(c, &body); err != nil {
		return err
	}
	at, err := parseShowTime(body.StartTime)
	if err != nil {
		return apperr.Wrap(apperr.InvalidInput, err, "start_time must look like 2006-01-02 15:04:05")
	}
	if body.ArtistID <= 0 || body.VenueID <= 0 {
		return apperr.Unprocessablef("An error occurred. Show could not be listed.")
	}
	s := &model.Show{ArtistID: uint64(body.ArtistID), VenueID: uint64(body.VenueID), ShowTime: at}
	if err := h.Shows.Create(c.Request().Context(), s); err != nil {
		if errors.Is(err, repository.ErrInvalidReference) {
			return apperr.Wrap(apperr.Unprocessable, err, "An error occurred. Show could not be listed.")
		}
		return err
	}
	emit(c, h.Events, "fyyur", "show", queue.ActionCreated, s.ID, "")
	return c.JSON(http.StatusCreated, map[string]any{
		"success": true,
		"id":      s.ID,
		"message": "Show was successfully listed!",
	})
}
