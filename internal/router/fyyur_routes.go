package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/stagebook/internal/handler"
)

// RegisterFyyur mounts venues, artists and shows.  Edits are POSTs to
// /:id/edit, matching the form-based clients.
func RegisterFyyur(e *echo.Echo, h *handler.FyyurHandler, m scoped) {
	// ---- Venues ----
	e.GET("/venues", h.ListVenues, m.read...)
	e.GET("/venues/:id", h.GetVenue, m.read...)
	e.POST("/venues/search", h.SearchVenues, m.query...)
	e.POST("/venues/create", h.CreateVenue, m.write...)
	e.POST("/venues/:id/edit", h.EditVenue, m.write...)
	e.DELETE("/venues/:id", h.DeleteVenue, m.write...)

	// ---- Artists ----
	e.GET("/artists", h.ListArtists, m.read...)
	e.GET("/artists/:id", h.GetArtist, m.read...)
	e.POST("/artists/search", h.SearchArtists, m.query...)
	e.POST("/artists/create", h.CreateArtist, m.write...)
	e.POST("/artists/:id/edit", h.EditArtist, m.write...)
	e.DELETE("/artists/:id", h.DeleteArtist, m.write...)

	// ---- Shows ----
	e.GET("/shows", h.ListShows, m.read...)
	e.POST("/shows/create", h.CreateShow, m.write...)
}
