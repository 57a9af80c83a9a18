package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/stagebook/internal/middleware"
	"github.com/iliyamo/stagebook/internal/queue"
)

// emit announces a committed change.  Delivery problems are logged only;
// the write has already succeeded.
func emit(c echo.Context, pub queue.Publisher, app, entity, action string, id uint64, name string) {
	if pub == nil {
		return
	}
	ev := queue.NewCatalogChangedEvent(app, entity, action, id, name)
	if err := pub.PublishCatalogChanged(c.Request().Context(), ev); err != nil {
		middleware.Logger(c).WithError(err).WithField("event_id", ev.ID).Warn("catalog event dropped")
	}
}
