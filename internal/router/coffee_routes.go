package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/stagebook/internal/handler"
)

// RegisterCoffee mounts the drink menu.
func RegisterCoffee(e *echo.Echo, h *handler.CoffeeHandler, m scoped) {
	e.GET("/drinks", h.ListDrinks, m.read...)
	e.GET("/drinks-detail", h.ListDrinkDetails, m.read...)
	e.POST("/drinks", h.CreateDrink, m.write...)
	e.PATCH("/drinks/:id", h.UpdateDrink, m.write...)
	e.DELETE("/drinks/:id", h.DeleteDrink, m.write...)
}
