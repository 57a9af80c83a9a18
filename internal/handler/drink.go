package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/stagebook/internal/apperr"
	"github.com/iliyamo/stagebook/internal/model"
	"github.com/iliyamo/stagebook/internal/queue"
	"github.com/iliyamo/stagebook/internal/repository"
)

// CoffeeHandler serves the drink menu.
type CoffeeHandler struct {
	Drinks *repository.DrinkRepo
	Events queue.Publisher
}

// NewCoffeeHandler panics if the repository is missing.
func NewCoffeeHandler(drinks *repository.DrinkRepo, events queue.Publisher) *CoffeeHandler {
	if drinks == nil {
		panic("nil repository passed to NewCoffeeHandler")
	}
	if events == nil {
		events = queue.NopPublisher{}
	}
	return &CoffeeHandler{Drinks: drinks, Events: events}
}

// ListDrinks handles GET /drinks with the short recipe form.
func (h *CoffeeHandler) ListDrinks(c echo.Context) error {
	drinks, err := h.Drinks.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	out := make([]model.DrinkShort, 0, len(drinks))
	for i := range drinks {
		s, err := drinks[i].Short()
		if err != nil {
			return err
		}
		out = append(out, s)
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "drinks": out})
}

// ListDrinkDetails handles GET /drinks-detail with full recipes.
func (h *CoffeeHandler) ListDrinkDetails(c echo.Context) error {
	drinks, err := h.Drinks.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	out := make([]model.DrinkLong, 0, len(drinks))
	for i := range drinks {
		l, err := drinks[i].Long()
		if err != nil {
			return err
		}
		out = append(out, l)
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "drinks": out})
}

type drinkRequest struct {
	Title  *string      `json:"title"`
	Recipe *recipeInput `json:"recipe"`
}

func longResponse(c echo.Context, status int, d *model.Drink) error {
	l, err := d.Long()
	if err != nil {
		return err
	}
	return c.JSON(status, map[string]any{"success": true, "drinks": []model.DrinkLong{l}})
}

// duplicateTitle rewrites a unique-title violation into a readable 422.
func duplicateTitle(err error, title string) error {
	if errors.Is(err, repository.ErrConflict) {
		return apperr.Wrap(apperr.Conflict, err, "a drink titled "+title+" already exists")
	}
	return err
}

// CreateDrink handles POST /drinks.
func (h *CoffeeHandler) CreateDrink(c echo.Context) error {
	var body drinkRequest
	if err := bindBody(c, &body); err != nil {
		return err
	}
	if body.Title == nil || strings.TrimSpace(*body.Title) == "" {
		return apperr.Invalidf("title is required")
	}
	var ings []model.Ingredient
	if body.Recipe != nil {
		ings = *body.Recipe
	}
	recipe, err := model.EncodeRecipe(ings)
	if err != nil {
		return apperr.Wrap(apperr.InvalidInput, err, "")
	}
	d := &model.Drink{Title: strings.TrimSpace(*body.Title), Recipe: recipe}
	if err := h.Drinks.Create(c.Request().Context(), d); err != nil {
		return duplicateTitle(err, d.Title)
	}
	emit(c, h.Events, "coffee", "drink", queue.ActionCreated, d.ID, d.Title)
	return longResponse(c, http.StatusOK, d)
}

// UpdateDrink handles PATCH /drinks/:id.  Absent fields are left alone.
func (h *CoffeeHandler) UpdateDrink(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var body drinkRequest
	if err := bindBody(c, &body); err != nil {
		return err
	}
	var title string
	if body.Title != nil {
		title = strings.TrimSpace(*body.Title)
		if title == "" {
			return apperr.Invalidf("title cannot be empty")
		}
	}
	d, err := h.Drinks.Patch(c.Request().Context(), id, func(d *model.Drink) error {
		if title != "" {
			d.Title = title
		}
		if body.Recipe != nil {
			recipe, err := model.EncodeRecipe(*body.Recipe)
			if err != nil {
				return apperr.Wrap(apperr.InvalidInput, err, "")
			}
			d.Recipe = recipe
		}
		return nil
	})
	if err != nil {
		return duplicateTitle(err, title)
	}
	emit(c, h.Events, "coffee", "drink", queue.ActionUpdated, d.ID, d.Title)
	return longResponse(c, http.StatusOK, d)
}

// DeleteDrink handles DELETE /drinks/:id.
func (h *CoffeeHandler) DeleteDrink(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Drinks.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	emit(c, h.Events, "coffee", "drink", queue.ActionDeleted, id, "")
	return c.JSON(http.StatusOK, map[string]any{"success": true, "delete": id})
}
