package model

import (
	"encoding/json"
	"fmt"
)

// Drink is a menu item.  Recipe holds the JSON encoding of []Ingredient.
type Drink struct {
	ID     uint64 `db:"id"`
	Title  string `db:"title"`
	Recipe string `db:"recipe"`
}

func (*Drink) TableName() string { return "drinks" }
func (*Drink) Columns() []string { return []string{"title", "recipe"} }
func (d *Drink) Values() []any   { return []any{d.Title, d.Recipe} }
func (d *Drink) PK() uint64      { return d.ID }
func (d *Drink) SetPK(id uint64) { d.ID = id }

// Ingredient is one layer of a drink.  Parts is the relative size of the
// layer.
type Ingredient struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Parts int    `json:"parts"`
}

// ShortIngredient is the public view of an ingredient: its name is hidden.
type ShortIngredient struct {
	Color string `json:"color"`
	Parts int    `json:"parts"`
}

// DrinkShort is the representation served to anonymous menu readers.
type DrinkShort struct {
	ID     uint64            `json:"id"`
	Title  string            `json:"title"`
	Recipe []ShortIngredient `json:"recipe"`
}

// DrinkLong includes full ingredient details.
type DrinkLong struct {
	ID     uint64       `json:"id"`
	Title  string       `json:"title"`
	Recipe []Ingredient `json:"recipe"`
}

// EncodeRecipe serialises ingredients for storage.  A nil slice is stored as
// an empty array.
func EncodeRecipe(ings []Ingredient) (string, error) {
	if ings == nil {
		ings = []Ingredient{}
	}
	b, err := json.Marshal(ings)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Ingredients decodes the stored recipe.
func (d *Drink) Ingredients() ([]Ingredient, error) {
	if d.Recipe == "" {
		return []Ingredient{}, nil
	}
	var ings []Ingredient
	if err := json.Unmarshal([]byte(d.Recipe), &ings); err != nil {
		return nil, fmt.Errorf("drink %d: decode recipe: %w", d.ID, err)
	}
	if ings == nil {
		ings = []Ingredient{}
	}
	return ings, nil
}

func (d *Drink) Short() (DrinkShort, error) {
	ings, err := d.Ingredients()
	if err != nil {
		return DrinkShort{}, err
	}
	out := DrinkShort{ID: d.ID, Title: d.Title, Recipe: make([]ShortIngredient, 0, len(ings))}
	for _, i := range ings {
		out.Recipe = append(out.Recipe, ShortIngredient{Color: i.Color, Parts: i.Parts})
	}
	return out, nil
}

func (d *Drink) Long() (DrinkLong, error) {
	ings, err := d.Ingredients()
	if err != nil {
		return DrinkLong{}, err
	}
	return DrinkLong{ID: d.ID, Title: d.Title, Recipe: ings}, nil
}
