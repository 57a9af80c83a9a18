package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenres(t *testing.T) {
	assert.Equal(t, "Jazz Reggae Swing", JoinGenres([]string{" Jazz", "Reggae Swing", ""}))
	assert.Equal(t, []string{"Jazz", "Reggae"}, SplitGenres("  Jazz   Reggae "))
	assert.Equal(t, []string{}, SplitGenres(""))
	assert.Equal(t, "", JoinGenres(nil))
}

func TestDrinkShortHidesIngredientNames(t *testing.T) {
	recipe, err := EncodeRecipe([]Ingredient{{Name: "espresso", Color: "brown", Parts: 1}, {Name: "milk", Color: "white", Parts: 3}})
	require.NoError(t, err)
	d := &Drink{ID: 4, Title: "Latte", Recipe: recipe}

	short, err := d.Short()
	require.NoError(t, err)
	assert.Equal(t, []ShortIngredient{{Color: "brown", Parts: 1}, {Color: "white", Parts: 3}}, short.Recipe)

	long, err := d.Long()
	require.NoError(t, err)
	assert.Equal(t, "milk", long.Recipe[1].Name)
}

func TestDrinkEmptyAndBrokenRecipes(t *testing.T) {
	recipe, err := EncodeRecipe(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", recipe)

	long, err := (&Drink{Recipe: recipe}).Long()
	require.NoError(t, err)
	assert.NotNil(t, long.Recipe)

	_, err = (&Drink{ID: 9, Recipe: "{oops"}).Short()
	assert.Error(t, err)
}

func TestCategoryMap(t *testing.T) {
	m := CategoryMap([]Category{{ID: 1, Type: "Science"}, {ID: 5, Type: "Entertainment"}})
	assert.Equal(t, map[uint64]string{1: "Science", 5: "Entertainment"}, m)
}

func TestShowListingUpcoming(t *testing.T) {
	now := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)
	assert.True(t, ShowListing{ShowTime: now}.Upcoming(now))
	assert.False(t, ShowListing{ShowTime: now.Add(-time.Second)}.Upcoming(now))
}
