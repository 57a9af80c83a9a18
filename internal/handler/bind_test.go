package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/stagebook/internal/apperr"
)

func TestFlexInt(t *testing.T) {
	var v struct {
		A flexInt `json:"a"`
		B flexInt `json:"b"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":7,"b":" 12 "}`), &v))
	assert.Equal(t, flexInt(7), v.A)
	assert.Equal(t, flexInt(12), v.B)

	assert.Error(t, json.Unmarshal([]byte(`{"a":"seven"}`), &v))
	assert.Error(t, json.Unmarshal([]byte(`{"a":1.5}`), &v))
}

func TestFlexIDsDropsNonPositive(t *testing.T) {
	var ids flexIDs
	require.NoError(t, json.Unmarshal([]byte(`[3,"5",0,-1]`), &ids))
	assert.Equal(t, []uint64{3, 5}, ids.uint64s())
	assert.Equal(t, []uint64{}, flexIDs{}.uint64s())
}

func TestGenreList(t *testing.T) {
	var g genreList
	require.NoError(t, json.Unmarshal([]byte(`"Jazz  Swing"`), &g))
	assert.Equal(t, genreList{"Jazz", "Swing"}, g)

	require.NoError(t, json.Unmarshal([]byte(`["Folk","Blues"]`), &g))
	assert.Equal(t, genreList{"Folk", "Blues"}, g)

	require.NoError(t, g.UnmarshalParams([]string{"Rock", "Hip Hop"}))
	assert.Equal(t, genreList{"Rock", "Hip", "Hop"}, g)
}

func TestRecipeInput(t *testing.T) {
	var r recipeInput
	require.NoError(t, json.Unmarshal([]byte(`{"name":"water","color":"blue","parts":1}`), &r))
	require.Len(t, r, 1)
	assert.Equal(t, "water", r[0].Name)

	require.NoError(t, json.Unmarshal([]byte(`[]`), &r))
	assert.Empty(t, r)
}

func TestParseShowTime(t *testing.T) {
	want := time.Date(2035, 4, 1, 20, 0, 0, 0, time.UTC)
	for _, in := range []string{
		"2035-04-01 20:00:00",
		"2035-04-01T20:00:00",
		"2035-04-01 20:00",
		"2035-04-01T22:00:00+02:00",
		" 2035-04-01T20:00:00Z ",
	} {
		got, err := parseShowTime(in)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), in)
		assert.Equal(t, time.UTC, got.Location())
	}

	_, err := parseShowTime("01/04/2035")
	assert.Error(t, err)
	assert.Equal(t, "2035-04-01 20:00:00", formatShowTime(want))
}

func TestParseID(t *testing.T) {
	e := echo.New()
	for in, ok := range map[string]bool{"12": true, "0": false, "-3": false, "abc": false, "": false} {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		c.SetParamNames("id")
		c.SetParamValues(in)
		id, err := parseID(c, "id")
		if ok {
			require.NoError(t, err)
			assert.Equal(t, uint64(12), id)
			continue
		}
		var ae *apperr.Error
		require.ErrorAs(t, err, &ae, in)
		assert.Equal(t, apperr.NotFound, ae.Kind, in)
	}
}
