package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/stagebook/internal/apperr"
	"github.com/iliyamo/stagebook/internal/model"
)

// parseID reads a numeric path parameter.  Anything that is not a positive
// integer cannot name a row, so it is reported as not found.
func parseID(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.New(apperr.NotFound, "")
	}
	return id, nil
}

// bindBody decodes the request body (JSON or form) into dst.  Malformed
// bodies are a 400.
func bindBody(c echo.Context, dst any) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, dst); err != nil {
		return apperr.Wrap(apperr.InvalidInput, err, "")
	}
	return nil
}

// flexInt is an integer that also accepts a numeric JSON string or form
// value, as browsers and older clients send both.
type flexInt int64

func (f *flexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		return f.UnmarshalParam(s)
	}
	var n int64
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexInt(n)
	return nil
}

// UnmarshalParam implements echo.BindUnmarshaler for form values.
func (f *flexInt) UnmarshalParam(s string) error {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return err
	}
	*f = flexInt(n)
	return nil
}

// flexIDs is a list of ids whose elements may be numbers or numeric strings.
type flexIDs []flexInt

func (ids flexIDs) uint64s() []uint64 {
	out := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if id > 0 {
			out = append(out, uint64(id))
		}
	}
	return out
}

// genreList accepts genres as a JSON list, a JSON string or repeated form
// values.
type genreList []string

func (g *genreList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*g = model.SplitGenres(s)
		return nil
	}
	var list []string
	if err := json.Unmarshal(b, &list); err != nil {
		return err
	}
	*g = list
	return nil
}

// UnmarshalParams implements echo.BindMultipleUnmarshaler.
func (g *genreList) UnmarshalParams(params []string) error {
	var out []string
	for _, p := range params {
		out = append(out, model.SplitGenres(p)...)
	}
	*g = out
	return nil
}

// recipeInput accepts a recipe as a list of ingredients or a single one.
type recipeInput []model.Ingredient

func (r *recipeInput) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '{' {
		var one model.Ingredient
		if err := json.Unmarshal(b, &one); err != nil {
			return err
		}
		*r = recipeInput{one}
		return nil
	}
	var list []model.Ingredient
	if err := json.Unmarshal(b, &list); err != nil {
		return err
	}
	*r = list
	return nil
}

// showTimeFormat is how show times are written in responses.
const showTimeFormat = "2006-01-02 15:04:05"

var showTimeLayouts = []string{time.RFC3339, showTimeFormat, "2006-01-02T15:04:05", "2006-01-02 15:04"}

// parseShowTime accepts RFC 3339 or a naive "YYYY-MM-DD HH:MM[:SS]" time,
// which is taken as UTC.
func parseShowTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range showTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errors.New("unrecognised time format")
}
