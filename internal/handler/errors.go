package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/stagebook/internal/apperr"
	"github.com/iliyamo/stagebook/internal/middleware"
	"github.com/iliyamo/stagebook/internal/repository"
)

// envelope is the body of every failed response.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   int    `json:"error"`
}

var defaultMessages = map[int]string{
	http.StatusBadRequest:          "bad request",
	http.StatusNotFound:            "not found",
	http.StatusMethodNotAllowed:    "method not allowed",
	http.StatusUnprocessableEntity: "unprocessable",
	http.StatusTooManyRequests:     "too many requests",
	http.StatusServiceUnavailable:  "service unavailable",
	http.StatusInternalServerError: "internal server error",
}

func messageFor(status int) string {
	if m, ok := defaultMessages[status]; ok {
		return m
	}
	return http.StatusText(status)
}

// classify turns any error a handler or middleware returned into a status
// and a client-safe message.
func classify(err error) (int, string) {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		status := ae.Kind.Status()
		if ae.Message != "" && ae.Kind != apperr.Internal {
			return status, ae.Message
		}
		return status, messageFor(status)
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		if m, ok := he.Message.(string); ok && m != "" && m != http.StatusText(he.Code) && he.Code != http.StatusInternalServerError {
			return he.Code, m
		}
		return he.Code, messageFor(he.Code)
	}

	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, messageFor(http.StatusNotFound)
	case errors.Is(err, repository.ErrInvalidReference), errors.Is(err, repository.ErrConflict):
		return http.StatusUnprocessableEntity, messageFor(http.StatusUnprocessableEntity)
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, messageFor(http.StatusServiceUnavailable)
	}
	return http.StatusInternalServerError, messageFor(http.StatusInternalServerError)
}

// ErrorHandler renders every error as {success:false, message, error}.
// Causes of 5xx responses are logged and never sent to the client.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	status, msg := classify(err)
	if status >= http.StatusInternalServerError {
		middleware.Logger(c).WithError(err).Error("request failed")
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, envelope{Success: false, Message: msg, Error: status})
	}
	if err != nil {
		middleware.Logger(c).WithError(err).Warn("write error response")
	}
}
