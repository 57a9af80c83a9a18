package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/stagebook/internal/config"
	"github.com/iliyamo/stagebook/internal/queue"
	"github.com/iliyamo/stagebook/internal/testutil"
)

type eventLog struct {
	mu     sync.Mutex
	events []queue.CatalogChangedEvent
}

func (l *eventLog) PublishCatalogChanged(_ context.Context, ev queue.CatalogChangedEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, ev)
	return nil
}

func (l *eventLog) actions() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, 0, len(l.events))
	for _, ev := range l.events {
		out = append(out, ev.Entity+":"+ev.Action)
	}
	return out
}

func newServer(t *testing.T) (*echo.Echo, *eventLog) {
	t.Helper()
	events := &eventLog{}
	e := New(Deps{
		Config: config.Config{
			Apps:             []string{"fyyur", "trivia", "coffee"},
			QuestionsPerPage: 10,
			QuizPick:         "first",
			RequestTimeout:   5 * time.Second,
		},
		DB:     testutil.NewDB(t),
		Events: events,
	})
	return e, events
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func doForm(e *echo.Echo, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func assertEnvelope(t *testing.T, rec *httptest.ResponseRecorder, status int) map[string]any {
	t.Helper()
	require.Equal(t, status, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, float64(status), body["error"])
	assert.NotEmpty(t, body["message"])
	return body
}

func TestOpsEndpoints(t *testing.T) {
	e, _ := newServer(t)

	rec := doJSON(e, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	doJSON(e, http.MethodGet, "/categories", "")
	rec = doJSON(e, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `stagebook_http_requests_total{method="GET",route="/categories",status="200"} 1`)
}

func TestFrameworkErrorsUseEnvelope(t *testing.T) {
	e, _ := newServer(t)

	body := assertEnvelope(t, doJSON(e, http.MethodGet, "/nowhere", ""), http.StatusNotFound)
	assert.Equal(t, "not found", body["message"])

	body = assertEnvelope(t, doJSON(e, http.MethodPut, "/categories", ""), http.StatusMethodNotAllowed)
	assert.Equal(t, "method not allowed", body["message"])

	assertEnvelope(t, doJSON(e, http.MethodDelete, "/questions/abc", ""), http.StatusNotFound)
}

func TestOnlyConfiguredAppsAreMounted(t *testing.T) {
	e := New(Deps{Config: config.Config{Apps: []string{"coffee"}}, DB: testutil.NewDB(t)})

	assert.Equal(t, http.StatusOK, doJSON(e, http.MethodGet, "/drinks", "").Code)
	assert.Equal(t, http.StatusNotFound, doJSON(e, http.MethodGet, "/categories", "").Code)
	assert.Equal(t, http.StatusNotFound, doJSON(e, http.MethodGet, "/venues", "").Code)
}
