// Package router builds the echo instance: global middleware, ops
// endpoints and the routes of every mounted backend.
package router

import (
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/stagebook/internal/config"
	"github.com/iliyamo/stagebook/internal/handler"
	"github.com/iliyamo/stagebook/internal/middleware"
	"github.com/iliyamo/stagebook/internal/queue"
	"github.com/iliyamo/stagebook/internal/repository"
	"github.com/iliyamo/stagebook/internal/service"
)

// Deps is everything the routes need.  Redis and Events may be nil: caching
// and rate limiting then pass through and events are dropped.
type Deps struct {
	Config    config.Config
	DB        *sqlx.DB
	Redis     *redis.Client
	Cache     config.CacheConfig
	RateLimit config.RateLimitConfig
	Events    queue.Publisher
	Registry  *prometheus.Registry
}

// scoped bundles the per-backend middleware chains.
type scoped struct {
	read  []echo.MiddlewareFunc // cached GETs
	write []echo.MiddlewareFunc // rate limited, and invalidates the cache on success
	query []echo.MiddlewareFunc // rate limited POSTs that change nothing
}

func (d Deps) scope(name string) scoped {
	limit := middleware.NewTokenBucket(d.RateLimit, d.Redis)
	return scoped{
		read:  []echo.MiddlewareFunc{middleware.NewRedisCache(d.Cache, d.Redis, name)},
		write: []echo.MiddlewareFunc{limit, middleware.NewCacheInvalidator(d.Cache, d.Redis, name)},
		query: []echo.MiddlewareFunc{limit},
	}
}

// New builds the HTTP server for the backends listed in d.Config.Apps.
func New(d Deps) *echo.Echo {
	if d.Registry == nil {
		d.Registry = prometheus.NewRegistry()
	}
	if d.Events == nil {
		d.Events = queue.NopPublisher{}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handler.ErrorHandler

	metrics := middleware.NewMetrics(d.Registry)
	e.Use(middleware.RequestLog())
	e.Use(metrics.Middleware())
	e.Use(echomw.Recover())
	if d.Config.RequestTimeout > 0 {
		e.Use(echomw.ContextTimeout(d.Config.RequestTimeout))
	}

	var db handler.Pinger
	if d.DB != nil {
		db = d.DB
	}
	e.GET("/healthz", handler.Health(db))
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{})))

	if d.Config.HasApp("trivia") {
		questions := repository.NewQuestionRepo(d.DB)
		picker := service.NewQuizPicker(questions, service.PickStrategy(d.Config.QuizPick))
		h := handler.NewTriviaHandler(questions, repository.NewCategoryRepo(d.DB), picker, d.Config.QuestionsPerPage, d.Events)
		RegisterTrivia(e, h, d.scope("trivia"))
	}
	if d.Config.HasApp("fyyur") {
		h := handler.NewFyyurHandler(
			repository.NewVenueRepo(d.DB),
			repository.NewArtistRepo(d.DB),
			repository.NewShowRepo(d.DB),
			d.Events,
		)
		RegisterFyyur(e, h, d.scope("fyyur"))
	}
	if d.Config.HasApp("coffee") {
		RegisterCoffee(e, handler.NewCoffeeHandler(repository.NewDrinkRepo(d.DB), d.Events), d.scope("coffee"))
	}
	return e
}
