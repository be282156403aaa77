package router

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	appLogger "github.com/FACorreiaa/go-trip-itinerary/app/logger"
	appMiddleware "github.com/FACorreiaa/go-trip-itinerary/app/middleware"
	_ "github.com/FACorreiaa/go-trip-itinerary/docs"
	"github.com/FACorreiaa/go-trip-itinerary/internal/api/itinerary"
	"github.com/FACorreiaa/go-trip-itinerary/internal/api/spots"
)

// Config contains dependencies needed for the router setup
type Config struct {
	SpotsHandler     *spots.Handler
	ItineraryHandler *itinerary.HandlerImpl
	Logger           *slog.Logger

	RequestTimeout time.Duration
	SessionCookie  string
	SessionTTL     time.Duration
	// PlanRateLimit caps plan generations per client IP per minute; zero disables it.
	PlanRateLimit  int
	AllowedOrigins []string
}

// SetupRouter builds the full HTTP handler: server-wide middleware, the
// session cookie, and the versioned API.
func SetupRouter(cfg *Config) chi.Router {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	cookie := cfg.SessionCookie
	if cookie == "" {
		cookie = "itinerary_session"
	}
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:5173", "http://localhost:3000"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(appLogger.StructuredLogger(cfg.Logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	r.Use(middleware.Timeout(timeout))
	r.Use(middleware.Compress(5, "application/json"))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", appMiddleware.SessionHeader},
		ExposedHeaders:   []string{appMiddleware.SessionHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("pong"))
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/spots", cfg.SpotsHandler.SearchSpots)

		r.Route("/plans", func(r chi.Router) {
			r.Use(appMiddleware.Session(cookie, cfg.SessionTTL))

			r.Group(func(r chi.Router) {
				if cfg.PlanRateLimit > 0 {
					r.Use(httprate.LimitByIP(cfg.PlanRateLimit, time.Minute))
				}
				r.Post("/", cfg.ItineraryHandler.CreatePlan)
			})

			r.Get("/current", cfg.ItineraryHandler.GetCurrentPlan)
			r.Delete("/current", cfg.ItineraryHandler.ClearPlan)
			r.Get("/current/map", cfg.ItineraryHandler.GetPlanMap)
		})
	})

	return r
}
