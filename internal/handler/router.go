package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"wolves-hub/internal/container"
	"wolves-hub/internal/middleware"
	"wolves-hub/pkg/errors"
)

// NewRouter configures the HTTP routes of the API
func NewRouter(c *container.Container) *chi.Mux {
	cfg := c.GetConfig()
	log := c.GetLogger()

	r := chi.NewRouter()

	r.Use(middleware.CORS(middleware.NewCORSConfig(cfg.AllowedOrigins), log))
	r.Use(middleware.RequestID(log))
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Compress(5))
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	healthHandler := NewHealthHandler(c)
	authHandler := NewAuthHandler(c.GetAuthService(), log.Named("auth"))
	playerHandler := NewPlayerHandler(c.GetPlayerService(), log.Named("players"))
	attendanceHandler := NewAttendanceHandler(c.GetAttendanceService(), log.Named("attendance"))
	reportHandler := NewReportHandler(c.GetDashboardService(), c.GetHistoryService(), log.Named("reports"))
	drawHandler := NewDrawHandler(c.GetDrawService(), log.Named("draws"))

	r.Get("/", healthHandler.Root)
	r.Get("/health", healthHandler.Check)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", authHandler.Login)

		// Protected routes (require authentication)
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(c.GetAuthService(), log))

			r.Get("/auth/me", authHandler.Me)

			r.Route("/players", func(r chi.Router) {
				r.Get("/", playerHandler.List)
				r.Post("/", playerHandler.Create)
				r.Get("/{id}", playerHandler.Get)
				r.Put("/{id}", playerHandler.Update)
				r.Delete("/{id}", playerHandler.Delete)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/", attendanceHandler.Sheet)
				r.Put("/{date}", attendanceHandler.Save)
			})

			r.Get("/dashboard", reportHandler.Dashboard)
			r.Get("/history", reportHandler.History)
			r.Get("/history/entries", reportHandler.Entries)

			r.Route("/team-draws", func(r chi.Router) {
				r.Get("/", drawHandler.List)
				r.Post("/", drawHandler.Create)
				r.Get("/{id}", drawHandler.Get)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		respondError(w, req, errors.NewNotFoundError("Endpoint not found"), log)
	})

	log.Info("Router configured successfully")
	return r
}
