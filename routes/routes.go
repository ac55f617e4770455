package routes

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gncc/cricket-dashboard/access"
	_ "github.com/gncc/cricket-dashboard/docs"
	"github.com/gncc/cricket-dashboard/handlers"
	"github.com/gncc/cricket-dashboard/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Handlers struct {
	Auth      *handlers.AuthHandler
	Pages     *handlers.PageHandler
	Matches   *handlers.MatchHandler
	Players   *handlers.PlayerHandler
	WebSocket *handlers.WebSocketHandler
}

func SetupRoutes(router *chi.Mux, h Handlers, sessions middleware.SessionParser, allowedOrigins []string, logger *slog.Logger) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(middleware.Authenticate(sessions, logger))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	router.Get("/", h.Pages.Landing)
	router.Route("/auth", func(r chi.Router) {
		r.Get("/", h.Pages.Auth)
		r.Post("/signup", h.Pages.SignUp)
		r.Post("/signin", h.Pages.SignIn)
		r.Post("/signout", h.Pages.SignOut)
		r.Get("/confirm", h.Auth.ConfirmEmail)
	})

	router.Route("/dashboard", func(r chi.Router) {
		r.Get("/", h.Pages.Dashboard)
		r.Post("/matches", h.Pages.AddMatch)
		r.Post("/matches/{matchID}/score", h.Pages.UpdateScore)
		r.Post("/players", h.Pages.AddPlayer)
		r.Post("/players/{playerID}/delete", h.Pages.DeletePlayer)
	})

	router.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   allowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
		r.Use(chiMiddleware.Timeout(30 * time.Second))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", h.Auth.Register)
			r.Post("/signin", h.Auth.Login)
			r.Post("/signout", h.Auth.Logout)
			r.With(middleware.RequireSession).Get("/session", h.Auth.Session)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireCapability(access.ActionViewDashboard))

			r.Get("/matches", h.Matches.ListMatches)
			r.Get("/players", h.Players.ListPlayers)
		})

		r.With(middleware.RequireCapability(access.ActionAddMatch)).Post("/matches", h.Matches.CreateMatch)
		r.With(middleware.RequireCapability(access.ActionUpdateScore)).Put("/matches/{matchID}/score", h.Matches.UpdateScore)
		r.With(middleware.RequireCapability(access.ActionAddPlayer)).Post("/players", h.Players.CreatePlayer)
		r.With(middleware.RequireCapability(access.ActionDeletePlayer)).Delete("/players/{playerID}", h.Players.DeletePlayer)
	})

	router.Get("/ws/matches", h.WebSocket.ServeMatches)
}
