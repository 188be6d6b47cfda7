package routes

import (
	"net/http"

	"github.com/cprater/football-pickem-backend-sub000/handlers"
	"github.com/cprater/football-pickem-backend-sub000/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Handlers bundles the HTTP handlers used to wire the router.
type Handlers struct {
	Auth      *handlers.AuthHandler
	User      *handlers.UserHandler
	Team      *handlers.TeamHandler
	League    *handlers.LeagueHandler
	Game      *handlers.GameHandler
	Pick      *handlers.PickHandler
	Standings *handlers.StandingsHandler
	Invite    *handlers.InviteHandler
	Dashboard *handlers.DashboardHandler
	WebSocket *handlers.WebSocketHandler
}

func SetupRoutes(router *chi.Mux, h Handlers, jwtSecret []byte, corsOrigins []string) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate(jwtSecret)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	router.Post("/auth/register", h.Auth.Register)
	router.Post("/auth/login", h.Auth.Login)

	router.Route("/users", func(r chi.Router) {
		r.Use(authenticate)

		r.Get("/me", h.User.GetCurrent)
		r.Get("/{userID}", h.User.GetByID)
		r.Put("/{userID}", h.User.UpdateProfile)
		r.Post("/{userID}/avatar", h.User.UploadAvatar)
		r.Delete("/{userID}", h.User.Deactivate)
	})

	router.Route("/teams", func(r chi.Router) {
		r.Get("/", h.Team.List)
		r.Get("/{teamID}", h.Team.GetByID)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(middleware.RequireAdmin)

			r.Post("/{teamID}/logo", h.Team.UploadLogo)
		})
	})

	router.Route("/games", func(r chi.Router) {
		r.Get("/", h.Game.List)
		r.Get("/{gameID}", h.Game.GetByID)

		// Game administration is restricted to site admins. Finalizing a
		// game here is what drives pick evaluation.
		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(middleware.RequireAdmin)

			r.Post("/", h.Game.Create)
			r.Put("/{gameID}", h.Game.Update)
		})
	})

	router.Route("/leagues", func(r chi.Router) {
		r.Get("/", h.League.List)
		r.Get("/{leagueID}", h.League.GetByID)
		r.Get("/{leagueID}/standings", h.Standings.Get)
		r.Get("/{leagueID}/members", h.League.ListMembers)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)

			r.Post("/", h.League.Create)
			r.Put("/{leagueID}", h.League.Update)
			r.Delete("/{leagueID}", h.League.Deactivate)
			r.Post("/{leagueID}/join", h.League.Join)
			r.Post("/{leagueID}/leave", h.League.Leave)
			r.Delete("/{leagueID}/members/{memberID}", h.League.RemoveMember)
			r.Post("/{leagueID}/invites", h.Invite.Create)
			r.Post("/{leagueID}/picks", h.Pick.Submit)
			r.Get("/{leagueID}/picks", h.Pick.ListMine)
		})
	})

	router.Route("/picks", func(r chi.Router) {
		r.Use(authenticate)

		r.Put("/{pickID}", h.Pick.Update)
		r.Delete("/{pickID}", h.Pick.Delete)
	})

	router.Route("/invites", func(r chi.Router) {
		r.Use(authenticate)

		r.Post("/{token}/accept", h.Invite.Accept)
	})

	router.Get("/ws/leagues/{leagueID}", h.WebSocket.Subscribe)

	router.Route("/dashboard", func(r chi.Router) {
		r.Use(authenticate)
		r.Use(middleware.RequireAdmin)

		r.Get("/stats", h.Dashboard.GetStats)
	})
}
