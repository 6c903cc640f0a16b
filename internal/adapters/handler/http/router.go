package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

type Handlers struct {
	Auth     *AuthHandler
	Customer *CustomerHandler
	Poll     *PollHandler
	Ballot   *BallotHandler
}

func NewHandler(h Handlers, auth *AuthMiddleware, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization", adminKeyHeader},
		AllowCredentials: true,
	}).Handler)

	r.Route("/api", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("welcome"))
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/logout", h.Auth.Logout)
		})

		r.With(auth.RequireCustomer).Get("/me", h.Customer.GetMe)

		r.Route("/polls", func(r chi.Router) {
			r.Get("/", h.Poll.ListPolls)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.Poll.GetPoll)
				r.Get("/results", h.Poll.GetResults)

				r.Group(func(r chi.Router) {
					r.Use(auth.RequireCustomer)
					r.Get("/ballot", h.Ballot.GetBallot)
					r.Put("/ballot", h.Ballot.SubmitBallot)
				})
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(auth.RequireAdmin)
			r.Post("/polls", h.Poll.CreatePoll)
		})
	})

	return r
}
