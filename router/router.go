// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/danielhkuo/decidebox/cliparse"
	"github.com/danielhkuo/decidebox/handlers"
	"github.com/danielhkuo/decidebox/middleware"
	"github.com/danielhkuo/decidebox/views"
)

func NewRouter(api handlers.Backend, v *views.Renderer, cfg cliparse.Config) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.WithLogging)
	r.Use(chimw.Recoverer)

	// Initialize handlers
	browseHandler := handlers.NewBrowseHandler(api, v, cfg)
	votingHandler := handlers.NewVotingHandler(api, v, cfg)
	resultsHandler := handlers.NewResultsHandler(api, v, cfg)
	pollHandler := handlers.NewPollHandler(api, v, cfg)
	accountHandler := handlers.NewAccountHandler(api, v, cfg)
	myPageHandler := handlers.NewMyPageHandler(api, v, cfg)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Handle("/static/*", http.StripPrefix("/static/", views.Static()))

	session := middleware.Session(cfg.SessionCookie)

	r.Group(func(r chi.Router) {
		r.Use(session)
		r.Use(middleware.CSRF(cfg.CSRFSecret, cfg.SecureCookies))

		// Browsing
		r.Get("/", browseHandler.Home)
		r.Get("/explore", browseHandler.Explore)
		r.Get("/category/{name}", browseHandler.Category)

		// Poll creation comes before /poll/{id}
		r.Get("/poll/new", pollHandler.NewPoll)
		r.Post("/poll/new", pollHandler.CreatePoll)

		// Voting and results
		r.Get("/poll/{id}", votingHandler.Show)
		r.Post("/poll/{id}/vote", votingHandler.Vote)
		r.Get("/poll/{id}/result", resultsHandler.GetResults)

		// Accounts
		r.Get("/login", accountHandler.LoginForm)
		r.Post("/login", accountHandler.Login)
		r.Get("/signup", accountHandler.SignupForm)
		r.Post("/signup", accountHandler.Signup)

		// My page needs a session
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSession("/login"))
			r.Get("/mypage", myPageHandler.Show)
			r.Get("/mypage/edit", myPageHandler.EditForm)
			r.Post("/mypage/edit", myPageHandler.Edit)
		})
	})

	r.NotFound(session(handlers.NotFound(v)).ServeHTTP)

	return r
}
