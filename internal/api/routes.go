package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/games", s.handleListGames)
		r.Get("/games/{id}", s.handleGetGame)
		r.Post("/games/{id}/assets/{slot}", s.handleReplaceGameAsset)
		r.Post("/assets/replace", s.handleReplaceAsset)
	})
	return r
}
