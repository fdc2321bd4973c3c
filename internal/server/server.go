// internal/server/server.go
package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"golang.org/x/time/rate"

	"libris/internal/catalog"
	"libris/internal/circulation"
	"libris/internal/httpx"
	"libris/internal/membership"
)

// New assembles the HTTP API over the given database handle. Both route
// groups resolve the user header through the membership directory; the
// librarian group also enforces the librarian role.
func New(db *sqlx.DB, logger *slog.Logger) http.Handler {
	directory := membership.NewDirectory(db)
	catalogHandler := catalog.NewHandler(catalog.NewService(db))
	circulationHandler := circulation.NewHandler(circulation.NewService(db))

	// Process-wide budget for mutating endpoints.
	limiter := rate.NewLimiter(rate.Limit(50), 100)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httpx.RequestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Route("/librarian", func(r chi.Router) {
		r.Use(membership.RequireLibrarian(directory))
		r.With(httpx.Throttle(limiter)).Post("/book", catalogHandler.HandleAddBook)
		r.With(httpx.Throttle(limiter)).Delete("/book/{bookID}", catalogHandler.HandleRemoveBook)
		r.Get("/catalog", catalogHandler.HandleListCatalog)
		r.Get("/overdue", circulationHandler.HandleOverdue)
	})

	r.Route("/user", func(r chi.Router) {
		r.Use(membership.RequireUser(directory))
		r.With(httpx.Throttle(limiter)).Get("/checkout/{bookID}", circulationHandler.HandleCheckout)
		r.With(httpx.Throttle(limiter)).Get("/return/{bookID}", circulationHandler.HandleReturn)
		r.Get("/available", circulationHandler.HandleAvailable)
		r.Get("/borrowed", circulationHandler.HandleBorrowed)
	})

	return r
}
