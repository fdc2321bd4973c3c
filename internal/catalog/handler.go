// internal/catalog/handler.go
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"libris/internal/httpx"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// HandleAddBook adds a book by ISBN and title.
func (h *Handler) HandleAddBook(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ISBN  string `json:"isbn"`
		Title string `json:"title"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if !ValidISBN(req.ISBN) {
		httpx.Error(w, http.StatusNotAcceptable,
			fmt.Sprintf("ISBN (%s) is invalid, must be 10 or 13 numbers", req.ISBN))
		return
	}

	if _, err := h.service.GetBookByISBN(r.Context(), req.ISBN); err == nil {
		httpx.Error(w, http.StatusForbidden,
			fmt.Sprintf("ISBN (%s) already exists in library", req.ISBN))
		return
	} else if !errors.Is(err, ErrBookNotFound) {
		httpx.Error(w, http.StatusInternalServerError,
			fmt.Sprintf("Failed to insert ISBN (%s)", req.ISBN))
		return
	}

	id, err := h.service.AddBook(r.Context(), req.ISBN, req.Title)
	switch {
	case errors.Is(err, ErrDuplicateISBN):
		// Lost a race to a concurrent insert of the same ISBN.
		httpx.Error(w, http.StatusForbidden,
			fmt.Sprintf("ISBN (%s) already exists in library", req.ISBN))
	case err != nil:
		httpx.Error(w, http.StatusInternalServerError,
			fmt.Sprintf("Failed to insert ISBN (%s)", req.ISBN))
	default:
		httpx.Success(w, fmt.Sprintf("ISBN (%s) added to library as Book (%d)", req.ISBN, id))
	}
}

// HandleRemoveBook deletes a book by id.
func (h *Handler) HandleRemoveBook(w http.ResponseWriter, r *http.Request) {
	bookID, err := strconv.ParseInt(chi.URLParam(r, "bookID"), 10, 64)
	if err != nil {
		httpx.Error(w, http.StatusNotFound, "invalid book id")
		return
	}

	err = h.service.RemoveBook(r.Context(), bookID)
	switch {
	case errors.Is(err, ErrBookNotFound):
		httpx.Error(w, http.StatusNotFound,
			fmt.Sprintf("Book (%d) does not exist in library", bookID))
	case err != nil:
		httpx.Error(w, http.StatusInternalServerError,
			fmt.Sprintf("Failed to delete book (%d)", bookID))
	default:
		httpx.Success(w, fmt.Sprintf("Book (%d) deleted successfully", bookID))
	}
}

// HandleListCatalog lists all books, joined with their current loan when the
// details query parameter is set.
func (h *Handler) HandleListCatalog(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.ListBooks(r.Context())
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, "failed to list catalog")
		return
	}

	if len(books) == 0 {
		httpx.Error(w, http.StatusNotFound, "Library currently has no books")
		return
	}

	if r.URL.Query().Get("details") != "" {
		details, err := h.service.ListBookDetails(r.Context())
		if err != nil {
			httpx.Error(w, http.StatusInternalServerError, "failed to list catalog")
			return
		}
		httpx.JSON(w, http.StatusOK, details)
		return
	}

	httpx.JSON(w, http.StatusOK, books)
}
