// internal/circulation/handler.go
package circulation

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"libris/internal/catalog"
	"libris/internal/httpx"
	"libris/internal/membership"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// HandleCheckout checks a book out to the requesting member.
func (h *Handler) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	member, ok := membership.FromContext(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "no user in request context")
		return
	}

	bookID, err := strconv.ParseInt(chi.URLParam(r, "bookID"), 10, 64)
	if err != nil {
		httpx.Error(w, http.StatusNotFound, "invalid book id")
		return
	}

	err = h.service.Checkout(r.Context(), member, bookID)
	switch {
	case errors.Is(err, catalog.ErrBookNotFound):
		httpx.Error(w, http.StatusNotFound,
			fmt.Sprintf("Book (%d) does not exist in library", bookID))
	case errors.Is(err, ErrAlreadyCheckedOut):
		httpx.Error(w, http.StatusLocked,
			fmt.Sprintf("Book (%d) was already checked out by User (%s)", bookID, member.Name))
	case errors.Is(err, ErrBookUnavailable):
		httpx.Error(w, http.StatusLocked,
			fmt.Sprintf("Book (%d) is checked out by another user", bookID))
	case errors.Is(err, ErrLimitExceeded):
		httpx.Error(w, http.StatusForbidden,
			fmt.Sprintf("User (%s) already has max books (%d) checked out", member.Name, MaxBooks))
	case errors.Is(err, ErrHasOverdue):
		httpx.Error(w, http.StatusForbidden,
			fmt.Sprintf("User (%s) has overdue book(s) and cannot check out", member.Name))
	case err != nil:
		httpx.Error(w, http.StatusInternalServerError,
			fmt.Sprintf("Failed to checkout book (%d)", bookID))
	default:
		httpx.Success(w, fmt.Sprintf("User (%s) has checked out Book (%d)", member.Name, bookID))
	}
}

// HandleReturn returns a book held by the requesting member.
func (h *Handler) HandleReturn(w http.ResponseWriter, r *http.Request) {
	member, ok := membership.FromContext(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "no user in request context")
		return
	}

	bookID, err := strconv.ParseInt(chi.URLParam(r, "bookID"), 10, 64)
	if err != nil {
		httpx.Error(w, http.StatusNotFound, "invalid book id")
		return
	}

	err = h.service.Return(r.Context(), member, bookID)
	switch {
	case errors.Is(err, catalog.ErrBookNotFound):
		httpx.Error(w, http.StatusNotFound,
			fmt.Sprintf("Book (%d) does not exist in library", bookID))
	case errors.Is(err, ErrNotCheckedOut):
		httpx.Error(w, http.StatusForbidden,
			fmt.Sprintf("Book (%d) was not checked out by User (%s)", bookID, member.Name))
	case err != nil:
		httpx.Error(w, http.StatusInternalServerError,
			fmt.Sprintf("Failed to return book (%d)", bookID))
	default:
		httpx.Success(w, fmt.Sprintf("User (%s) has returned Book (%d)", member.Name, bookID))
	}
}

// HandleAvailable lists books not currently on loan.
func (h *Handler) HandleAvailable(w http.ResponseWriter, r *http.Request) {
	available, err := h.service.Available(r.Context())
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, "failed to list available books")
		return
	}

	if len(available) == 0 {
		httpx.Error(w, http.StatusNotFound, "All library books appear to be checked out")
		return
	}

	httpx.JSON(w, http.StatusOK, available)
}

// HandleBorrowed lists the requesting member's active loans.
func (h *Handler) HandleBorrowed(w http.ResponseWriter, r *http.Request) {
	member, ok := membership.FromContext(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "no user in request context")
		return
	}

	borrowed, err := h.service.Borrowed(r.Context(), member.ID)
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, "failed to list borrowed books")
		return
	}

	httpx.JSON(w, http.StatusOK, borrowed)
}

// HandleOverdue lists every loan past its due date, across all members.
func (h *Handler) HandleOverdue(w http.ResponseWriter, r *http.Request) {
	overdue, err := h.service.Overdue(r.Context(), time.Now())
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, "failed to list overdue loans")
		return
	}

	httpx.JSON(w, http.StatusOK, overdue)
}
