// internal/membership/middleware.go
package membership

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"libris/internal/httpx"
)

type ctxKey struct{}

// NewContext returns a context carrying the resolved member.
func NewContext(ctx context.Context, member *Member) context.Context {
	return context.WithValue(ctx, ctxKey{}, member)
}

// FromContext returns the member stored by RequireUser or RequireLibrarian.
func FromContext(ctx context.Context) (*Member, bool) {
	member, ok := ctx.Value(ctxKey{}).(*Member)
	return member, ok
}

// RequireUser resolves the plain-text user header against the directory and
// stores the member in the request context. Unknown names get 401.
func RequireUser(dir Directory) func(http.Handler) http.Handler {
	return requireRole(dir, false)
}

// RequireLibrarian additionally rejects members without the librarian role.
func RequireLibrarian(dir Directory) func(http.Handler) http.Handler {
	return requireRole(dir, true)
}

func requireRole(dir Directory, librarian bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			name := r.Header.Get("user")

			member, err := dir.Resolve(r.Context(), name)
			if err != nil {
				if errors.Is(err, ErrUnknownUser) {
					httpx.Error(w, http.StatusUnauthorized, unauthorizedMessage(name, librarian))
					return
				}
				httpx.Error(w, http.StatusInternalServerError, "failed to resolve user")
				return
			}

			if librarian && !member.IsLibrarian() {
				httpx.Error(w, http.StatusUnauthorized, unauthorizedMessage(name, true))
				return
			}

			next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), member)))
		})
	}
}

func unauthorizedMessage(name string, librarian bool) string {
	if librarian {
		return fmt.Sprintf("User (%s) does not have librarian privileges", name)
	}
	return fmt.Sprintf("User (%s) does not have library card", name)
}
