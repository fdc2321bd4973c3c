// internal/membership/middleware_test.go
package membership_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libris/internal/membership"
)

type stubDirectory struct {
	members map[string]*membership.Member
}

func (d *stubDirectory) Resolve(_ context.Context, name string) (*membership.Member, error) {
	if member, ok := d.members[name]; ok {
		return member, nil
	}
	return nil, membership.ErrUnknownUser
}

func newStubDirectory() *stubDirectory {
	return &stubDirectory{members: map[string]*membership.Member{
		"Scrooge": {ID: 1, Name: "Scrooge", Role: membership.RoleLibrarian},
		"Dewey":   {ID: 2, Name: "Dewey", Role: membership.RolePatron},
	}}
}

// echoMember responds with the member the middleware stored in the context.
func echoMember(w http.ResponseWriter, r *http.Request) {
	member, ok := membership.FromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(member)
}

func serve(t *testing.T, handler http.Handler, user string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if user != "" {
		req.Header.Set("user", user)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	return rec
}

func Test_RequireUser_StoresMemberInContext(t *testing.T) {
	handler := membership.RequireUser(newStubDirectory())(http.HandlerFunc(echoMember))

	rec := serve(t, handler, "Dewey")

	require.Equal(t, http.StatusOK, rec.Code)

	member := membership.Member{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&member))
	assert.Equal(t, int64(2), member.ID)
	assert.Equal(t, membership.RolePatron, member.Role)
}

func Test_RequireUser_UnknownNameIs401(t *testing.T) {
	handler := membership.RequireUser(newStubDirectory())(http.HandlerFunc(echoMember))

	rec := serve(t, handler, "Donald")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	envelope := map[string]string{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	assert.Equal(t, "User (Donald) does not have library card", envelope["Error"])
}

func Test_RequireUser_MissingHeaderIs401(t *testing.T) {
	handler := membership.RequireUser(newStubDirectory())(http.HandlerFunc(echoMember))

	rec := serve(t, handler, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func Test_RequireLibrarian_AllowsLibrarian(t *testing.T) {
	handler := membership.RequireLibrarian(newStubDirectory())(http.HandlerFunc(echoMember))

	rec := serve(t, handler, "Scrooge")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func Test_RequireLibrarian_RejectsPatron(t *testing.T) {
	handler := membership.RequireLibrarian(newStubDirectory())(http.HandlerFunc(echoMember))

	rec := serve(t, handler, "Dewey")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	envelope := map[string]string{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	assert.Equal(t, "User (Dewey) does not have librarian privileges", envelope["Error"])
}
