// internal/membership/domain.go
package membership

import "errors"

// Roles known to the directory.
const (
	RolePatron    = "patron"
	RoleLibrarian = "librarian"
)

// ErrUnknownUser is returned when a name does not resolve to a member.
var ErrUnknownUser = errors.New("unknown user")

// Member is a library user resolved from the membership directory.
// Provisioning happens outside this service; members are read-only here.
type Member struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
	Role string `json:"role" db:"role"`
}

// IsLibrarian reports whether the member may manage the catalog.
func (m Member) IsLibrarian() bool {
	return m.Role == RoleLibrarian
}
