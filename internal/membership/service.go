// internal/membership/service.go
package membership

import "context"

// Directory defines the interface for resolving user names to members.
type Directory interface {
	Resolve(ctx context.Context, name string) (*Member, error)
}
