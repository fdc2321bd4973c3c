// internal/catalog/service.go
package catalog

import "context"

// Service defines the interface for the catalog service.
type Service interface {
	ListBooks(ctx context.Context) ([]Book, error)
	ListBookDetails(ctx context.Context) ([]BookDetail, error)
	GetBook(ctx context.Context, id int64) (*Book, error)
	GetBookByISBN(ctx context.Context, isbn string) (*Book, error)
	AddBook(ctx context.Context, isbn, title string) (int64, error)
	RemoveBook(ctx context.Context, id int64) error
}
