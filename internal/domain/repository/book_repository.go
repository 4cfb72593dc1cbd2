package repository

import (
	"context"

	"github.com/oksasatya/bookshelf-auth/internal/domain/entity"
)

// BookRepository defines catalog persistence.
type BookRepository interface {
	// Create inserts b and fills in its ID. Returns ErrDuplicate when a book
	// with the same name and author exists.
	Create(ctx context.Context, b *entity.Book) error
	FindByNameAndAuthor(ctx context.Context, name, author string) (*entity.Book, error)
}
