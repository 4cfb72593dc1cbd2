package postgres

import (
	"context"

	"github.com/oksasatya/bookshelf-auth/internal/domain/entity"
	"github.com/oksasatya/bookshelf-auth/internal/domain/repository"
)

type BookRepository struct {
	db DBTX
}

func NewBookRepository(db DBTX) *BookRepository {
	return &BookRepository{db: db}
}

func (r *BookRepository) Create(ctx context.Context, b *entity.Book) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO books (name, author)
		VALUES ($1, $2)
		RETURNING id::text
	`, b.Name, b.Author)
	if err := row.Scan(&b.ID); err != nil {
		return translate(err, "create book")
	}
	return nil
}

func (r *BookRepository) FindByNameAndAuthor(ctx context.Context, name, author string) (*entity.Book, error) {
	b := &entity.Book{}
	row := r.db.QueryRow(ctx, `
		SELECT id::text, name, author
		FROM books
		WHERE name = $1 AND author = $2
	`, name, author)
	if err := row.Scan(&b.ID, &b.Name, &b.Author); err != nil {
		return nil, translate(err, "find book")
	}
	return b, nil
}

var _ repository.BookRepository = (*BookRepository)(nil)
