package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/bookshelf-auth/internal/domain/entity"
	repo "github.com/oksasatya/bookshelf-auth/internal/domain/repository"
	"github.com/oksasatya/bookshelf-auth/internal/infrastructure/search"
)

type BookService struct {
	Books  repo.BookRepository
	Index  *search.BookIndex
	Logger *logrus.Logger
}

func NewBookService(books repo.BookRepository, index *search.BookIndex, logger *logrus.Logger) *BookService {
	return &BookService{Books: books, Index: index, Logger: logger}
}

// Create adds a book unless one with the same name and author exists.
func (s *BookService) Create(ctx context.Context, name, author string) (*entity.Book, error) {
	if _, err := s.Books.FindByNameAndAuthor(ctx, name, author); err == nil {
		return nil, ErrBookExists
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	b := &entity.Book{Name: name, Author: author}
	if err := s.Books.Create(ctx, b); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrBookExists
		}
		return nil, err
	}

	if err := s.Index.Index(ctx, b); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("book_id", b.ID).Warn("es index failed")
	}
	return b, nil
}

// Search looks books up in the search index; without one it finds nothing.
func (s *BookService) Search(ctx context.Context, q string, size int) ([]entity.Book, error) {
	return s.Index.Search(ctx, q, size)
}
