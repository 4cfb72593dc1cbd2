package memory

import (
	"context"
	"sync"

	"github.com/oksasatya/bookshelf-auth/internal/domain/entity"
	"github.com/oksasatya/bookshelf-auth/internal/domain/repository"
)

type bookKey struct{ name, author string }

// BookRepository keeps books in process memory.
type BookRepository struct {
	mu    sync.RWMutex
	books map[bookKey]entity.Book
}

func NewBookRepository() *BookRepository {
	return &BookRepository{books: map[bookKey]entity.Book{}}
}

func (r *BookRepository) Create(_ context.Context, b *entity.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := bookKey{b.Name, b.Author}
	if _, ok := r.books[k]; ok {
		return repository.ErrDuplicate
	}
	b.ID = nextID("b")
	r.books[k] = *b
	return nil
}

func (r *BookRepository) FindByNameAndAuthor(_ context.Context, name, author string) (*entity.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.books[bookKey{name, author}]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &b, nil
}

var _ repository.BookRepository = (*BookRepository)(nil)
