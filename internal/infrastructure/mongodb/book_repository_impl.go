package mongodb

import (
	"context"
	"errors"

	"github.com/samber/oops"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/oksasatya/bookshelf-auth/internal/domain/entity"
	"github.com/oksasatya/bookshelf-auth/internal/domain/repository"
)

type bookDocument struct {
	ID     bson.ObjectID `bson:"_id,omitempty"`
	Name   string        `bson:"name"`
	Author string        `bson:"author"`
}

type BookRepository struct {
	coll *mongo.Collection
}

func NewBookRepository(db *mongo.Database) *BookRepository {
	return &BookRepository{coll: db.Collection(booksCollection)}
}

func (r *BookRepository) Create(ctx context.Context, b *entity.Book) error {
	doc := bookDocument{ID: bson.NewObjectID(), Name: b.Name, Author: b.Author}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicate
		}
		return oops.With("operation", "create book").Wrap(err)
	}
	b.ID = doc.ID.Hex()
	return nil
}

func (r *BookRepository) FindByNameAndAuthor(ctx context.Context, name, author string) (*entity.Book, error) {
	var doc bookDocument
	err := r.coll.FindOne(ctx, bson.M{"name": name, "author": author}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, oops.With("operation", "find book").Wrap(err)
	}
	return &entity.Book{ID: doc.ID.Hex(), Name: doc.Name, Author: doc.Author}, nil
}

var _ repository.BookRepository = (*BookRepository)(nil)
