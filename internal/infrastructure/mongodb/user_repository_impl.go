package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/samber/oops"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/oksasatya/bookshelf-auth/internal/domain/entity"
	"github.com/oksasatya/bookshelf-auth/internal/domain/repository"
)

// userDocument mirrors the users collection.
type userDocument struct {
	ID                   bson.ObjectID `bson:"_id,omitempty"`
	Email                string        `bson:"email"`
	Password             string        `bson:"password"`
	IsAdmin              bool          `bson:"isAdmin"`
	ResetToken           *string       `bson:"resetToken,omitempty"`
	ResetTokenExpiration *time.Time    `bson:"resetTokenExpiration,omitempty"`
}

func (d *userDocument) toEntity() *entity.User {
	return &entity.User{
		ID:                   d.ID.Hex(),
		Email:                d.Email,
		PasswordHash:         d.Password,
		IsAdmin:              d.IsAdmin,
		ResetToken:           d.ResetToken,
		ResetTokenExpiration: d.ResetTokenExpiration,
	}
}

type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	doc := userDocument{
		ID:       bson.NewObjectID(),
		Email:    u.Email,
		Password: u.PasswordHash,
		IsAdmin:  u.IsAdmin,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicate
		}
		return oops.With("operation", "create user").Wrap(err)
	}
	u.ID = doc.ID.Hex()
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	return r.findOne(ctx, "find user by id", bson.M{"_id": oid})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, "find user by email", bson.M{"email": email})
}

func (r *UserRepository) FindByResetCredentials(ctx context.Context, id, token string, now time.Time) (*entity.User, error) {
	filter, ok := resetFilter(id, token, now)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r.findOne(ctx, "find user by reset credentials", filter)
}

// resetFilter matches id, token and a future expiration in one document
// predicate. ok is false when id cannot be an ObjectID.
func resetFilter(id, token string, now time.Time) (bson.M, bool) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, false
	}
	return bson.M{
		"_id":                  oid,
		"resetToken":           token,
		"resetTokenExpiration": bson.M{"$gt": now},
	}, true
}

func (r *UserRepository) findOne(ctx context.Context, operation string, filter bson.M) (*entity.User, error) {
	var doc userDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, oops.With("operation", operation).Wrap(err)
	}
	return doc.toEntity(), nil
}

func (r *UserRepository) SaveResetToken(ctx context.Context, id, token string, expiresAt time.Time) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrNotFound
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, resetTokenUpdate(token, expiresAt))
	if err != nil {
		return oops.With("operation", "save reset token").With("user_id", id).Wrap(err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) ConsumeResetToken(ctx context.Context, id, token string, now time.Time, passwordHash string) error {
	filter, ok := resetFilter(id, token, now)
	if !ok {
		return repository.ErrNotFound
	}
	res, err := r.coll.UpdateOne(ctx, filter, consumeUpdate(passwordHash))
	if err != nil {
		return oops.With("operation", "consume reset token").With("user_id", id).Wrap(err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// resetTokenUpdate touches only the reset fields.
func resetTokenUpdate(token string, expiresAt time.Time) bson.M {
	return bson.M{"$set": bson.M{"resetToken": token, "resetTokenExpiration": expiresAt}}
}

// consumeUpdate replaces the password and removes the reset fields, so a
// consumed token leaves no trace on the document.
func consumeUpdate(passwordHash string) bson.M {
	return bson.M{
		"$set":   bson.M{"password": passwordHash},
		"$unset": bson.M{"resetToken": "", "resetTokenExpiration": ""},
	}
}

var _ repository.UserRepository = (*UserRepository)(nil)
