package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/bookshelf-auth/internal/domain/entity"
	"github.com/oksasatya/bookshelf-auth/internal/domain/repository"
)

const userColumns = `id::text, email, password_hash, is_admin, reset_token, reset_token_expires_at`

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, is_admin)
		VALUES ($1, $2, $3)
		RETURNING id::text
	`, u.Email, u.PasswordHash, u.IsAdmin)

	if err := row.Scan(&u.ID); err != nil {
		return translate(err, "create user")
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, repository.ErrNotFound
	}
	return r.findOne(ctx, "find user by id", `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, "find user by email", `
		SELECT `+userColumns+`
		FROM users
		WHERE email = $1
	`, email)
}

func (r *UserRepository) FindByResetCredentials(ctx context.Context, id, token string, now time.Time) (*entity.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, repository.ErrNotFound
	}
	return r.findOne(ctx, "find user by reset credentials", `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1 AND reset_token = $2 AND reset_token_expires_at > $3
	`, id, token, now)
}

func (r *UserRepository) findOne(ctx context.Context, operation, query string, args ...any) (*entity.User, error) {
	u := &entity.User{}
	row := r.db.QueryRow(ctx, query, args...)
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.IsAdmin, &u.ResetToken, &u.ResetTokenExpiration); err != nil {
		return nil, translate(err, operation)
	}
	return u, nil
}

func (r *UserRepository) SaveResetToken(ctx context.Context, id, token string, expiresAt time.Time) error {
	if _, err := uuid.Parse(id); err != nil {
		return repository.ErrNotFound
	}
	res, err := r.db.Exec(ctx, `
		UPDATE users
		SET reset_token = $1, reset_token_expires_at = $2, updated_at = now()
		WHERE id = $3
	`, token, expiresAt, id)
	if err != nil {
		return translate(err, "save reset token")
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) ConsumeResetToken(ctx context.Context, id, token string, now time.Time, passwordHash string) error {
	if _, err := uuid.Parse(id); err != nil {
		return repository.ErrNotFound
	}
	res, err := r.db.Exec(ctx, `
		UPDATE users
		SET password_hash = $1, reset_token = NULL, reset_token_expires_at = NULL, updated_at = now()
		WHERE id = $2 AND reset_token = $3 AND reset_token_expires_at > $4
	`, passwordHash, id, token, now)
	if err != nil {
		return translate(err, "consume reset token")
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
