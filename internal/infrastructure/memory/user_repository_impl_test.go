package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/bookshelf-auth/internal/domain/entity"
	"github.com/oksasatya/bookshelf-auth/internal/domain/repository"
)

func TestUserRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	r := NewUserRepository()

	u := &entity.User{Email: "a@x.com", PasswordHash: "h"}
	require.NoError(t, r.Create(ctx, u))
	require.NotEmpty(t, u.ID)

	got, err := r.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = r.FindByEmail(ctx, "nobody@x.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	err = r.Create(ctx, &entity.User{Email: "a@x.com", PasswordHash: "h2"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestUserRepository_FindByResetCredentials(t *testing.T) {
	ctx := context.Background()
	r := NewUserRepository()
	now := time.Now()

	u := &entity.User{Email: "a@x.com", PasswordHash: "h"}
	require.NoError(t, r.Create(ctx, u))
	require.NoError(t, r.SaveResetToken(ctx, u.ID, "tok", now.Add(time.Minute)))

	got, err := r.FindByResetCredentials(ctx, u.ID, "tok", now)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	tests := []struct {
		name  string
		id    string
		token string
		now   time.Time
	}{
		{"wrong id", "u-missing", "tok", now},
		{"wrong token", u.ID, "other", now},
		{"expired", u.ID, "tok", now.Add(time.Minute)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.FindByResetCredentials(ctx, tt.id, tt.token, tt.now)
			assert.ErrorIs(t, err, repository.ErrNotFound)
		})
	}
}

func TestUserRepository_SaveResetToken_KeepsPassword(t *testing.T) {
	ctx := context.Background()
	r := NewUserRepository()

	u := &entity.User{Email: "a@x.com", PasswordHash: "h"}
	require.NoError(t, r.Create(ctx, u))
	require.NoError(t, r.SaveResetToken(ctx, u.ID, "tok", time.Now().Add(time.Minute)))

	got, err := r.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "h", got.PasswordHash)
	require.NotNil(t, got.ResetToken)
	assert.Equal(t, "tok", *got.ResetToken)

	assert.ErrorIs(t, r.SaveResetToken(ctx, "u-missing", "tok", time.Now()), repository.ErrNotFound)
}

func TestUserRepository_ConsumeResetToken(t *testing.T) {
	ctx := context.Background()
	r := NewUserRepository()
	now := time.Now()

	u := &entity.User{Email: "a@x.com", PasswordHash: "old"}
	require.NoError(t, r.Create(ctx, u))
	require.NoError(t, r.SaveResetToken(ctx, u.ID, "tok", now.Add(time.Minute)))

	assert.ErrorIs(t, r.ConsumeResetToken(ctx, u.ID, "other", now, "new"), repository.ErrNotFound)
	assert.ErrorIs(t, r.ConsumeResetToken(ctx, u.ID, "tok", now.Add(time.Minute), "new"), repository.ErrNotFound)

	require.NoError(t, r.ConsumeResetToken(ctx, u.ID, "tok", now, "new"))
	got, err := r.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "new", got.PasswordHash)
	assert.Nil(t, got.ResetToken)
	assert.Nil(t, got.ResetTokenExpiration)

	// second use of the same token
	assert.ErrorIs(t, r.ConsumeResetToken(ctx, u.ID, "tok", now, "newer"), repository.ErrNotFound)
}

func TestUserRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	r := NewUserRepository()

	u := &entity.User{Email: "a@x.com", PasswordHash: "h"}
	require.NoError(t, r.Create(ctx, u))

	got, err := r.FindByID(ctx, u.ID)
	require.NoError(t, err)
	got.PasswordHash = "mutated"

	again, err := r.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "h", again.PasswordHash)
}

func TestBookRepository_Uniqueness(t *testing.T) {
	ctx := context.Background()
	r := NewBookRepository()

	require.NoError(t, r.Create(ctx, &entity.Book{Name: "Go", Author: "u1"}))
	assert.ErrorIs(t, r.Create(ctx, &entity.Book{Name: "Go", Author: "u1"}), repository.ErrDuplicate)
	assert.NoError(t, r.Create(ctx, &entity.Book{Name: "Go", Author: "u2"}))

	b, err := r.FindByNameAndAuthor(ctx, "Go", "u2")
	require.NoError(t, err)
	assert.Equal(t, "u2", b.Author)
}
