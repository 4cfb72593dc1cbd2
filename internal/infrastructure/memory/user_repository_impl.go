package memory

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oksasatya/bookshelf-auth/internal/domain/entity"
	"github.com/oksasatya/bookshelf-auth/internal/domain/repository"
)

var seq atomic.Int64

func nextID(prefix string) string {
	return prefix + strconv.FormatInt(seq.Add(1), 10)
}

// UserRepository keeps users in process memory. Records are copied on the
// way in and out so callers never share state with the store.
type UserRepository struct {
	mu      sync.RWMutex
	byID    map[string]entity.User
	byEmail map[string]string
}

func NewUserRepository() *UserRepository {
	return &UserRepository{byID: map[string]entity.User{}, byEmail: map[string]string{}}
}

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[u.Email]; ok {
		return repository.ErrDuplicate
	}
	u.ID = nextID("u")
	r.byID[u.ID] = cloneUser(*u)
	r.byEmail[u.Email] = u.ID
	return nil
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := cloneUser(u)
	return &out, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	id, ok := r.byEmail[email]
	r.mu.RUnlock()
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *UserRepository) FindByResetCredentials(_ context.Context, id, token string, now time.Time) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok || u.ResetToken == nil || *u.ResetToken != token || !u.ResetPending(now) {
		return nil, repository.ErrNotFound
	}
	out := cloneUser(u)
	return &out, nil
}

func (r *UserRepository) SaveResetToken(_ context.Context, id, token string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	cur.SetResetToken(token, expiresAt)
	r.byID[id] = cloneUser(cur)
	return nil
}

func (r *UserRepository) ConsumeResetToken(_ context.Context, id, token string, now time.Time, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.byID[id]
	if !ok || cur.ResetToken == nil || *cur.ResetToken != token || !cur.ResetPending(now) {
		return repository.ErrNotFound
	}
	cur.PasswordHash = passwordHash
	cur.ClearResetToken()
	r.byID[id] = cur
	return nil
}

func cloneUser(u entity.User) entity.User {
	if u.ResetToken != nil {
		t := *u.ResetToken
		u.ResetToken = &t
	}
	if u.ResetTokenExpiration != nil {
		e := *u.ResetTokenExpiration
		u.ResetTokenExpiration = &e
	}
	return u
}

var _ repository.UserRepository = (*UserRepository)(nil)
