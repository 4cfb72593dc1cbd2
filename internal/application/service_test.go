package application

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/oksasatya/bookshelf-auth/internal/domain/entity"
	"github.com/oksasatya/bookshelf-auth/internal/infrastructure/memory"
	"github.com/oksasatya/bookshelf-auth/pkg/helpers"
)

type sentMail struct {
	To, Subject, Text, HTML string
}

type fakeSender struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (f *fakeSender) Send(_ context.Context, to, subject, text, html string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{To: to, Subject: subject, Text: text, HTML: html})
	return nil
}

func (f *fakeSender) last() (sentMail, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) == 0 {
		return sentMail{}, false
	}
	return f.sent[len(f.sent)-1], true
}

var errSMTPDown = errors.New("smtp down")

type fixture struct {
	users  *memory.UserRepository
	hasher *helpers.PasswordHasher
	jwt    *helpers.JWTManager
	sender *fakeSender
	auth   *AuthService
	reset  *ResetService
	user   *UserService
}

func newFixture() *fixture {
	f := &fixture{
		users:  memory.NewUserRepository(),
		hasher: helpers.NewPasswordHasher(10),
		jwt:    helpers.NewJWTManager("test-secret", time.Hour, 3*time.Minute),
		sender: &fakeSender{},
	}
	logger := helpers.NewNopLogger()
	f.auth = NewAuthService(f.users, f.hasher, f.jwt, logger)
	f.reset = NewResetService(f.users, f.hasher, f.jwt, f.sender, nil, logger, "https://books.example.com", 3*time.Minute)
	f.user = NewUserService(f.users, f.hasher, f.jwt, nil, logger)
	return f
}

func (f *fixture) seed(email, password string) *entity.User {
	hash, err := f.hasher.Hash(password)
	if err != nil {
		panic(err)
	}
	u := &entity.User{Email: email, PasswordHash: hash}
	if err := f.users.Create(context.Background(), u); err != nil {
		panic(err)
	}
	return u
}

func (f *fixture) storedResetToken(id string) string {
	u, err := f.users.FindByID(context.Background(), id)
	if err != nil || u.ResetToken == nil {
		return ""
	}
	return *u.ResetToken
}

// hookedUsers runs each hook once, right after the matching read returns,
// to interleave another operation between a service's read and its write.
type hookedUsers struct {
	*memory.UserRepository
	afterFindByEmail func()
	afterFindByReset func()
}

func (h *hookedUsers) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := h.UserRepository.FindByEmail(ctx, email)
	if hook := h.afterFindByEmail; hook != nil {
		h.afterFindByEmail = nil
		hook()
	}
	return u, err
}

func (h *hookedUsers) FindByResetCredentials(ctx context.Context, id, token string, now time.Time) (*entity.User, error) {
	u, err := h.UserRepository.FindByResetCredentials(ctx, id, token, now)
	if hook := h.afterFindByReset; hook != nil {
		h.afterFindByReset = nil
		hook()
	}
	return u, err
}
