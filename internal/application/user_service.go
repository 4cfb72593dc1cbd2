package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/bookshelf-auth/internal/domain/entity"
	repo "github.com/oksasatya/bookshelf-auth/internal/domain/repository"
	"github.com/oksasatya/bookshelf-auth/internal/infrastructure/cache"
	"github.com/oksasatya/bookshelf-auth/pkg/helpers"
)

type UserService struct {
	Users    repo.UserRepository
	Hasher   *helpers.PasswordHasher
	JWT      *helpers.JWTManager
	Profiles *cache.ProfileCache
	Logger   *logrus.Logger
}

func NewUserService(users repo.UserRepository, hasher *helpers.PasswordHasher, jwt *helpers.JWTManager, profiles *cache.ProfileCache, logger *logrus.Logger) *UserService {
	return &UserService{Users: users, Hasher: hasher, JWT: jwt, Profiles: profiles, Logger: logger}
}

// Register creates a non-admin user and returns it with a fresh auth token.
func (s *UserService) Register(ctx context.Context, email, password string) (*entity.User, string, error) {
	if _, err := s.Users.FindByEmail(ctx, email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, "", err
	}

	hash, err := s.Hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}
	u := &entity.User{Email: email, PasswordHash: hash}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}

	token, _, err := s.JWT.IssueAuthToken(helpers.AuthClaims{UserID: u.ID, IsAdmin: u.IsAdmin}, 0)
	if err != nil {
		return nil, "", err
	}
	authStats.Add(statRegistered, 1)
	return u, token, nil
}

// GetProfile reads through the profile cache.
func (s *UserService) GetProfile(ctx context.Context, userID string) (cache.Profile, error) {
	if p, ok, err := s.Profiles.Get(ctx, userID); err == nil && ok {
		return p, nil
	} else if err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Warn("profile cache read failed")
	}

	u, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return cache.Profile{}, ErrUserNotFound
		}
		return cache.Profile{}, err
	}
	p := cache.Profile{ID: u.ID, Email: u.Email, IsAdmin: u.IsAdmin}
	if err := s.Profiles.Set(ctx, p); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Warn("profile cache write failed")
	}
	return p, nil
}
