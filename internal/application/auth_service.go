package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/bookshelf-auth/internal/domain/repository"
	"github.com/oksasatya/bookshelf-auth/pkg/helpers"
)

// AuthService checks login credentials and issues auth tokens.
type AuthService struct {
	Users  repository.UserRepository
	Hasher *helpers.PasswordHasher
	JWT    *helpers.JWTManager
	Logger *logrus.Logger

	// compared against when the email is unknown so both failure paths
	// spend a bcrypt verification
	dummyHash string
}

func NewAuthService(users repository.UserRepository, hasher *helpers.PasswordHasher, jwt *helpers.JWTManager, logger *logrus.Logger) *AuthService {
	dummy, err := hasher.Hash("bookshelf-auth-dummy-password")
	if err != nil {
		panic(fmt.Sprintf("hash dummy password: %v", err))
	}
	return &AuthService{Users: users, Hasher: hasher, JWT: jwt, Logger: logger, dummyHash: dummy}
}

// Login returns a signed auth token for a matching email/password pair.
// An unknown email and a wrong password both yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return "", err
		}
		s.Hasher.Verify(password, s.dummyHash)
		authStats.Add(statLoginFailed, 1)
		return "", ErrInvalidCredentials
	}
	if !s.Hasher.Verify(password, u.PasswordHash) {
		authStats.Add(statLoginFailed, 1)
		return "", ErrInvalidCredentials
	}

	token, _, err := s.JWT.IssueAuthToken(helpers.AuthClaims{UserID: u.ID, IsAdmin: u.IsAdmin}, 0)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate auth token failed")
		}
		return "", err
	}
	authStats.Add(statLoginSucceeded, 1)
	return token, nil
}
