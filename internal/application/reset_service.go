package application

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/bookshelf-auth/internal/domain/repository"
	"github.com/oksasatya/bookshelf-auth/internal/infrastructure/cache"
	"github.com/oksasatya/bookshelf-auth/pkg/helpers"
	"github.com/oksasatya/bookshelf-auth/pkg/mailer"
	tpl "github.com/oksasatya/bookshelf-auth/pkg/mailer/templates"
)

// ResetService drives the forgot-password flow:
//
//	no reset pending --RequestReset--> reset pending --CompleteReset--> no reset pending
//
// A pending reset whose window elapsed is inert; it is never swept, it just
// stops matching and is overwritten by the next request.
type ResetService struct {
	Users    repository.UserRepository
	Hasher   *helpers.PasswordHasher
	JWT      *helpers.JWTManager
	Sender   mailer.Sender
	Profiles *cache.ProfileCache
	Logger   *logrus.Logger

	// SiteURL is the front-end base the emailed link points at.
	SiteURL string
	// Window is how long a reset token stays usable.
	Window time.Duration

	now func() time.Time
}

func NewResetService(users repository.UserRepository, hasher *helpers.PasswordHasher, jwt *helpers.JWTManager, sender mailer.Sender, profiles *cache.ProfileCache, logger *logrus.Logger, siteURL string, window time.Duration) *ResetService {
	return &ResetService{
		Users:    users,
		Hasher:   hasher,
		JWT:      jwt,
		Sender:   sender,
		Profiles: profiles,
		Logger:   logger,
		SiteURL:  siteURL,
		Window:   window,
		now:      time.Now,
	}
}

func (s *ResetService) clock() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}

func (s *ResetService) log() *logrus.Logger {
	if s.Logger == nil {
		return helpers.NewNopLogger()
	}
	return s.Logger
}

// ResetLink builds the front-end link carrying the token and user id.
func ResetLink(siteURL, token, userID string) string {
	return fmt.Sprintf("%s/reset-password?token=%s&id=%s", siteURL, url.QueryEscape(token), url.QueryEscape(userID))
}

// RequestReset issues a reset token for the user registered under email,
// persists it with its expiration and emails the link. Unregistered emails
// fail with ErrEmailNotFound.
//
// The token is stored before the email is sent, so a failed delivery leaves a
// valid token behind; asking again supersedes it.
func (s *ResetService) RequestReset(ctx context.Context, email string) error {
	u, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			authStats.Add(statResetUnknownEmail, 1)
			return ErrEmailNotFound
		}
		return err
	}

	token, _, err := s.JWT.IssueResetToken(helpers.ResetClaims{UserID: u.ID}, s.Window)
	if err != nil {
		return err
	}
	if err := s.Users.SaveResetToken(ctx, u.ID, token, s.clock().Add(s.Window)); err != nil {
		return err
	}
	authStats.Add(statResetRequested, 1)

	link := ResetLink(s.SiteURL, token, u.ID)
	subject, text, html, err := tpl.Render(tpl.ResetPassword, tpl.ResetPasswordData{
		Email:     u.Email,
		Link:      link,
		ExpiresIn: s.Window,
	})
	if err != nil {
		return err
	}
	if err := s.Sender.Send(ctx, u.Email, subject, text, html); err != nil {
		authStats.Add(statNotificationFailed, 1)
		s.log().WithError(err).WithField("user_id", u.ID).Warn("reset email delivery failed")
		return fmt.Errorf("%w: %v", ErrNotificationDeliveryFailed, err)
	}
	s.log().WithField("user_id", u.ID).Info("reset token issued")
	return nil
}

// CompleteReset replaces the password of the user whose id, reset token and
// unexpired window all match, then clears the reset state so the token
// cannot be used again. Any mismatch yields ErrResetNotFoundOrExpired.
func (s *ResetService) CompleteReset(ctx context.Context, id, token, newPassword string) error {
	claims, err := s.JWT.VerifyResetToken(token)
	if err != nil || claims.UserID != id {
		authStats.Add(statResetRejected, 1)
		return ErrResetNotFoundOrExpired
	}

	u, err := s.Users.FindByResetCredentials(ctx, id, token, s.clock())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			authStats.Add(statResetRejected, 1)
			return ErrResetNotFoundOrExpired
		}
		return err
	}

	hash, err := s.Hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	// Conditional on the token still being stored and unexpired, so a
	// concurrent completion of the same token loses here.
	if err := s.Users.ConsumeResetToken(ctx, u.ID, token, s.clock(), hash); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			authStats.Add(statResetRejected, 1)
			return ErrResetNotFoundOrExpired
		}
		return err
	}
	if err := s.Profiles.Invalidate(ctx, u.ID); err != nil {
		s.log().WithError(err).WithField("user_id", u.ID).Warn("profile cache invalidation failed")
	}
	authStats.Add(statResetCompleted, 1)
	s.log().WithField("user_id", u.ID).Info("password changed via reset")
	return nil
}
