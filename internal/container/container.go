package container

import (
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/bookshelf-auth/config"
	repo "github.com/oksasatya/bookshelf-auth/internal/domain/repository"
	"github.com/oksasatya/bookshelf-auth/internal/infrastructure/cache"
	"github.com/oksasatya/bookshelf-auth/internal/infrastructure/search"
	"github.com/oksasatya/bookshelf-auth/pkg/helpers"
	"github.com/oksasatya/bookshelf-auth/pkg/mailer"
)

// app-level container to share constructed components across packages
// Router can auto-wire modules from these singletons.

var (
	cfg    *config.Config
	logger *logrus.Logger

	userRepo repo.UserRepository
	bookRepo repo.BookRepository

	jwtManager *helpers.JWTManager
	hasher     *helpers.PasswordHasher

	sender   mailer.Sender
	profiles *cache.ProfileCache
	books    *search.BookIndex
)

func SetConfig(c *config.Config) { cfg = c }
func GetConfig() *config.Config {
	if cfg == nil {
		cfg = config.Load()
	}
	return cfg
}

func SetLogger(l *logrus.Logger) { logger = l }
func GetLogger() *logrus.Logger {
	if logger == nil {
		logger = helpers.NewNopLogger()
	}
	return logger
}

func SetUserRepository(r repo.UserRepository) { userRepo = r }
func GetUserRepository() repo.UserRepository  { return userRepo }
func SetBookRepository(r repo.BookRepository) { bookRepo = r }
func GetBookRepository() repo.BookRepository  { return bookRepo }

func SetJWT(m *helpers.JWTManager) { jwtManager = m }
func GetJWT() *helpers.JWTManager {
	if jwtManager == nil {
		c := GetConfig()
		jwtManager = helpers.NewJWTManager(c.JWTSecret, c.AuthTTL, c.ResetWindow)
	}
	return jwtManager
}

func SetHasher(h *helpers.PasswordHasher) { hasher = h }
func GetHasher() *helpers.PasswordHasher {
	if hasher == nil {
		hasher = helpers.NewPasswordHasher(GetConfig().BcryptCost)
	}
	return hasher
}

func SetSender(s mailer.Sender) { sender = s }
func GetSender() mailer.Sender {
	if sender == nil {
		sender = mailer.NewLogSender(GetLogger())
	}
	return sender
}

func SetProfileCache(p *cache.ProfileCache) { profiles = p }
func GetProfileCache() *cache.ProfileCache  { return profiles }
func SetBookIndex(i *search.BookIndex)      { books = i }
func GetBookIndex() *search.BookIndex       { return books }
