package main

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/joho/godotenv"

	"github.com/oksasatya/bookshelf-auth/config"
	"github.com/oksasatya/bookshelf-auth/internal/domain/entity"
	"github.com/oksasatya/bookshelf-auth/internal/domain/repository"
	"github.com/oksasatya/bookshelf-auth/internal/infrastructure/mongodb"
	"github.com/oksasatya/bookshelf-auth/internal/infrastructure/postgres"
	"github.com/oksasatya/bookshelf-auth/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	email := flag.String("email", "admin@bookshelf.local", "admin email")
	password := flag.String("password", "password123", "admin password")
	flag.Parse()

	ctx := context.Background()

	var users repository.UserRepository
	switch cfg.StoreDriver {
	case config.StoreMongo:
		client, err := mongodb.NewClient(ctx, cfg.MongoURI)
		if err != nil {
			logger.WithError(err).Fatal("failed to connect to mongo")
		}
		defer func() { _ = client.Disconnect(context.Background()) }()
		db := client.Database(cfg.MongoDatabase)
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			logger.WithError(err).Fatal("failed to ensure indexes")
		}
		users = mongodb.NewUserRepository(db)
	case config.StorePostgres:
		pool, err := postgres.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
		if err != nil {
			logger.WithError(err).Fatal("failed to connect to postgres")
		}
		defer pool.Close()
		users = postgres.NewUserRepository(pool)
	default:
		logger.WithField("driver", cfg.StoreDriver).Fatal("seed needs a persistent store")
	}

	hash, err := helpers.NewPasswordHasher(cfg.BcryptCost).Hash(*password)
	if err != nil {
		logger.WithError(err).Fatal("failed to hash password")
	}

	u := &entity.User{Email: *email, PasswordHash: hash, IsAdmin: true}
	err = users.Create(ctx, u)
	switch {
	case errors.Is(err, repository.ErrDuplicate):
		logger.WithField("email", *email).Info("admin already seeded")
		return
	case err != nil:
		logger.WithError(err).Fatal("failed to seed admin")
	}
	fmt.Printf("seeded admin: id=%s email=%s password=%s\n", u.ID, *email, *password)
}
