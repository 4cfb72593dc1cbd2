package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/bookshelf-auth/config"
	"github.com/oksasatya/bookshelf-auth/internal/container"
	"github.com/oksasatya/bookshelf-auth/internal/infrastructure/memory"
	"github.com/oksasatya/bookshelf-auth/internal/infrastructure/mongodb"
	"github.com/oksasatya/bookshelf-auth/internal/infrastructure/postgres"
)

// openStore connects the configured credential store, registers its
// repositories in the container and returns a cleanup func.
func openStore(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (func(), error) {
	switch cfg.StoreDriver {
	case config.StoreMongo:
		client, err := mongodb.NewClient(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		db := client.Database(cfg.MongoDatabase)
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		container.SetUserRepository(mongodb.NewUserRepository(db))
		container.SetBookRepository(mongodb.NewBookRepository(db))
		logger.WithField("database", cfg.MongoDatabase).Info("using mongo store")
		return func() { _ = client.Disconnect(context.Background()) }, nil

	case config.StorePostgres:
		pool, err := postgres.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
		if err != nil {
			return nil, err
		}
		if err := runMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migration failed: %w", err)
		}
		container.SetUserRepository(postgres.NewUserRepository(pool))
		container.SetBookRepository(postgres.NewBookRepository(pool))
		logger.Info("using postgres store")
		return pool.Close, nil

	case config.StoreMemory:
		container.SetUserRepository(memory.NewUserRepository())
		container.SetBookRepository(memory.NewBookRepository())
		logger.Warn("using in-memory store; data is lost on restart")
		return func() {}, nil
	}
	return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
}

func runMigrations(dsn string, migrationsDir string, logger *logrus.Logger) error {
	// Open sql DB via pgx stdlib
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	driver, err := pgmigrate.WithInstance(db, &pgmigrate.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", migrationsDir), "postgres", driver)
	if err != nil {
		return err
	}
	logger.Info("running migrations...")
	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migrations to run")
		return nil
	}
	return err
}
