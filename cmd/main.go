package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/bookshelf-auth/config"
	"github.com/oksasatya/bookshelf-auth/internal/container"
	"github.com/oksasatya/bookshelf-auth/internal/infrastructure/cache"
	"github.com/oksasatya/bookshelf-auth/internal/infrastructure/search"
	"github.com/oksasatya/bookshelf-auth/internal/interface/middleware"
	"github.com/oksasatya/bookshelf-auth/internal/router"
	"github.com/oksasatya/bookshelf-auth/pkg/helpers"
	"github.com/oksasatya/bookshelf-auth/pkg/mailer"
	"github.com/oksasatya/bookshelf-auth/pkg/validation"
)

const profileCacheTTL = 10 * time.Minute

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()

	// Credential store
	closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.WithError(err).WithField("driver", cfg.StoreDriver).Fatal("failed to open store")
	}
	defer closeStore()

	// Redis profile cache (optional)
	if cfg.RedisEnabled {
		rdb := cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer func() { _ = rdb.Close() }()
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.WithError(err).Warn("redis unreachable; profile cache will miss until it recovers")
		}
		container.SetProfileCache(cache.NewProfileCache(rdb, profileCacheTTL))
	}

	// Elasticsearch book index (optional)
	if addrs := cfg.ESAddrs(); len(addrs) > 0 {
		es, err := search.NewESClient(addrs, cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err != nil {
			logger.WithError(err).Fatal("failed to init elasticsearch client")
		}
		container.SetBookIndex(search.NewBookIndex(es, cfg.ESBooksIndex))
	}

	// Reset email delivery
	sender, closeSender, err := newSender(cfg, logger)
	if err != nil {
		logger.WithError(err).WithField("mode", cfg.MailDelivery).Fatal("failed to init mail sender")
	}
	defer closeSender()

	// Provide infra singletons to container for registry auto-wiring
	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetJWT(helpers.NewJWTManager(cfg.JWTSecret, cfg.AuthTTL, cfg.ResetWindow))
	container.SetHasher(helpers.NewPasswordHasher(cfg.BcryptCost))
	container.SetSender(sender)

	// Gin engine and global middleware
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())
	corsCfg := cors.Config{
		AllowOrigins:  cfg.CORSOrigins(),
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "x-auth-token"},
		ExposeHeaders: []string{"Content-Length", "x-auth-token", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	if len(corsCfg.AllowOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	}
	r.Use(cors.New(corsCfg))
	if cfg.HTTPLogEnabled || cfg.Env == "development" {
		r.Use(gin.Logger())
	}

	// Registry: auto-register modules using container
	reg := router.NewRegistry(r)
	router.InitModules(reg)
	reg.RegisterAll()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Fatalf("server forced to shutdown: %v", err)
	}
	logger.Info("server exited properly")
}

func newSender(cfg *config.Config, logger *logrus.Logger) (mailer.Sender, func(), error) {
	switch cfg.MailDelivery {
	case config.MailDirect:
		if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailFrom == "" {
			return nil, nil, errors.New("mailgun not configured")
		}
		return mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailFrom), func() {}, nil
	case config.MailQueue:
		q, err := mailer.NewQueueSender(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			return nil, nil, err
		}
		return q, q.Close, nil
	default:
		logger.Warn("MAIL_DELIVERY=log; reset emails are only logged")
		return mailer.NewLogSender(logger), func() {}, nil
	}
}
