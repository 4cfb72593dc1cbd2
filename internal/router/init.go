package router

import (
	"github.com/oksasatya/bookshelf-auth/internal/application"
	"github.com/oksasatya/bookshelf-auth/internal/container"
	handlers "github.com/oksasatya/bookshelf-auth/internal/interface/http"
	"github.com/oksasatya/bookshelf-auth/internal/router/modules"
)

type AuthModuleDeps struct {
	Auth    *application.AuthService
	Reset   *application.ResetService
	Handler *handlers.AuthHandler
}

type UserModuleDeps struct {
	Service *application.UserService
	Handler *handlers.UserHandler
}

type BookModuleDeps struct {
	Service *application.BookService
	Handler *handlers.BookHandler
}

func buildAuthDeps() AuthModuleDeps {
	cfg := container.GetConfig()

	auth := application.NewAuthService(
		container.GetUserRepository(),
		container.GetHasher(),
		container.GetJWT(),
		container.GetLogger(),
	)
	reset := application.NewResetService(
		container.GetUserRepository(),
		container.GetHasher(),
		container.GetJWT(),
		container.GetSender(),
		container.GetProfileCache(),
		container.GetLogger(),
		cfg.SiteURL,
		cfg.ResetWindow,
	)

	return AuthModuleDeps{
		Auth:    auth,
		Reset:   reset,
		Handler: handlers.NewAuthHandler(auth, reset, container.GetLogger()),
	}
}

func buildUserDeps() UserModuleDeps {
	service := application.NewUserService(
		container.GetUserRepository(),
		container.GetHasher(),
		container.GetJWT(),
		container.GetProfileCache(),
		container.GetLogger(),
	)
	return UserModuleDeps{
		Service: service,
		Handler: handlers.NewUserHandler(service, container.GetLogger()),
	}
}

func buildBookDeps() BookModuleDeps {
	service := application.NewBookService(
		container.GetBookRepository(),
		container.GetBookIndex(),
		container.GetLogger(),
	)
	return BookModuleDeps{
		Service: service,
		Handler: handlers.NewBookHandler(service, container.GetLogger()),
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	jwt := container.GetJWT()

	r.Add(modules.NewAuthModule(buildAuthDeps().Handler))
	r.Add(modules.NewUserModule(buildUserDeps().Handler, jwt))
	r.Add(modules.NewBookModule(buildBookDeps().Handler))
	if container.GetConfig().DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
