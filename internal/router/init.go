package router

import (
	userapp "github.com/radityaqb/go-user-accounts/internal/application"
	"github.com/radityaqb/go-user-accounts/internal/container"
	repouser "github.com/radityaqb/go-user-accounts/internal/domain/repository"
	pginfra "github.com/radityaqb/go-user-accounts/internal/infrastructure/postgres"
	handlers "github.com/radityaqb/go-user-accounts/internal/interface/http"
	"github.com/radityaqb/go-user-accounts/internal/router/modules"
)

type UserModuleDeps struct {
	Repo    repouser.UserRepository
	Service *userapp.Service
	Handler *handlers.UserHandler
}

func buildUserDeps() UserModuleDeps {
	repo := pginfra.NewUserRepository(container.GetPGPool())

	service := userapp.NewService(
		repo,
		container.GetLogger(),
		container.GetRabbitPub(),
		container.GetES(),
		container.GetConfig().ESUsersIndex,
	)

	handler := handlers.NewUserHandler(service, container.GetLogger())

	return UserModuleDeps{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	userDeps := buildUserDeps()
	r.Add(modules.NewUserModule(userDeps.Handler))
}
