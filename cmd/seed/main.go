package main

import (
	"context"
	"errors"
	"flag"
	"log"

	"github.com/joho/godotenv"

	"github.com/radityaqb/go-user-accounts/config"
	userapp "github.com/radityaqb/go-user-accounts/internal/application"
	pginfra "github.com/radityaqb/go-user-accounts/internal/infrastructure/postgres"
	"github.com/radityaqb/go-user-accounts/pkg/helpers"
)

// Seeds a default account so a fresh deployment has a user to work with.
// Goes through the service so the password is hashed and the email
// uniqueness check applies.
func main() {
	name := flag.String("name", "Administrator", "name of the seeded user")
	email := flag.String("email", "admin@example.com", "email of the seeded user")
	password := flag.String("password", "123456", "password of the seeded user")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)

	ctx := context.Background()
	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	svc := userapp.NewService(pginfra.NewUserRepository(pool), logger, nil, nil, "")

	if err := svc.CreateUser(ctx, *name, *email, *password); err != nil {
		if errors.Is(err, userapp.ErrEmailTaken) {
			logger.WithField("email", *email).Info("user already exists, nothing to do")
			return
		}
		log.Fatalf("failed to seed user: %v", err)
	}
	logger.WithField("email", *email).Info("seeded default user")
}
