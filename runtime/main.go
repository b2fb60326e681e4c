package main

import (
	"os"

	"github.com/SaydirasulovFirdavs/web-kutubxona/services"

	"github.com/alphabatem/common/context"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// @title Web Kutubxona API
// @version 1.0
// @description Digital library backend with reading engagement tracking
// @BasePath /
func main() {
	err := godotenv.Load()
	if err != nil {
		log.Warn().Err(err).Msg("No .env file loaded")
	}

	ctx, err := context.NewCtx(
		databaseService(),

		&services.JWTService{},
		&services.RedisService{},
		&services.MinIOService{},
		&services.MonitoringService{},
		&services.RateLimitService{},

		&services.AuthService{},
		&services.AuthMiddleware{},
		&services.ReadingService{},
		&services.BookService{},
		&services.UserService{},
		&services.AdminService{},

		&services.HttpService{},
	)
	if err != nil {
		log.Fatal().Err(err)
		return
	}

	err = ctx.Run()
	if err != nil {
		log.Fatal().Err(err)
		return
	}
}

// databaseService picks the storage backend. Postgres is the default;
// DB_DRIVER=sqlite keeps local development dependency free.
func databaseService() context.Service {
	if os.Getenv("DB_DRIVER") == "sqlite" {
		return &services.SqliteService{}
	}
	return &services.PostgresService{}
}
