package main

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"rental_backend/internal/database"
	"rental_backend/internal/router"
	"rental_backend/pkg/utils"
)

func main() {
	// Load .env if present; real deployments set the environment directly.
	_ = godotenv.Load()

	utils.InitLogger()

	dbHost := utils.Getenv("DB_HOST", "localhost")
	dbPort := utils.Getenv("DB_PORT", "5432")
	dbUser := utils.Getenv("DB_USER", "postgres")
	dbPassword := utils.Getenv("DB_PASSWORD", "postgres")
	dbName := utils.Getenv("DB_NAME", "rental")
	dbSSLMode := utils.Getenv("DB_SSLMODE", "disable")

	database.InitDB(dbHost, dbPort, dbUser, dbPassword, dbName, dbSSLMode)
	db := database.GetDB()
	defer db.Close()

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(utils.GinLogger())

	allowedOrigins := strings.Split(
		utils.Getenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:3001"), ",")
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = allowedOrigins
	// Credentials must stay on so the browser sends the auth cookies.
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	engine.Use(cors.New(corsConfig))

	router.Setup(engine, db)

	port := utils.Getenv("PORT", "8080")
	log.Info().Str("port", port).Msg("starting server")
	if err := engine.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
