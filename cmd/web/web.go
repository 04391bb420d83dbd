package main

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/signalroom/signalroom-be/config"
	"github.com/signalroom/signalroom-be/controllers"
	"github.com/signalroom/signalroom-be/db/mysql"
	"github.com/signalroom/signalroom-be/routes"
	"github.com/signalroom/signalroom-be/services"
)

func main() {
	config.LoadEnv()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("invalid configuration: ", err)
	}

	db, err := mysql.GetDatabase(&mysql.Config{
		User: cfg.DBUser,
		Pass: cfg.DBPass,
		Host: cfg.DBHost,
		Name: cfg.DBName,
	})
	if err != nil {
		log.Fatal("Received err when attempting to connect to DB", err)
	}
	defer db.Close()

	tokens := services.NewTokenService(cfg.JWTSecret, services.TokenTTL)
	authController := controllers.NewAuthController(db, tokens)

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	if len(cfg.FEOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:  cfg.FEOrigins,
			AllowMethods:  []string{"GET", "POST"},
			AllowHeaders:  []string{"Origin", "Authorization", "Content-Type"},
			ExposeHeaders: []string{"Content-Length"},
			MaxAge:        12 * time.Hour,
		}))
	}

	api := r.Group("/api")
	routes.AddAuthRoutes(api, authController)
	routes.AddSignalRoutes(api, db, tokens)
	routes.AddFeedRoutes(api, db, tokens)
	routes.AddHealthCheckRoutes(api)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Error when attempting to run web server", err)
	}
}
