package main

import (
	"log"
	"time"

	"TaskPilot/middleware"
	"TaskPilot/models"
	"TaskPilot/pkg/cache"
	"TaskPilot/pkg/config"
	"TaskPilot/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openDB() (*gorm.DB, error) {
	if config.MySQLDSN != "" {
		return gorm.Open(mysql.Open(config.MySQLDSN), &gorm.Config{})
	}
	return gorm.Open(sqlite.Open(config.SQLitePath), &gorm.Config{})
}

func main() {
	config.Load()

	db, err := openDB()
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Task{}, &models.Conversation{}, &models.Message{}); err != nil {
		log.Fatalf("failed migrate: %v", err)
	}

	middleware.SetRateLimitConfig(
		time.Duration(config.RateLimitWindowSeconds)*time.Second,
		config.RateLimitCapacity,
	)
	cache.Default().SetMaxItems(config.AuthCacheMaxItems)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     config.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, db)
	if err := r.Run(":" + config.Port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
