package routes

import (
	"net/http"

	"TaskPilot/middleware"
	"TaskPilot/pkg/chatbot"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	chatRoutes "TaskPilot/routes/chat"
	taskRoutes "TaskPilot/routes/tasks"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB) {
	bot := chatbot.NewService()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "TaskPilot"})
	})

	chatRoutes.RegisterWS(r, db, bot)

	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware())
	taskRoutes.Register(api, db)
	chatRoutes.Register(api, db, bot)
}
