package tasks

import (
	"TaskPilot/controllers"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Register registers task CRUD routes (protected)
func Register(g *gin.RouterGroup, db *gorm.DB) {
	g.GET("/tasks", controllers.ListTasks(db))
	g.POST("/tasks", controllers.CreateTask(db))
	g.PUT("/tasks/:task_id", controllers.UpdateTask(db))
	g.DELETE("/tasks/:task_id", controllers.DeleteTask(db))
}
