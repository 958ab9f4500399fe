package controllers

import (
	"net/http"
	"strconv"
	"time"
	"unicode/utf8"

	"TaskPilot/middleware"
	"TaskPilot/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	maxTitleLen       = 200
	maxDescriptionLen = 1000
)

type taskCreateBody struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
}

type taskUpdateBody struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Completed   *bool      `json:"completed"`
	DueDate     *time.Time `json:"due_date"`
}

func ListTasks(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := middleware.CurrentUserID(c)

		status := c.DefaultQuery("status", "all")
		sortBy := c.DefaultQuery("sort", "created")
		switch status {
		case "all", "pending", "completed":
		default:
			c.JSON(http.StatusUnprocessableEntity, gin.H{"msg": "status must be one of: all, pending, completed"})
			return
		}
		switch sortBy {
		case "created", "title", "due_date":
		default:
			c.JSON(http.StatusUnprocessableEntity, gin.H{"msg": "sort must be one of: created, title, due_date"})
			return
		}

		q := db.Where("user_id = ?", uid)
		switch status {
		case "pending":
			q = q.Where("completed = ?", false)
		case "completed":
			q = q.Where("completed = ?", true)
		}
		switch sortBy {
		case "title":
			q = q.Order("title ASC")
		case "due_date":
			// earliest due date first
			q = q.Order("due_date ASC")
		default:
			q = q.Order("created_at DESC")
		}

		tasks := []models.Task{}
		if err := q.Find(&tasks).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "db error"})
			return
		}
		c.JSON(http.StatusOK, tasks)
	}
}

func CreateTask(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := middleware.CurrentUserID(c)

		var body taskCreateBody
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"msg": "invalid request body"})
			return
		}
		// limits count characters, not bytes
		if n := utf8.RuneCountInString(body.Title); n < 1 || n > maxTitleLen {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"msg": "title must be 1-200 characters"})
			return
		}
		if utf8.RuneCountInString(body.Description) > maxDescriptionLen {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"msg": "description must be at most 1000 characters"})
			return
		}

		// owner always comes from the resolved caller, never the payload
		task := models.Task{
			UserID:      uid,
			Title:       body.Title,
			Description: body.Description,
			DueDate:     body.DueDate,
		}
		if err := db.Create(&task).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "failed to create task"})
			return
		}
		c.JSON(http.StatusCreated, task)
	}
}

func UpdateTask(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := middleware.CurrentUserID(c)
		taskID, err := strconv.Atoi(c.Param("task_id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"msg": "task not found"})
			return
		}

		var body taskUpdateBody
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"msg": "invalid request body"})
			return
		}
		if body.Title != nil {
			if n := utf8.RuneCountInString(*body.Title); n < 1 || n > maxTitleLen {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"msg": "title must be 1-200 characters"})
				return
			}
		}
		if body.Description != nil && utf8.RuneCountInString(*body.Description) > maxDescriptionLen {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"msg": "description must be at most 1000 characters"})
			return
		}

		// missing and not-owned collapse into the same 404
		var task models.Task
		if err := db.Where("id = ? AND user_id = ?", taskID, uid).First(&task).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"msg": "task not found"})
			return
		}

		// partial update: only supplied fields change
		if body.Title != nil {
			task.Title = *body.Title
		}
		if body.Description != nil {
			task.Description = *body.Description
		}
		if body.Completed != nil {
			task.Completed = *body.Completed
		}
		if body.DueDate != nil {
			task.DueDate = body.DueDate
		}

		if err := db.Save(&task).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "failed to update task"})
			return
		}
		c.JSON(http.StatusOK, task)
	}
}

func DeleteTask(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := middleware.CurrentUserID(c)
		taskID, err := strconv.Atoi(c.Param("task_id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"msg": "task not found"})
			return
		}

		var task models.Task
		if err := db.Where("id = ? AND user_id = ?", taskID, uid).First(&task).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"msg": "task not found"})
			return
		}
		if err := db.Delete(&task).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "failed to delete task"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
