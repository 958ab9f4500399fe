package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"TaskPilot/middleware"
	"TaskPilot/models"
	"TaskPilot/pkg/chatbot"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	defaultConversationTitle = "New Conversation"
	maxContentLen            = 2000
)

type conversationCreateBody struct {
	Title string `json:"title"`
}

type messageCreateBody struct {
	Content string `json:"content"`
}

func ListConversations(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := middleware.CurrentUserID(c)

		convs := []models.Conversation{}
		if err := db.Where("user_id = ?", uid).Order("updated_at DESC").Find(&convs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "db error"})
			return
		}
		c.JSON(http.StatusOK, convs)
	}
}

func CreateConversation(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := middleware.CurrentUserID(c)

		var body conversationCreateBody
		// body is optional; a blank title falls back to the default
		_ = c.ShouldBindJSON(&body)
		title := strings.TrimSpace(body.Title)
		if title == "" {
			title = defaultConversationTitle
		}
		if utf8.RuneCountInString(title) > maxTitleLen {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"msg": "title must be at most 200 characters"})
			return
		}

		conv := models.Conversation{UserID: uid, Title: title}
		if err := db.Create(&conv).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "failed to create conversation"})
			return
		}
		c.JSON(http.StatusCreated, conv)
	}
}

func ListMessages(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := middleware.CurrentUserID(c)
		conv, ok := ownedConversation(c, db, uid)
		if !ok {
			return
		}

		msgs := []models.Message{}
		if err := db.Where("conversation_id = ? AND user_id = ?", conv.ID, uid).
			Order("created_at ASC, id ASC").Find(&msgs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "db error"})
			return
		}
		c.JSON(http.StatusOK, msgs)
	}
}

// SendMessage persists the user message, computes the bot reply, persists
// it, and touches the conversation in one transaction, so a failure never
// leaves a user message without its bot reply.
func SendMessage(db *gorm.DB, bot *chatbot.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := middleware.CurrentUserID(c)
		conv, ok := ownedConversation(c, db, uid)
		if !ok {
			return
		}

		var body messageCreateBody
		if err := c.ShouldBindJSON(&body); err != nil || strings.TrimSpace(body.Content) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "message cannot be empty"})
			return
		}
		if utf8.RuneCountInString(body.Content) > maxContentLen {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "message must be at most 2000 characters"})
			return
		}

		var botMsg models.Message
		err := db.Transaction(func(tx *gorm.DB) error {
			userMsg := models.Message{
				UserID:         uid,
				ConversationID: conv.ID,
				Content:        strings.TrimSpace(body.Content),
				Sender:         models.SenderUser,
			}
			if err := tx.Create(&userMsg).Error; err != nil {
				return err
			}

			// Reply never fails; internal engine errors degrade to a
			// fixed fail-safe string.
			botMsg = models.Message{
				UserID:         uid,
				ConversationID: conv.ID,
				Content:        bot.Reply(body.Content),
				Sender:         models.SenderBot,
			}
			if err := tx.Create(&botMsg).Error; err != nil {
				return err
			}

			return tx.Model(&models.Conversation{}).
				Where("id = ?", conv.ID).
				Update("updated_at", time.Now()).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "error processing message"})
			return
		}

		c.JSON(http.StatusCreated, botMsg)
	}
}

func DeleteConversation(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := middleware.CurrentUserID(c)
		conv, ok := ownedConversation(c, db, uid)
		if !ok {
			return
		}

		// remove messages explicitly so the cascade holds even on drivers
		// that don't enforce the FK constraint
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("conversation_id = ?", conv.ID).Delete(&models.Message{}).Error; err != nil {
				return err
			}
			return tx.Delete(&conv).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "failed to delete conversation"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// ownedConversation loads the conversation from the path param scoped to
// the caller. Missing and not-owned both answer 404 so other users' ids
// never leak. Writes the error response itself when ok is false.
func ownedConversation(c *gin.Context, db *gorm.DB, uid string) (models.Conversation, bool) {
	var conv models.Conversation
	cid, err := strconv.Atoi(c.Param("conversation_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": "conversation not found"})
		return conv, false
	}
	if err := db.Where("id = ? AND user_id = ?", cid, uid).First(&conv).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": "conversation not found"})
		return conv, false
	}
	return conv, true
}
