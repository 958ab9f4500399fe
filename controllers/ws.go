package controllers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"TaskPilot/middleware"
	"TaskPilot/models"
	"TaskPilot/pkg/chatbot"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS handled at HTTP level; allow WS here
		return true
	},
}

type wsStartPayload struct {
	Type           string `json:"type"`
	Message        string `json:"message"`
	ConversationID uint   `json:"conversation_id"`
}

// ChatWS handles one chat exchange over a WebSocket.
// Client protocol (JSON messages):
//
//	-> {type: "start", message: string, conversation_id: number}
//	<- {type: "user_saved", conversation_id: number}
//	<- {type: "reply", message: {...}}
//	<- {type: "done", ok: true}
//	<- {type: "error", error: string}
//
// Auth uses the same dual-mode resolver as the HTTP middleware, passed as
// ?token= since browsers cannot set headers on WS upgrades.
func ChatWS(db *gorm.DB, bot *chatbot.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := strings.TrimSpace(c.Query("token"))
		uid, err := middleware.ResolveUserID(tokenStr)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "invalid token"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("[ws] upgrade error: %v", err)
			return
		}
		defer conn.Close()

		conn.SetReadLimit(1 << 16)
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		})

		// one start message per connection
		var start wsStartPayload
		if err := conn.ReadJSON(&start); err != nil {
			log.Printf("[ws] read message error: %v", err)
			return
		}
		if strings.ToLower(start.Type) != "start" || strings.TrimSpace(start.Message) == "" || start.ConversationID == 0 {
			_ = conn.WriteJSON(gin.H{"type": "error", "error": "invalid start payload"})
			return
		}

		if !middleware.Allow(uid + "@ws") {
			_ = conn.WriteJSON(gin.H{"type": "error", "error": "too many requests"})
			return
		}

		var conv models.Conversation
		if err := db.Where("id = ? AND user_id = ?", start.ConversationID, uid).First(&conv).Error; err != nil {
			_ = conn.WriteJSON(gin.H{"type": "error", "error": "conversation not found"})
			return
		}

		var botMsg models.Message
		err = db.Transaction(func(tx *gorm.DB) error {
			userMsg := models.Message{
				UserID:         uid,
				ConversationID: conv.ID,
				Content:        strings.TrimSpace(start.Message),
				Sender:         models.SenderUser,
			}
			if err := tx.Create(&userMsg).Error; err != nil {
				return err
			}
			botMsg = models.Message{
				UserID:         uid,
				ConversationID: conv.ID,
				Content:        bot.Reply(start.Message),
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
			_ = conn.WriteJSON(gin.H{"type": "error", "error": "failed to save message"})
			return
		}

		_ = conn.WriteJSON(gin.H{"type": "user_saved", "conversation_id": conv.ID})
		_ = conn.WriteJSON(gin.H{"type": "reply", "message": botMsg})
		_ = conn.WriteJSON(gin.H{"type": "done", "ok": true})
	}
}
