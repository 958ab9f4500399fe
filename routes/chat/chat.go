package chat

import (
	"TaskPilot/controllers"
	"TaskPilot/middleware"
	"TaskPilot/pkg/chatbot"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Register registers chat routes (protected). Message sends carry the rate
// limiter; reads do not.
func Register(g *gin.RouterGroup, db *gorm.DB, bot *chatbot.Service) {
	g.GET("/chat/conversations", controllers.ListConversations(db))
	g.POST("/chat/conversations", controllers.CreateConversation(db))
	g.GET("/chat/conversations/:conversation_id/messages", controllers.ListMessages(db))
	g.POST("/chat/conversations/:conversation_id/messages", middleware.RateLimit(), controllers.SendMessage(db, bot))
	g.DELETE("/chat/conversations/:conversation_id", controllers.DeleteConversation(db))
}

// RegisterWS registers the websocket chat endpoint; it authenticates via
// ?token= itself, outside the header middleware.
func RegisterWS(r *gin.Engine, db *gorm.DB, bot *chatbot.Service) {
	r.GET("/api/chat/ws", controllers.ChatWS(db, bot))
}
