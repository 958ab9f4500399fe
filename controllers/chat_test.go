package controllers_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"TaskPilot/models"

	"github.com/gin-gonic/gin"
)

const declineText = "I can only help with task management. Please ask about creating, completing, deleting, or managing tasks."

var deleteReplies = []string{
	"Click the 'Delete' button on a task to remove it. You'll be asked to confirm.",
	"To delete a task, use the delete button and confirm the action.",
}

func createConversation(t *testing.T, r *gin.Engine, token string, body map[string]any) models.Conversation {
	t.Helper()
	w := do(t, r, http.MethodPost, "/api/chat/conversations", token, body)
	if w.Code != http.StatusCreated {
		t.Fatalf("create conversation: got %d: %s", w.Code, w.Body.String())
	}
	return decode[models.Conversation](t, w)
}

func TestCreateConversationDefaults(t *testing.T) {
	r, _ := newServer(t)

	conv := createConversation(t, r, "alice", map[string]any{})
	if conv.Title != "New Conversation" {
		t.Fatalf("default title = %q", conv.Title)
	}

	conv = createConversation(t, r, "alice", map[string]any{"title": "  groceries  "})
	if conv.Title != "groceries" {
		t.Fatalf("title = %q, want trimmed custom title", conv.Title)
	}

	w := do(t, r, http.MethodPost, "/api/chat/conversations", "alice", map[string]any{"title": strings.Repeat("t", 201)})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("long title: got %d, want 422", w.Code)
	}

	// the title limit counts characters, so 200 CJK characters fit
	conv = createConversation(t, r, "alice", map[string]any{"title": strings.Repeat("话", 200)})
	if conv.Title != strings.Repeat("话", 200) {
		t.Fatalf("multibyte title mangled: %q", conv.Title)
	}
	if w = do(t, r, http.MethodPost, "/api/chat/conversations", "alice", map[string]any{"title": strings.Repeat("话", 201)}); w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("201-char multibyte title: got %d, want 422", w.Code)
	}
}

func TestSendMessageCreatesUserAndBotPair(t *testing.T) {
	r, _ := newServer(t)
	conv := createConversation(t, r, "alice", nil)
	msgPath := fmt.Sprintf("/api/chat/conversations/%d/messages", conv.ID)

	time.Sleep(2 * time.Millisecond)
	w := do(t, r, http.MethodPost, msgPath, "alice", map[string]any{"content": "  how do I delete this  "})
	if w.Code != http.StatusCreated {
		t.Fatalf("send: got %d: %s", w.Code, w.Body.String())
	}
	botMsg := decode[models.Message](t, w)
	if botMsg.Sender != models.SenderBot {
		t.Fatalf("response sender = %q, want bot", botMsg.Sender)
	}
	found := false
	for _, reply := range deleteReplies {
		if botMsg.Content == reply {
			found = true
		}
	}
	if !found {
		t.Fatalf("bot reply %q not from the delete topic", botMsg.Content)
	}

	w = do(t, r, http.MethodGet, msgPath, "alice", nil)
	msgs := decode[[]models.Message](t, w)
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want exactly 2", len(msgs))
	}
	if msgs[0].Sender != models.SenderUser || msgs[1].Sender != models.SenderBot {
		t.Fatalf("order = [%s %s], want [user bot]", msgs[0].Sender, msgs[1].Sender)
	}
	if msgs[0].Content != "how do I delete this" {
		t.Fatalf("user content not trimmed: %q", msgs[0].Content)
	}

	// activity touches the conversation timestamp
	w = do(t, r, http.MethodGet, "/api/chat/conversations", "alice", nil)
	convs := decode[[]models.Conversation](t, w)
	if len(convs) != 1 || !convs[0].UpdatedAt.After(conv.UpdatedAt) {
		t.Fatalf("conversation updated_at not advanced: %v -> %v", conv.UpdatedAt, convs[0].UpdatedAt)
	}
}

func TestSendMessageValidation(t *testing.T) {
	r, _ := newServer(t)
	conv := createConversation(t, r, "alice", nil)
	msgPath := fmt.Sprintf("/api/chat/conversations/%d/messages", conv.ID)

	for _, body := range []map[string]any{nil, {"content": ""}, {"content": "   "}} {
		if w := do(t, r, http.MethodPost, msgPath, "alice", body); w.Code != http.StatusBadRequest {
			t.Fatalf("empty content %v: got %d, want 400", body, w.Code)
		}
	}
	w := do(t, r, http.MethodPost, msgPath, "alice", map[string]any{"content": strings.Repeat("m", 2001)})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("oversized content: got %d, want 400", w.Code)
	}

	// the limit counts characters: 2001 CJK characters are over it even
	// though 2000 ASCII bytes would not be
	if w = do(t, r, http.MethodPost, msgPath, "alice", map[string]any{"content": strings.Repeat("助", 2001)}); w.Code != http.StatusBadRequest {
		t.Fatalf("2001-char multibyte content: got %d, want 400", w.Code)
	}

	// nothing persisted by rejected sends
	w = do(t, r, http.MethodGet, msgPath, "alice", nil)
	if msgs := decode[[]models.Message](t, w); len(msgs) != 0 {
		t.Fatalf("rejected sends persisted %d messages", len(msgs))
	}

	// exactly 2000 multibyte characters (6000 bytes) are accepted
	if w = do(t, r, http.MethodPost, msgPath, "alice", map[string]any{"content": "帮 " + strings.Repeat("助", 1998)}); w.Code != http.StatusCreated {
		t.Fatalf("2000-char multibyte content: got %d, want 201", w.Code)
	}
}

func TestOffTopicMessageDeclined(t *testing.T) {
	r, _ := newServer(t)
	conv := createConversation(t, r, "alice", nil)
	msgPath := fmt.Sprintf("/api/chat/conversations/%d/messages", conv.ID)

	w := do(t, r, http.MethodPost, msgPath, "alice", map[string]any{"content": "what's the weather"})
	if w.Code != http.StatusCreated {
		t.Fatalf("send: got %d", w.Code)
	}
	if botMsg := decode[models.Message](t, w); botMsg.Content != declineText {
		t.Fatalf("off-topic reply = %q, want decline", botMsg.Content)
	}
}

func TestConversationOwnershipScoping(t *testing.T) {
	r, _ := newServer(t)
	conv := createConversation(t, r, "alice", nil)
	msgPath := fmt.Sprintf("/api/chat/conversations/%d/messages", conv.ID)
	convPath := fmt.Sprintf("/api/chat/conversations/%d", conv.ID)

	if w := do(t, r, http.MethodGet, msgPath, "bob", nil); w.Code != http.StatusNotFound {
		t.Fatalf("foreign list messages: got %d, want 404", w.Code)
	}
	if w := do(t, r, http.MethodPost, msgPath, "bob", map[string]any{"content": "help"}); w.Code != http.StatusNotFound {
		t.Fatalf("foreign send: got %d, want 404", w.Code)
	}
	if w := do(t, r, http.MethodDelete, convPath, "bob", nil); w.Code != http.StatusNotFound {
		t.Fatalf("foreign delete: got %d, want 404", w.Code)
	}
	w := do(t, r, http.MethodGet, "/api/chat/conversations", "bob", nil)
	if convs := decode[[]models.Conversation](t, w); len(convs) != 0 {
		t.Fatalf("foreign conversation listed")
	}
}

func TestListConversationsByActivity(t *testing.T) {
	r, _ := newServer(t)
	first := createConversation(t, r, "alice", map[string]any{"title": "first"})
	time.Sleep(2 * time.Millisecond)
	createConversation(t, r, "alice", map[string]any{"title": "second"})

	// activity on the older conversation moves it to the top
	time.Sleep(2 * time.Millisecond)
	msgPath := fmt.Sprintf("/api/chat/conversations/%d/messages", first.ID)
	if w := do(t, r, http.MethodPost, msgPath, "alice", map[string]any{"content": "help"}); w.Code != http.StatusCreated {
		t.Fatalf("send: got %d", w.Code)
	}

	w := do(t, r, http.MethodGet, "/api/chat/conversations", "alice", nil)
	convs := decode[[]models.Conversation](t, w)
	if len(convs) != 2 || convs[0].Title != "first" || convs[1].Title != "second" {
		t.Fatalf("unexpected activity order: %+v", convs)
	}
}

func TestDeleteConversationRemovesMessages(t *testing.T) {
	r, db := newServer(t)
	conv := createConversation(t, r, "alice", nil)
	msgPath := fmt.Sprintf("/api/chat/conversations/%d/messages", conv.ID)
	convPath := fmt.Sprintf("/api/chat/conversations/%d", conv.ID)

	if w := do(t, r, http.MethodPost, msgPath, "alice", map[string]any{"content": "help me"}); w.Code != http.StatusCreated {
		t.Fatalf("send: got %d", w.Code)
	}

	if w := do(t, r, http.MethodDelete, convPath, "alice", nil); w.Code != http.StatusNoContent {
		t.Fatalf("delete: got %d, want 204", w.Code)
	}
	if w := do(t, r, http.MethodDelete, convPath, "alice", nil); w.Code != http.StatusNotFound {
		t.Fatalf("second delete: got %d, want 404", w.Code)
	}

	var count int64
	if err := db.Model(&models.Message{}).Where("conversation_id = ?", conv.ID).Count(&count).Error; err != nil {
		t.Fatalf("count messages: %v", err)
	}
	if count != 0 {
		t.Fatalf("%d orphaned messages left behind", count)
	}
}

func TestRepeatedListsAreIdentical(t *testing.T) {
	r, _ := newServer(t)
	conv := createConversation(t, r, "alice", nil)
	msgPath := fmt.Sprintf("/api/chat/conversations/%d/messages", conv.ID)
	if w := do(t, r, http.MethodPost, msgPath, "alice", map[string]any{"content": "create a task"}); w.Code != http.StatusCreated {
		t.Fatalf("send: got %d", w.Code)
	}

	first := do(t, r, http.MethodGet, msgPath, "alice", nil)
	second := do(t, r, http.MethodGet, msgPath, "alice", nil)
	if first.Body.String() != second.Body.String() {
		t.Fatalf("list not idempotent:\n%s\n%s", first.Body.String(), second.Body.String())
	}
}
