package chatbot

import (
	"log"
	"math/rand/v2"
	"strings"
)

// Service is the rule-based reply engine for task-management chat. Matching
// is deterministic (case-insensitive substring / word overlap); only the
// pick among a topic's candidate replies is random.
type Service struct {
	pick func(n int) int
}

func NewService() *Service {
	return &Service{pick: rand.IntN}
}

// Reply computes the bot answer for a raw user message. It never panics:
// any internal failure degrades to a fixed fail-safe reply so a broken
// matcher cannot abort message persistence in the caller.
func (s *Service) Reply(message string) (reply string) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[chatbot] recovered: %v", r)
			reply = failSafeReply
		}
	}()

	normalized := strings.ToLower(strings.TrimSpace(message))
	if normalized == "" {
		return emptyPromptReply
	}

	if !s.relevant(normalized) {
		return declineReply
	}

	for _, topic := range catalog {
		if strings.Contains(normalized, topic.Key) || wordOverlap(topic.Key, normalized) {
			return s.choose(topic.Replies)
		}
	}

	// In-domain but no topic hit: answer generically about tasks.
	if replies := topicReplies("task"); len(replies) > 0 {
		return s.choose(replies)
	}
	return s.choose(fallbackReplies)
}

// relevant reports whether the normalized message mentions any task-domain
// keyword. Messages that don't are declined before the matcher runs.
func (s *Service) relevant(normalized string) bool {
	for _, k := range domainKeywords {
		if strings.Contains(normalized, k) {
			return true
		}
	}
	return false
}

// wordOverlap matches loose phrasings: the topic key and the message share
// at least one whitespace-separated word. Deliberately permissive; the
// relevance gate already bounds what gets here.
func wordOverlap(key, message string) bool {
	keyWords := strings.Fields(key)
	msgWords := make(map[string]struct{})
	for _, w := range strings.Fields(message) {
		msgWords[w] = struct{}{}
	}
	for _, w := range keyWords {
		if _, ok := msgWords[w]; ok {
			return true
		}
	}
	return false
}

func (s *Service) choose(replies []string) string {
	return replies[s.pick(len(replies))]
}

func topicReplies(key string) []string {
	for _, t := range catalog {
		if t.Key == key {
			return t.Replies
		}
	}
	return nil
}
