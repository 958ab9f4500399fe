package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type bucket struct {
	tokens     int
	lastRefill time.Time
}

var (
	rlMu        sync.Mutex
	buckets     = map[string]*bucket{}
	window      = 10 * time.Second
	capacity    = 5
	refillPerWd = capacity
)

func SetRateLimitConfig(win time.Duration, cap int) {
	rlMu.Lock()
	window = win
	capacity = cap
	refillPerWd = cap
	buckets = map[string]*bucket{}
	rlMu.Unlock()
}

func clientIP(c *gin.Context) string {
	ip := strings.TrimSpace(c.ClientIP())
	if ip == "" {
		host, _, _ := net.SplitHostPort(strings.TrimSpace(c.Request.RemoteAddr))
		ip = host
	}
	return ip
}

func userKey(c *gin.Context) string {
	uidRaw, _ := c.Get(ContextUserIDKey)
	uid, _ := uidRaw.(string)
	return uid + "@" + clientIP(c)
}

// RateLimit applies a per user@ip token bucket. Used on chat send endpoints
// so a single caller cannot hammer the reply pipeline.
func RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !Allow(userKey(c)) {
			c.Header("Retry-After", strconv.Itoa(int(window.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"msg": "too many requests"})
			return
		}
		c.Next()
	}
}

// Allow consumes one token from the bucket for key, refilling
// proportionally to elapsed time.
func Allow(key string) bool {
	now := time.Now()

	rlMu.Lock()
	defer rlMu.Unlock()
	b := buckets[key]
	if b == nil {
		b = &bucket{tokens: capacity, lastRefill: now}
		buckets[key] = b
	}
	elapsed := now.Sub(b.lastRefill)
	if elapsed > 0 {
		add := int(float64(refillPerWd) * (float64(elapsed) / float64(window)))
		if add > 0 {
			b.tokens += add
			if b.tokens > capacity {
				b.tokens = capacity
			}
			b.lastRefill = now
		}
	}
	if b.tokens <= 0 {
		return false
	}
	b.tokens--
	return true
}
