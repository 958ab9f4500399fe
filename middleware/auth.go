package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"TaskPilot/pkg/cache"
	"TaskPilot/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const ContextUserIDKey = "current_user_id"

var ErrInvalidToken = errors.New("invalid token")

// ResolveUserID turns a bearer token into a user id using the active auth
// mode. With JWT_SECRET set the token must be a valid HS256 JWT carrying a
// "sub" or "user_id" claim; without a secret the raw token is trusted as
// the user id (dev fallback). Route code never branches on the mode.
func ResolveUserID(tokenStr string) (string, error) {
	if tokenStr == "" {
		return "", ErrInvalidToken
	}
	if config.JWTSecret == "" {
		return tokenStr, nil
	}

	ck := cache.KeyFromStrings("auth", tokenStr)
	if v, ok := cache.Default().Get(ck); ok {
		if uid, ok2 := v.(string); ok2 && uid != "" {
			return uid, nil
		}
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		// only accept HMAC signing
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return []byte(config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}

	uid := claimString(claims, "sub")
	if uid == "" {
		uid = claimString(claims, "user_id")
	}
	if uid == "" {
		return "", ErrInvalidToken
	}

	cache.Default().Set(ck, uid, time.Duration(config.AuthCacheTTLSeconds)*time.Second)
	return uid, nil
}

func claimString(claims jwt.MapClaims, key string) string {
	switch v := claims[key].(type) {
	case string:
		return v
	case float64:
		// numeric claims decode as float64
		return strconv.Itoa(int(v))
	}
	return ""
}

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "missing authorization header"})
			return
		}
		parts := strings.Fields(auth)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "invalid authorization header"})
			return
		}

		uid, err := ResolveUserID(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "invalid token"})
			return
		}

		c.Set(ContextUserIDKey, uid)
		c.Next()
	}
}

// CurrentUserID returns the resolved caller id set by AuthMiddleware.
func CurrentUserID(c *gin.Context) string {
	v, _ := c.Get(ContextUserIDKey)
	uid, _ := v.(string)
	return uid
}
