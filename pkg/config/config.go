package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/joho/godotenv"
)

var (
	AppEnv       string
	IsProduction bool

	// JWTSecret enables verified-JWT auth mode when non-empty. When empty
	// the raw bearer token is trusted as the user id (dev only).
	JWTSecret string
	Port      string

	// Database selection: MySQLDSN wins when set, otherwise sqlite on SQLitePath.
	MySQLDSN   string
	SQLitePath string

	AllowedOrigins []string

	// runtime tunables
	RateLimitWindowSeconds int
	RateLimitCapacity      int
	AuthCacheTTLSeconds    int
	AuthCacheMaxItems      int
)

var loadOnce sync.Once

// Load reads .env (when present) and the process environment into the
// package globals. Safe to call more than once; only the first call loads.
func Load() {
	loadOnce.Do(load)
}

func load() {
	AppEnv = os.Getenv("APP_ENV")

	// .env is a local convenience; never loaded in production and never fatal
	if AppEnv != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("[config] no .env file loaded: %v", err)
		}
	}

	AppEnv = os.Getenv("APP_ENV")
	IsProduction = AppEnv == "production"

	JWTSecret = os.Getenv("JWT_SECRET")
	Port = os.Getenv("PORT")
	if Port == "" {
		Port = "5000"
	}

	MySQLDSN = os.Getenv("MYSQL_DSN")
	SQLitePath = os.Getenv("SQLITE_PATH")
	if SQLitePath == "" {
		SQLitePath = "app.db"
	}

	AllowedOrigins = []string{
		"http://localhost:3000",
		"http://127.0.0.1:3000",
		"http://localhost:5173",
		"http://127.0.0.1:5173",
	}
	for _, o := range strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			AllowedOrigins = append(AllowedOrigins, o)
		}
	}

	RateLimitWindowSeconds = atoiOr(os.Getenv("RATE_LIMIT_WINDOW_SECONDS"), 10)
	RateLimitCapacity = atoiOr(os.Getenv("RATE_LIMIT_CAPACITY"), 5)
	AuthCacheTTLSeconds = atoiOr(os.Getenv("AUTH_CACHE_TTL_SECONDS"), 300)
	AuthCacheMaxItems = atoiOr(os.Getenv("AUTH_CACHE_MAX_ITEMS"), 500)

	if IsProduction && JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set in production")
	}

	log.Printf("[config] AppEnv=%s IsProduction=%v", AppEnv, IsProduction)
	if JWTSecret == "" {
		log.Printf("[config] JWT_SECRET not set: bearer tokens are trusted as user ids (INSECURE, dev only)")
	}
	log.Printf("[config] RateLimit window=%ds capacity=%d authCacheTTL=%ds",
		RateLimitWindowSeconds, RateLimitCapacity, AuthCacheTTLSeconds)
}

func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}
