// Command tokengen mints a signed HS256 bearer token for local testing of
// the JWT auth mode. The secret comes from JWT_SECRET (or -secret).
//
//	go run ./cmd/tokengen -sub alice -ttl 24h
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"TaskPilot/pkg/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func main() {
	sub := flag.String("sub", "", "subject (user id) for the token")
	secret := flag.String("secret", "", "signing secret (defaults to JWT_SECRET)")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	if *sub == "" {
		log.Fatal("tokengen: -sub is required")
	}

	key := *secret
	if key == "" {
		config.Load()
		key = config.JWTSecret
	}
	if key == "" {
		log.Fatal("tokengen: no secret; set JWT_SECRET or pass -secret")
	}

	claims := jwt.MapClaims{
		"sub": *sub,
		"jti": uuid.NewString(),
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(*ttl).Unix(),
	}
	tokenStr, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	if err != nil {
		log.Fatalf("tokengen: sign: %v", err)
	}
	fmt.Println(tokenStr)
}
