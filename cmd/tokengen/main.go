// Copyright (c) 2026 Grota. All rights reserved.
// Author: plataforma@grota.com.br

// Command tokengen is a CLI for minting test credentials for local and E2E
// runs. Session tokens are normally minted by the upstream authentication
// service; this tool exists so the gateway can be exercised without it.
//
// WARNING: tokens signed here use whatever secret is passed on the command
// line (defaulting to the development fallback) and will not validate
// against a production deployment.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	redisstore "github.com/grotaveiculos/gateway/internal/platform/redis"
	"github.com/grotaveiculos/gateway/internal/session"
	"github.com/grotaveiculos/gateway/internal/verification"
)

const devSecret = "grota-insecure-dev-secret"

type tokenOutput struct {
	Token     string         `json:"token"`
	Type      string         `json:"type"`
	ExpiresIn string         `json:"expires_in"`
	Claims    map[string]any `json:"claims,omitempty"`
	Usage     string         `json:"usage,omitempty"`
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "session":
		sessionCommand(os.Args[2:])
	case "verify":
		verifyCommand(os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`tokengen - mint test credentials for the Grota portal gateway

Usage:
  tokengen <command> [flags]

Commands:
  session   Sign a portal session token (HS256) and print the cookie to set
  verify    Seed an email-verification or password-reset token in Redis

Examples:
  # Dealer session token for a known user
  tokengen session -scope lojista -subject u-7

  # Admin session signed with a specific secret
  tokengen session -scope admin -secret "$GROTA_ADMIN_SESSION_SECRET"

  # Password-reset token for an address, written to local Redis
  tokengen verify -kind redefinicao-senha -email user@example.com

Use "tokengen <command> -h" for more information about a command.`)
}

// sessionCommand signs a session token the way the upstream issuer does,
// embedding the scope claim the gateway checks during verification.
func sessionCommand(args []string) {
	flags := flag.NewFlagSet("session", flag.ExitOnError)
	scopeName := flags.String("scope", "lojista", "Portal scope: admin, lojista or cliente")
	subjectID := flags.String("subject", "", "Subject ID. Generated if empty.")
	secret := flags.String("secret", devSecret, "HS256 signing secret")
	ttl := flags.Duration("ttl", 7*24*time.Hour, "Token time-to-live")
	jsonOutput := flags.Bool("json", false, "Output as JSON")
	_ = flags.Parse(args)

	scope := session.Scope(*scopeName)
	if !scope.Valid() {
		fmt.Fprintf(os.Stderr, "Unknown scope: %s\n", *scopeName)
		os.Exit(1)
	}

	subject := *subjectID
	if subject == "" {
		subject = uuid.New().String()
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": subject,
		"scp": string(scope),
		"iat": now.Unix(),
		"exp": now.Add(*ttl).Unix(),
	})

	signed, err := token.SignedString([]byte(*secret))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error signing token: %v\n", err)
		os.Exit(1)
	}

	configs, err := session.Resolve(session.SecretSource{SharedSecret: *secret}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving session config: %v\n", err)
		os.Exit(1)
	}
	cookieName := configs[scope].CookieName

	if *jsonOutput {
		printJSON(tokenOutput{
			Token:     signed,
			Type:      "session_token",
			ExpiresIn: ttl.String(),
			Claims: map[string]any{
				"sub": subject,
				"scp": string(scope),
			},
			Usage: "Cookie: " + cookieName + "=<token>",
		})
		return
	}

	fmt.Println("Session Token (HS256)")
	fmt.Println("=====================")
	fmt.Printf("Scope:      %s\n", scope)
	fmt.Printf("Subject:    %s\n", subject)
	fmt.Printf("Expires In: %s\n", ttl)
	fmt.Println()
	fmt.Println("Token:")
	fmt.Println(signed)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Printf("  curl -H \"Cookie: %s=<token>\" http://localhost:8080/...\n", cookieName)
}

// verifyCommand seeds a verification token record directly in Redis, standing
// in for the upstream service that issues verification emails.
func verifyCommand(args []string) {
	flags := flag.NewFlagSet("verify", flag.ExitOnError)
	kindName := flags.String("kind", "verificacao", "Link kind: verificacao or redefinicao-senha")
	email := flags.String("email", "", "Email address the token is bound to (required)")
	redisURL := flags.String("redis-url", "redis://localhost:6379/0", "Redis connection URL")
	ttl := flags.Duration("ttl", 24*time.Hour, "Logical token time-to-live")
	jsonOutput := flags.Bool("json", false, "Output as JSON")
	_ = flags.Parse(args)

	if *email == "" {
		fmt.Fprintln(os.Stderr, "-email is required")
		os.Exit(1)
	}

	kind := verification.KindFromQuery(*kindName)
	tokenValue := uuid.New().String()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := redisstore.NewClient(ctx, *redisURL, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error connecting to redis: %v\n", err)
		os.Exit(1)
	}
	defer client.Close()

	store := verification.NewRedisTokenStore(client)
	err = store.Set(ctx, kind, tokenValue, verification.Record{
		Email:     *email,
		ExpiresAt: time.Now().Add(*ttl),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error storing token: %v\n", err)
		os.Exit(1)
	}

	link := fmt.Sprintf("http://localhost:8080/confirmacao?tipo=%s&email=%s", kind.QueryValue(), *email)

	if *jsonOutput {
		printJSON(tokenOutput{
			Token:     tokenValue,
			Type:      string(kind),
			ExpiresIn: ttl.String(),
			Usage:     link,
		})
		return
	}

	fmt.Println("Verification Token")
	fmt.Println("==================")
	fmt.Printf("Kind:       %s\n", kind)
	fmt.Printf("Email:      %s\n", *email)
	fmt.Printf("Expires In: %s\n", ttl)
	fmt.Println()
	fmt.Println("Token:")
	fmt.Println(tokenValue)
	fmt.Println()
	fmt.Println("Confirmation page:")
	fmt.Println("  " + link)
}

func printJSON(v any) {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}
}
