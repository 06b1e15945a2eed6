package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/yash-jivani/DevNetworks/pkg/auth"
	"github.com/yash-jivani/DevNetworks/pkg/gravatar"
)

// Seeds (or resets the password of) a user account. Intended for local
// development and E2E test setup.
func main() {
	fmt.Println("seeding user into database...")

	if err := godotenv.Load(); err != nil {
		log.Println("warning: .env file not found, use system environment variables.")
	}

	dsn := os.Getenv("DB_DSN")
	name := os.Getenv("SEED_NAME")
	email := os.Getenv("SEED_EMAIL")
	password := os.Getenv("SEED_PASSWORD")

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatalf("cannot hash password: %v", err)
	}

	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		log.Fatalf("cannot connect DB: %v", err)
	}
	defer pool.Close()

	query := `
		INSERT INTO users (id, name, email, password_hash, avatar_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (email) DO UPDATE SET password_hash = $4
	`
	_, err = pool.Exec(context.Background(), query,
		uuid.New(), name, email, hash, gravatar.URL(email), time.Now().UTC())
	if err != nil {
		log.Fatalf("cannot add user: %v", err)
	}

	fmt.Printf("seeded user '%s' successfully!\n", email)
}
