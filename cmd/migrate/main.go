package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"

	"wolves-hub/internal/config"
	"wolves-hub/internal/repository"
	"wolves-hub/internal/service/auth"
	"wolves-hub/pkg/database"
	"wolves-hub/pkg/logger"
)

const usage = "Usage: go run ./cmd/migrate [up|drop|seed|admin]"

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(1)
	}

	command := os.Args[1]
	ctx := context.Background()

	switch command {
	case "up":
		withConn(ctx, dbURL, func(conn *pgx.Conn) error {
			return repository.Migrate(ctx, conn)
		})
		fmt.Println("✅ All tables created successfully")

	case "drop":
		withConn(ctx, dbURL, func(conn *pgx.Conn) error {
			return repository.DropSchema(ctx, conn)
		})
		fmt.Println("✅ All tables dropped successfully")

	case "seed":
		withConn(ctx, dbURL, func(conn *pgx.Conn) error {
			inserted, err := repository.Seed(ctx, conn)
			if err != nil {
				return err
			}
			fmt.Printf("  Inserted %d players\n", inserted)
			return nil
		})
		fmt.Println("✅ Data seeded successfully")

	case "admin":
		if err := ensureAdmin(ctx, dbURL); err != nil {
			log.Fatalf("Failed to create admin user: %v", err)
		}
		fmt.Println("✅ Admin user ready")

	default:
		fmt.Printf("Unknown command: %s\n", command)
		fmt.Println(usage)
		os.Exit(1)
	}
}

func withConn(ctx context.Context, dbURL string, fn func(conn *pgx.Conn) error) {
	conn, err := pgx.Connect(ctx, dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer conn.Close(ctx)

	if err := fn(conn); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
}

// ensureAdmin creates the operator account from ADMIN_EMAIL and
// ADMIN_PASSWORD when the users table is empty
func ensureAdmin(ctx context.Context, dbURL string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := database.NewPostgresDB(ctx, dbURL)
	if err != nil {
		return err
	}
	defer db.Close()

	authService := auth.NewService(repository.NewUserRepository(db), nil, cfg.JWTSecret, cfg.JWTExpiresIn, logger.NewNop())
	return authService.EnsureAdminUser(ctx, cfg.AdminEmail, cfg.AdminPassword)
}
