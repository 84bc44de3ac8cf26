package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"connector-service/internal/webhook"
)

func main() {
	var migrationsPath string
	flag.StringVar(&migrationsPath, "path", "migrations", "migrations directory")
	flag.Parse()

	_ = godotenv.Load()

	dsn := os.Getenv("WEBHOOK_POSTGRES_DSN")
	if dsn == "" {
		log.Fatal("WEBHOOK_POSTGRES_DSN environment variable is required")
	}

	fmt.Printf("running webhook store migrations from %s\n", migrationsPath)

	if err := webhook.Migrate(migrationsPath, dsn); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	fmt.Println("migrations completed")
}
