package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"cinecatalog/internal/pkg/database"
	"cinecatalog/internal/repository/pgrepo"
)

// migrateConfig é o subconjunto da configuração usado pelo runner de migrações.
type migrateConfig struct {
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`
}

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️ Warning: .env file not found or failed to read. Loading configs from system environment only: %v", err)
	}

	var cfg migrateConfig
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("goose: %v", err)
	}

	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Connect to the database
	db, err := database.NewPostgresDB(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("goose: failed to connect to DB: %v\n", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Fatalf("goose: failed to close DB: %v\n", err)
		}
	}()

	arguments := flag.Args()
	if len(arguments) == 0 {
		arguments = []string{"up"} // Default to 'up' if no command is provided
	}

	command := arguments[0]
	var args []string
	if len(arguments) > 1 {
		args = arguments[1:]
	}

	if err := pgrepo.Migrate(db, command, args...); err != nil {
		log.Fatalf("goose %v: %v", command, err)
	}

	fmt.Printf("goose %s success\n", command)
}
