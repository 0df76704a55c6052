package pgrepo

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// MigrationsDir é o diretório das migrações dentro do FS embutido.
const MigrationsDir = "migrations"

// Migrate executa o comando goose (up, down, status, ...) sobre as migrações embutidas.
func Migrate(db *sql.DB, command string, args ...string) error {
	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose: %w", err)
	}
	if err := goose.Run(command, db, MigrationsDir, args...); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}
