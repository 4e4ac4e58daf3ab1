// Package database fornece a conexão com o banco e as migrações.
package database

import (
	"embed"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

// NewMigrator cria a instância de migração para o banco configurado.
// Com databaseURL definido migra o PostgreSQL; caso contrário o SQLite
// em dbPath. Cada motor tem seu próprio diretório de migrações.
func NewMigrator(databaseURL, dbPath string) (*migrate.Migrate, error) {
	dir := "migrations/postgres"
	target := databaseURL
	if databaseURL == "" {
		dir = "migrations/sqlite"
		target = "sqlite://" + dbPath
	}

	source, err := iofs.New(migrationsFS, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, target)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrator: %w", err)
	}

	return m, nil
}

// RunMigrations aplica todas as migrações pendentes.
// Banco já atualizado não é erro.
func RunMigrations(databaseURL, dbPath string) error {
	m, err := NewMigrator(databaseURL, dbPath)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}
