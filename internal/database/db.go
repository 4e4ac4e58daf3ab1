package database

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// DriverPostgres e DriverSQLite identificam o motor escolhido.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Open abre a conexão com o banco. Com databaseURL definido usa
// PostgreSQL; caso contrário usa o SQLite embutido no arquivo dbPath.
// sql.Open não conecta de fato; use db.Ping() para validar.
// Devolve também o nome do driver para o rebind de placeholders.
func Open(databaseURL, dbPath string) (*sql.DB, string, error) {
	if databaseURL != "" {
		db, err := sql.Open("postgres", databaseURL)
		if err != nil {
			return nil, "", fmt.Errorf("failed to open postgres: %w", err)
		}
		return db, DriverPostgres, nil
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open sqlite: %w", err)
	}
	// o driver embutido não suporta escrita concorrente
	db.SetMaxOpenConns(1)
	return db, DriverSQLite, nil
}
