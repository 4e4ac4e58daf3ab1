package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pwavaliacoes/plaquinhas/internal/model"
)

// SQLLoginEntryRepo é o repositório do histórico de logins sobre database/sql.
type SQLLoginEntryRepo struct {
	db     *sql.DB
	driver string
}

// NewSQLLoginEntryRepo cria o SQLLoginEntryRepo. driver é "postgres" ou "sqlite".
func NewSQLLoginEntryRepo(db *sql.DB, driver string) *SQLLoginEntryRepo {
	return &SQLLoginEntryRepo{db: db, driver: driver}
}

// Create insere um registro de login.
func (r *SQLLoginEntryRepo) Create(ctx context.Context, entry *model.LoginEntry) error {
	_, err := r.db.ExecContext(ctx,
		rebind(r.driver, `INSERT INTO login_entries (id, user_id, email, first_name, last_name, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`),
		entry.ID, entry.UserID, entry.Email, entry.FirstName, entry.LastName, formatTime(entry.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert login entry: %w", err)
	}
	return nil
}

// DeleteOlderThan remove registros anteriores ao corte.
func (r *SQLLoginEntryRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) error {
	_, err := r.db.ExecContext(ctx,
		rebind(r.driver, `DELETE FROM login_entries WHERE created_at < $1`),
		formatTime(cutoff),
	)
	if err != nil {
		return fmt.Errorf("failed to delete old login entries: %w", err)
	}
	return nil
}

// ListSince lista registros a partir do corte, do mais recente para o mais
// antigo.
func (r *SQLLoginEntryRepo) ListSince(ctx context.Context, cutoff time.Time) ([]*model.LoginEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		rebind(r.driver, `SELECT id, user_id, email, first_name, last_name, created_at
		 FROM login_entries WHERE created_at >= $1 ORDER BY created_at DESC`),
		formatTime(cutoff),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list login entries: %w", err)
	}
	defer rows.Close()

	var entries []*model.LoginEntry
	for rows.Next() {
		entry := &model.LoginEntry{}
		var createdAt string
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.Email, &entry.FirstName, &entry.LastName, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan login entry: %w", err)
		}
		entry.CreatedAt, err = parseTime(createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse login entry created_at: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate login entries: %w", err)
	}
	return entries, nil
}

// compile-time interface check
var _ LoginEntryRepository = (*SQLLoginEntryRepo)(nil)
