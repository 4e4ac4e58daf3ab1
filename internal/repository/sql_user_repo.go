package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pwavaliacoes/plaquinhas/internal/model"
)

// SQLUserRepo é o repositório de usuários sobre database/sql.
type SQLUserRepo struct {
	db     *sql.DB
	driver string
}

// NewSQLUserRepo cria o SQLUserRepo. driver é "postgres" ou "sqlite".
func NewSQLUserRepo(db *sql.DB, driver string) *SQLUserRepo {
	return &SQLUserRepo{db: db, driver: driver}
}

// FindByEmail busca um usuário pelo e-mail normalizado.
// Devolve nil quando não encontrado.
func (r *SQLUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	user := &model.User{}
	var createdAt string
	err := r.db.QueryRowContext(ctx,
		rebind(r.driver, `SELECT id, email, password_hash, first_name, last_name, created_at
		 FROM users WHERE email = $1`),
		email,
	).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.FirstName, &user.LastName, &createdAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}

	user.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse user created_at: %w", err)
	}
	return user, nil
}

// Create insere um novo usuário.
func (r *SQLUserRepo) Create(ctx context.Context, user *model.User) error {
	_, err := r.db.ExecContext(ctx,
		rebind(r.driver, `INSERT INTO users (id, email, password_hash, first_name, last_name, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`),
		user.ID, user.Email, user.PasswordHash, user.FirstName, user.LastName, formatTime(user.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// UpdatePassword troca o hash de senha do usuário.
func (r *SQLUserRepo) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	result, err := r.db.ExecContext(ctx,
		rebind(r.driver, `UPDATE users SET password_hash = $1 WHERE id = $2`),
		passwordHash, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("usuário não encontrado: %s", userID)
	}
	return nil
}

// compile-time interface check
var _ UserRepository = (*SQLUserRepo)(nil)
