// Package repository define as interfaces de persistência e suas
// implementações SQL (PostgreSQL ou SQLite embutido).
package repository

import (
	"context"
	"time"

	"github.com/pwavaliacoes/plaquinhas/internal/model"
)

// UserRepository é a interface de persistência de usuários.
type UserRepository interface {
	// FindByEmail busca um usuário pelo e-mail normalizado.
	// Devolve nil quando não encontrado.
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// Create insere um novo usuário.
	Create(ctx context.Context, user *model.User) error

	// UpdatePassword troca o hash de senha do usuário.
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
}

// LoginEntryRepository é a interface de persistência do histórico de logins.
type LoginEntryRepository interface {
	// Create insere um registro de login.
	Create(ctx context.Context, entry *model.LoginEntry) error

	// DeleteOlderThan remove registros anteriores ao corte.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) error

	// ListSince lista registros a partir do corte, do mais recente para o
	// mais antigo.
	ListSince(ctx context.Context, cutoff time.Time) ([]*model.LoginEntry, error)
}
