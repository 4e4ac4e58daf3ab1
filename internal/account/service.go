// Package account contém a lógica de domínio de contas: cadastro, login,
// redefinição de senha e o histórico de logins para o painel administrativo.
package account

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/pwavaliacoes/plaquinhas/internal/model"
	"github.com/pwavaliacoes/plaquinhas/internal/repository"
	"github.com/pwavaliacoes/plaquinhas/internal/token"
)

// bcryptCost é o custo do hash de senha.
const bcryptCost = 10

// retentionDays é a janela de retenção do histórico de logins.
const retentionDays = 60

// Service é a camada de serviço de contas.
type Service struct {
	userRepo  repository.UserRepository
	loginRepo repository.LoginEntryRepository
	tokens    *token.Manager
	now       func() time.Time
}

// NewService cria o Service.
func NewService(
	userRepo repository.UserRepository,
	loginRepo repository.LoginEntryRepository,
	tokens *token.Manager,
) *Service {
	return &Service{
		userRepo:  userRepo,
		loginRepo: loginRepo,
		tokens:    tokens,
		now:       time.Now,
	}
}

// normalizeEmail remove espaços nas pontas e baixa a caixa.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register cadastra um novo usuário e devolve o registro criado.
func (s *Service) Register(ctx context.Context, email, password, firstName, lastName string) (*model.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, model.NewInvalidInputError("e-mail e senha são obrigatórios")
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}
	if existing != nil {
		return nil, model.NewEmailConflictError()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(firstName),
		LastName:     strings.TrimSpace(lastName),
		CreatedAt:    s.now(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("usuário cadastrado",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
	)
	return user, nil
}

// Login autentica o usuário e devolve o token de sessão junto com o
// registro. Cada login bem sucedido grava uma entrada no histórico e poda
// as entradas fora da janela de retenção; a poda é melhor-esforço e só
// gera log em caso de falha.
func (s *Service) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, "", model.NewInvalidInputError("e-mail e senha são obrigatórios")
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, "", model.NewUserNotFoundError()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", model.NewWrongPasswordError()
	}

	signed, err := s.tokens.Generate(user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	now := s.now()
	entry := &model.LoginEntry{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		CreatedAt: now,
	}
	if err := s.loginRepo.Create(ctx, entry); err != nil {
		return nil, "", fmt.Errorf("failed to record login: %w", err)
	}

	// poda melhor-esforço da janela de retenção
	cutoff := now.AddDate(0, 0, -retentionDays)
	if err := s.loginRepo.DeleteOlderThan(ctx, cutoff); err != nil {
		slog.Warn("falha ao podar histórico de logins",
			slog.String("error", err.Error()),
		)
	}

	slog.Info("login realizado",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
	)
	return user, signed, nil
}

// ResetPassword troca a senha do usuário identificado pelo e-mail.
func (s *Service) ResetPassword(ctx context.Context, email, newPassword string) error {
	email = normalizeEmail(email)
	if email == "" || newPassword == "" {
		return model.NewInvalidInputError("e-mail e nova senha são obrigatórios")
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return model.NewUserNotFoundError()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	slog.Info("senha redefinida",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
	)
	return nil
}

// ListRecentLogins devolve o histórico dentro da janela de retenção, do
// mais recente para o mais antigo.
func (s *Service) ListRecentLogins(ctx context.Context) ([]*model.LoginEntry, error) {
	cutoff := s.now().AddDate(0, 0, -retentionDays)
	entries, err := s.loginRepo.ListSince(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to list login history: %w", err)
	}
	return entries, nil
}
