package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/pwavaliacoes/plaquinhas/internal/model"
)

// AccountServiceInterface é o contrato do serviço de contas usado pelos
// handlers.
type AccountServiceInterface interface {
	Register(ctx context.Context, email, password, firstName, lastName string) (*model.User, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	ResetPassword(ctx context.Context, email, newPassword string) error
	ListRecentLogins(ctx context.Context) ([]*model.LoginEntry, error)
}

// AccountHandler atende as rotas de conta e o painel administrativo.
type AccountHandler struct {
	service AccountServiceInterface
}

// NewAccountHandler cria o AccountHandler.
func NewAccountHandler(service AccountServiceInterface) *AccountHandler {
	return &AccountHandler{service: service}
}

// registerRequest é o corpo de POST /api/register.
type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Register cadastra um novo usuário.
// POST /api/register
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidInputError("Parâmetros inválidos"))
		return
	}

	if _, err := h.service.Register(r.Context(), req.Email, req.Password, req.FirstName, req.LastName); err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// loginRequest é o corpo de POST /api/login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login autentica e devolve o token de sessão.
// POST /api/login
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidInputError("Parâmetros inválidos"))
		return
	}

	user, signed, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ok":    true,
		"token": signed,
		"email": user.Email,
	})
}

// resetPasswordRequest é o corpo de POST /api/reset-password.
type resetPasswordRequest struct {
	Email       string `json:"email"`
	NewPassword string `json:"newPassword"`
}

// ResetPassword redefine a senha do usuário.
// POST /api/reset-password
func (h *AccountHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidInputError("Parâmetros inválidos"))
		return
	}

	if err := h.service.ResetPassword(r.Context(), req.Email, req.NewPassword); err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// loginEntryResponse é uma entrada do histórico no painel administrativo.
type loginEntryResponse struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	CreatedAt string `json:"createdAt"`
}

// ListLogins devolve o histórico de logins da janela de retenção.
// GET /api/admin/logins (atrás dos middlewares de auth e admin)
func (h *AccountHandler) ListLogins(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.ListRecentLogins(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	out := make([]loginEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, loginEntryResponse{
			Email:     e.Email,
			FirstName: e.FirstName,
			LastName:  e.LastName,
			CreatedAt: e.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"entries": out,
	})
}
