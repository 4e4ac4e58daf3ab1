package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pwavaliacoes/plaquinhas/internal/model"
)

// stubAccountService devolve respostas fixas para os handlers de conta.
type stubAccountService struct {
	registerErr error
	loginUser   *model.User
	loginToken  string
	loginErr    error
	resetErr    error
	entries     []*model.LoginEntry
	listErr     error
}

func (s *stubAccountService) Register(_ context.Context, email, password, firstName, lastName string) (*model.User, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return &model.User{ID: "user-1", Email: email}, nil
}

func (s *stubAccountService) Login(_ context.Context, email, password string) (*model.User, string, error) {
	if s.loginErr != nil {
		return nil, "", s.loginErr
	}
	return s.loginUser, s.loginToken, nil
}

func (s *stubAccountService) ResetPassword(_ context.Context, email, newPassword string) error {
	return s.resetErr
}

func (s *stubAccountService) ListRecentLogins(_ context.Context) ([]*model.LoginEntry, error) {
	return s.entries, s.listErr
}

func postJSON(t *testing.T, h http.HandlerFunc, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

// TestAccountHandler_RegisterOK verifica o cadastro bem sucedido.
func TestAccountHandler_RegisterOK(t *testing.T) {
	h := NewAccountHandler(&stubAccountService{})

	rec := postJSON(t, h.Register, "/api/register",
		`{"email":"ana@example.com","password":"senha123","firstName":"Ana","lastName":"Silva"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("esperado 200, resultado %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("corpo não é JSON: %v", err)
	}
	if body["ok"] != true {
		t.Errorf("esperado ok=true: %v", body)
	}
}

// TestAccountHandler_RegisterConflict verifica 409 para e-mail duplicado.
func TestAccountHandler_RegisterConflict(t *testing.T) {
	h := NewAccountHandler(&stubAccountService{registerErr: model.NewEmailConflictError()})

	rec := postJSON(t, h.Register, "/api/register",
		`{"email":"ana@example.com","password":"senha123"}`)

	if rec.Code != http.StatusConflict {
		t.Fatalf("esperado 409, resultado %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), model.ErrCodeEmailConflict) {
		t.Errorf("código ausente do corpo: %s", rec.Body.String())
	}
}

// TestAccountHandler_RegisterMalformedBody verifica 400 para JSON inválido.
func TestAccountHandler_RegisterMalformedBody(t *testing.T) {
	h := NewAccountHandler(&stubAccountService{})

	rec := postJSON(t, h.Register, "/api/register", `{lixo`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("esperado 400, resultado %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Parâmetros inválidos") {
		t.Errorf("mensagem divergente: %s", rec.Body.String())
	}
}

// TestAccountHandler_LoginOK verifica o token e o e-mail na resposta.
func TestAccountHandler_LoginOK(t *testing.T) {
	h := NewAccountHandler(&stubAccountService{
		loginUser:  &model.User{ID: "user-1", Email: "ana@example.com"},
		loginToken: "token-de-teste",
	})

	rec := postJSON(t, h.Login, "/api/login",
		`{"email":"ana@example.com","password":"senha123"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("esperado 200, resultado %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("corpo não é JSON: %v", err)
	}
	if body["token"] != "token-de-teste" || body["email"] != "ana@example.com" {
		t.Errorf("resposta divergente: %v", body)
	}
}

// TestAccountHandler_LoginUnknownUser verifica 404.
func TestAccountHandler_LoginUnknownUser(t *testing.T) {
	h := NewAccountHandler(&stubAccountService{loginErr: model.NewUserNotFoundError()})

	rec := postJSON(t, h.Login, "/api/login",
		`{"email":"ninguem@example.com","password":"senha123"}`)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("esperado 404, resultado %d", rec.Code)
	}
}

// TestAccountHandler_LoginWrongPassword verifica 401.
func TestAccountHandler_LoginWrongPassword(t *testing.T) {
	h := NewAccountHandler(&stubAccountService{loginErr: model.NewWrongPasswordError()})

	rec := postJSON(t, h.Login, "/api/login",
		`{"email":"ana@example.com","password":"errada"}`)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("esperado 401, resultado %d", rec.Code)
	}
}

// TestAccountHandler_ResetPasswordOK verifica o caminho feliz.
func TestAccountHandler_ResetPasswordOK(t *testing.T) {
	h := NewAccountHandler(&stubAccountService{})

	rec := postJSON(t, h.ResetPassword, "/api/reset-password",
		`{"email":"ana@example.com","newPassword":"nova456"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("esperado 200, resultado %d", rec.Code)
	}
}

// TestAccountHandler_ListLogins verifica a serialização do histórico.
func TestAccountHandler_ListLogins(t *testing.T) {
	created := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	h := NewAccountHandler(&stubAccountService{
		entries: []*model.LoginEntry{
			{Email: "ana@example.com", FirstName: "Ana", LastName: "Silva", CreatedAt: created},
		},
	})

	rec := httptest.NewRecorder()
	h.ListLogins(rec, httptest.NewRequest(http.MethodGet, "/api/admin/logins", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("esperado 200, resultado %d", rec.Code)
	}
	var body struct {
		OK      bool `json:"ok"`
		Entries []struct {
			Email     string `json:"email"`
			FirstName string `json:"firstName"`
			CreatedAt string `json:"createdAt"`
		} `json:"entries"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("corpo não é JSON: %v", err)
	}
	if len(body.Entries) != 1 {
		t.Fatalf("esperada 1 entrada, resultado %d", len(body.Entries))
	}
	if body.Entries[0].Email != "ana@example.com" || body.Entries[0].CreatedAt != "2025-08-01T12:00:00Z" {
		t.Errorf("entrada divergente: %+v", body.Entries[0])
	}
}

// TestAccountHandler_ListLoginsEmpty verifica a lista vazia serializada
// como [] e não null.
func TestAccountHandler_ListLoginsEmpty(t *testing.T) {
	h := NewAccountHandler(&stubAccountService{})

	rec := httptest.NewRecorder()
	h.ListLogins(rec, httptest.NewRequest(http.MethodGet, "/api/admin/logins", nil))

	if !strings.Contains(rec.Body.String(), `"entries":[]`) {
		t.Errorf("esperado entries vazio como []: %s", rec.Body.String())
	}
}
