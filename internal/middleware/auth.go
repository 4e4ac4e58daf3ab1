package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pwavaliacoes/plaquinhas/internal/model"
	"github.com/pwavaliacoes/plaquinhas/internal/token"
)

// writeAuthError escreve um APIError de autenticação como JSON.
func writeAuthError(w http.ResponseWriter, status int, apiErr *model.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"code":     apiErr.Code,
		"message":  apiErr.Message,
		"category": apiErr.Category,
		"action":   apiErr.Action,
	})
}

// bearerToken extrai o token do cabeçalho Authorization.
func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(auth) > len(prefix) && strings.EqualFold(auth[:len(prefix)], prefix) {
		return auth[len(prefix):]
	}
	return ""
}

// NewAuthMiddleware devolve o middleware de autenticação por token Bearer.
// Token ausente ou inválido responde 401; as claims válidas ficam
// disponíveis no contexto da requisição.
func NewAuthMiddleware(tokens *token.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				writeAuthError(w, http.StatusUnauthorized, model.NewUnauthorizedError())
				return
			}

			claims, err := tokens.Parse(raw)
			if err != nil {
				writeAuthError(w, http.StatusUnauthorized, model.NewUnauthorizedError())
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithClaims(r.Context(), claims)))
		})
	}
}

// NewAdminMiddleware devolve o middleware que restringe o acesso à conta
// administrativa. Sem ADMIN_EMAIL configurado, nenhum acesso é permitido.
// Deve ser encadeado após NewAuthMiddleware.
func NewAdminMiddleware(adminEmail string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := ClaimsFromContext(r.Context())
			if err != nil {
				writeAuthError(w, http.StatusUnauthorized, model.NewUnauthorizedError())
				return
			}
			if adminEmail == "" || !strings.EqualFold(claims.Email, adminEmail) {
				writeAuthError(w, http.StatusForbidden, model.NewForbiddenError())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
