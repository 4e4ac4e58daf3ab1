// Package middleware contém os middlewares HTTP: CORS, logging, recovery,
// autenticação JWT e limitação de taxa por IP.
package middleware

import (
	"context"
	"errors"

	"github.com/pwavaliacoes/plaquinhas/internal/token"
)

type contextKey string

const claimsKey contextKey = "claims"

// ErrNoClaims indica que o contexto não carrega claims autenticadas.
var ErrNoClaims = errors.New("contexto sem claims de autenticação")

// ContextWithClaims devolve um contexto carregando as claims do token.
func ContextWithClaims(ctx context.Context, claims *token.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ClaimsFromContext extrai as claims do contexto.
func ClaimsFromContext(ctx context.Context) (*token.Claims, error) {
	claims, ok := ctx.Value(claimsKey).(*token.Claims)
	if !ok || claims == nil {
		return nil, ErrNoClaims
	}
	return claims, nil
}
