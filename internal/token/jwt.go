// Package token emite e valida tokens JWT de sessão assinados com HMAC.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pwavaliacoes/plaquinhas/internal/model"
)

// defaultTTL é a validade padrão do token de sessão.
const defaultTTL = 7 * 24 * time.Hour

// Claims são as reivindicações carregadas pelo token: o id do usuário em
// sub e o e-mail em uma claim própria.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// Manager emite e valida tokens.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager cria o gerenciador com a validade padrão de 7 dias.
func NewManager(secret string) *Manager {
	return &Manager{secret: []byte(secret), ttl: defaultTTL}
}

// Generate emite um token assinado para o usuário.
func (m *Manager) Generate(userID, email string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		Email: email,
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Parse valida a assinatura e a validade do token e devolve as claims.
// Qualquer falha vira UNAUTHORIZED.
func (m *Manager) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	t, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !t.Valid {
		return nil, model.NewUnauthorizedError()
	}
	return claims, nil
}
