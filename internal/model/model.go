// Package model define os modelos de domínio.
package model

import "time"

// Item é uma linha reconhecida da tabela colada pelo usuário.
// Imutável após o parse; a ordem segue a ordem das linhas de entrada.
type Item struct {
	ItemNumber   int    `json:"item"`
	DisplayValue string `json:"valor"`
}

// TemplateModel é o nome de um modelo de plaquinha suportado.
type TemplateModel string

const (
	// ModelWellington é o modelo "wellington".
	ModelWellington TemplateModel = "wellington"
	// ModelPatricia é o modelo "patricia". Também é o modelo de fallback
	// para nomes desconhecidos, reproduzindo a seleção de caminho original.
	ModelPatricia TemplateModel = "patricia"
)

// User representa uma conta de usuário.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	CreatedAt    time.Time
}

// LoginEntry é um registro de auditoria de login (append-only).
// Entradas com mais de 60 dias são elegíveis para remoção a cada novo login.
type LoginEntry struct {
	ID        string
	UserID    string
	Email     string
	FirstName string
	LastName  string
	CreatedAt time.Time
}
