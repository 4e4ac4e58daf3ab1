// Package config carrega a configuração da aplicação a partir do ambiente.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config guarda a configuração completa da aplicação.
// É lida uma vez na inicialização e tratada como imutável.
type Config struct {
	// Server
	ServerPort string

	// Banco: DATABASE_URL usa PostgreSQL; vazio usa o SQLite embutido
	// no arquivo DBPath.
	DatabaseURL string
	DBPath      string

	// Auth
	JWTSecret  string
	AdminEmail string

	// Conversão PDF
	GotenbergURL string
	SofficeBin   string

	// Documentos
	TemplateDir string

	// Frontend estático; vazio desabilita
	StaticDir string

	// CORS
	CORSAllowedOrigin string

	// Rate limit (requisições por minuto, por IP)
	RateLimitGeneral  int
	RateLimitGenerate int

	// Shutdown
	ShutdownTimeout time.Duration
}

// Load lê a configuração do ambiente. Todos os campos têm padrão; o
// segredo JWT padrão serve apenas para desenvolvimento.
func Load() *Config {
	return &Config{
		ServerPort:        getEnvString("SERVER_PORT", "4000"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		DBPath:            getEnvString("DB_PATH", "users.db"),
		JWTSecret:         getEnvString("JWT_SECRET", "dev-secret-change"),
		AdminEmail:        os.Getenv("ADMIN_EMAIL"),
		GotenbergURL:      os.Getenv("GOTENBERG_URL"),
		SofficeBin:        getEnvString("SOFFICE_BIN", "soffice"),
		TemplateDir:       getEnvString("TEMPLATE_DIR", "modelo_placas"),
		StaticDir:         os.Getenv("STATIC_DIR"),
		CORSAllowedOrigin: getEnvString("CORS_ALLOWED_ORIGIN", "*"),
		RateLimitGeneral:  getEnvInt("RATE_LIMIT_GENERAL", 120),
		RateLimitGenerate: getEnvInt("RATE_LIMIT_GENERATE", 30),
		ShutdownTimeout:   getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return n
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
