package handler

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/pwavaliacoes/plaquinhas/internal/metrics"
	"github.com/pwavaliacoes/plaquinhas/internal/middleware"
	"github.com/pwavaliacoes/plaquinhas/internal/token"
)

// RouterDeps agrupa as dependências do roteador.
type RouterDeps struct {
	// middlewares; Logger nil usa o slog.Default()
	CORSAllowedOrigin string
	Logger            *slog.Logger
	RateLimiter       *middleware.RateLimiter
	Tokens            *token.Manager
	AdminEmail        string

	// serviços
	AccountService AccountServiceInterface
	Generator      GeneratorInterface
	PdfConverter   PdfConverterInterface

	// sondas de saúde
	LocalProbe    LocalConverterProbe
	ExternalProbe ExternalConverterProbe

	// observabilidade
	Collector metrics.MetricsCollector
	Gatherer  prometheus.Gatherer

	// frontend estático; vazio desabilita
	StaticDir string
}

// NewRouter monta o roteador com todas as rotas e a cadeia de middlewares.
//
// Ordem da cadeia: CORS → Recovery → Logging → RateLimit(geral).
// A geração de documentos soma o balde próprio de taxa; o painel
// administrativo soma autenticação e verificação de administrador.
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	var observeStatus func(status int)
	if deps.Collector != nil {
		observeStatus = deps.Collector.RecordHTTPStatus
	}

	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewLoggingMiddleware(logger, observeStatus))

	accountHandler := NewAccountHandler(deps.AccountService)
	generateHandler := NewGenerateHandler(deps.Generator, deps.PdfConverter, deps.Collector)
	healthHandler := NewHealthHandler(deps.LocalProbe, deps.ExternalProbe)

	// scrape do Prometheus fora do limite de taxa
	if deps.Gatherer != nil {
		r.Handle("/metrics", metrics.Handler(deps.Gatherer))
	}

	r.Group(func(r chi.Router) {
		r.Use(deps.RateLimiter.GeneralMiddleware())

		r.Get("/api/health", healthHandler.Health)

		r.Post("/api/register", accountHandler.Register)
		r.Post("/api/login", accountHandler.Login)
		r.Post("/api/reset-password", accountHandler.ResetPassword)

		// painel administrativo: token válido + conta administrativa
		r.Group(func(r chi.Router) {
			r.Use(middleware.NewAuthMiddleware(deps.Tokens))
			r.Use(middleware.NewAdminMiddleware(deps.AdminEmail))
			r.Get("/api/admin/logins", accountHandler.ListLogins)
		})

		// geração de documentos: balde de taxa dedicado
		r.Group(func(r chi.Router) {
			r.Use(deps.RateLimiter.GenerateMiddleware())
			r.Post("/api/generate/docx", generateHandler.GenerateDocx)
			r.Post("/api/generate/pdf", generateHandler.GeneratePdf)
		})
	})

	if deps.StaticDir != "" {
		r.NotFound(staticHandler(deps.StaticDir))
	}

	return r
}

// staticHandler serve o frontend estático com fallback para index.html em
// caminhos sem arquivo correspondente (rotas do lado do cliente).
func staticHandler(dir string) http.HandlerFunc {
	fileServer := http.FileServer(http.Dir(dir))
	return func(w http.ResponseWriter, r *http.Request) {
		p := filepath.Join(dir, filepath.Clean("/"+r.URL.Path))
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			fileServer.ServeHTTP(w, r)
			return
		}
		http.ServeFile(w, r, filepath.Join(dir, "index.html"))
	}
}
