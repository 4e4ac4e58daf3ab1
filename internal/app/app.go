// Package app faz a inicialização, o wiring das dependências e o ciclo de
// vida dos subcomandos da aplicação.
package app

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/pwavaliacoes/plaquinhas/internal/account"
	"github.com/pwavaliacoes/plaquinhas/internal/config"
	"github.com/pwavaliacoes/plaquinhas/internal/convert"
	"github.com/pwavaliacoes/plaquinhas/internal/database"
	"github.com/pwavaliacoes/plaquinhas/internal/docgen"
	"github.com/pwavaliacoes/plaquinhas/internal/export"
	"github.com/pwavaliacoes/plaquinhas/internal/handler"
	"github.com/pwavaliacoes/plaquinhas/internal/logger"
	"github.com/pwavaliacoes/plaquinhas/internal/metrics"
	"github.com/pwavaliacoes/plaquinhas/internal/middleware"
	"github.com/pwavaliacoes/plaquinhas/internal/model"
	"github.com/pwavaliacoes/plaquinhas/internal/repository"
	"github.com/pwavaliacoes/plaquinhas/internal/tabletext"
	"github.com/pwavaliacoes/plaquinhas/internal/token"

	"golang.org/x/time/rate"
)

// Init inicializa o logger global e carrega a configuração do ambiente.
func Init(w io.Writer) *config.Config {
	logger.SetupDefault(w)
	return config.Load()
}

// Run é o ponto de entrada da aplicação. Interpreta o subcomando e executa
// o modo correspondente. args recebe os.Args[1:].
func Run(w io.Writer, args []string) error {
	cmd := ParseCommand(args)

	// healthcheck é leve demais para a inicialização completa
	if cmd == CommandHealthcheck {
		port := os.Getenv("SERVER_PORT")
		if port == "" {
			port = "4000"
		}
		return runHealthcheck(port)
	}

	cfg := Init(w)

	slog.Info("iniciando aplicação",
		slog.String("command", string(cmd)),
		slog.String("port", cfg.ServerPort),
	)

	switch cmd {
	case CommandMigrate:
		return runMigrate(cfg)
	case CommandExport:
		return runExport(cfg, args[1:])
	default:
		return runServe(cfg)
	}
}

// buildConversionChain monta a cadeia de conversão PDF conforme a
// configuração: Gotenberg primeiro quando configurado, LibreOffice local
// como fallback.
func buildConversionChain(cfg *config.Config) (*convert.Chain, *convert.Gotenberg, *convert.LibreOffice) {
	gotenberg := convert.NewGotenberg(cfg.GotenbergURL, nil)
	libre := convert.NewLibreOffice(cfg.SofficeBin)

	var converters []convert.Converter
	external := cfg.GotenbergURL != ""
	if external {
		converters = append(converters, gotenberg)
	}
	converters = append(converters, libre)

	return convert.NewChain(external, converters...), gotenberg, libre
}

// runServe sobe o servidor da API: abre o banco, monta as dependências e
// serve até SIGINT/SIGTERM, com shutdown gracioso.
func runServe(cfg *config.Config) error {
	// 1. banco
	db, driver, err := database.Open(cfg.DatabaseURL, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	slog.Info("conexão com o banco estabelecida", slog.String("driver", driver))

	// 2. repositórios
	userRepo := repository.NewSQLUserRepo(db, driver)
	loginRepo := repository.NewSQLLoginEntryRepo(db, driver)

	// 3. serviços de domínio
	tokens := token.NewManager(cfg.JWTSecret)
	accountService := account.NewService(userRepo, loginRepo, tokens)

	generator := docgen.NewGenerator(cfg.TemplateDir)
	chain, gotenberg, libre := buildConversionChain(cfg)

	// 4. observabilidade
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)
	chain.TierObserver = collector.RecordConversionTier

	// 5. roteador
	rateLimiterCfg := middleware.DefaultRateLimiterConfig()
	rateLimiterCfg.GeneralRate = rate.Limit(float64(cfg.RateLimitGeneral) / 60.0)
	rateLimiterCfg.GeneralBurst = cfg.RateLimitGeneral
	rateLimiterCfg.GenerateRate = rate.Limit(float64(cfg.RateLimitGenerate) / 60.0)
	rateLimiterCfg.GenerateBurst = cfg.RateLimitGenerate
	rateLimiter := middleware.NewRateLimiter(rateLimiterCfg)
	defer rateLimiter.Stop()

	router := handler.NewRouter(&handler.RouterDeps{
		CORSAllowedOrigin: cfg.CORSAllowedOrigin,
		RateLimiter:       rateLimiter,
		Tokens:            tokens,
		AdminEmail:        cfg.AdminEmail,
		AccountService:    accountService,
		Generator:         generator,
		PdfConverter:      chain,
		LocalProbe:        libre,
		ExternalProbe:     gotenberg,
		Collector:         collector,
		Gatherer:          registry,
		StaticDir:         cfg.StaticDir,
	})

	// 6. servidor HTTP
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("servidor da API iniciando",
			slog.String("addr", server.Addr),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("falha no listen do servidor", slog.String("error", err.Error()))
		}
	}()

	<-stop
	slog.Info("encerrando o servidor da API...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("servidor da API encerrado")
	return nil
}

// runMigrate aplica as migrações pendentes.
func runMigrate(cfg *config.Config) error {
	slog.Info("aplicando migrações do banco",
		slog.String("database_url", maskDatabaseURL(cfg.DatabaseURL)),
	)

	if err := database.RunMigrations(cfg.DatabaseURL, cfg.DBPath); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	slog.Info("migrações aplicadas")
	return nil
}

// runHealthcheck consulta /api/health do servidor local.
func runHealthcheck(port string) error {
	url := fmt.Sprintf("http://localhost:%s/api/health", port)
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}

	return nil
}

// runExport gera o ZIP de lote pela linha de comando.
// Ctrl-C interrompe o laço entre itens e remove o arquivo parcial.
func runExport(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	modelName := fs.String("model", "patricia", "modelo da plaquinha (wellington ou patricia)")
	format := fs.String("format", "docx", "formato de saída (docx ou pdf)")
	in := fs.String("in", "", "arquivo de texto com a tabela colada")
	out := fs.String("out", "placas.zip", "arquivo ZIP de saída")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return fmt.Errorf("informe o arquivo de entrada com -in")
	}

	raw, err := os.ReadFile(*in)
	if err != nil {
		return fmt.Errorf("failed to read input table: %w", err)
	}

	items := tabletext.Parse(string(raw))
	if len(items) == 0 {
		return fmt.Errorf("nenhum item reconhecido em %s", *in)
	}

	generator := docgen.NewGenerator(cfg.TemplateDir)
	var exporter *export.Exporter
	if *format == "pdf" {
		chain, _, _ := buildConversionChain(cfg)
		exporter = export.NewExporter(generator, chain)
	} else {
		exporter = export.NewExporter(generator, nil)
	}

	outFile, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	err = exporter.ExportAll(ctx, *modelName, *format, items, outFile,
		func(done, total int, item model.Item) {
			fmt.Fprintf(os.Stderr, "item %d/%d: %d (%s)\n", done, total, item.ItemNumber, item.DisplayValue)
		})

	closeErr := outFile.Close()
	if err != nil {
		// sem arquivo parcial em caso de cancelamento ou falha
		os.Remove(*out)
		if ctx.Err() != nil {
			slog.Info("exportação cancelada")
			return nil
		}
		return fmt.Errorf("export failed: %w", err)
	}
	if closeErr != nil {
		return fmt.Errorf("failed to close output file: %w", closeErr)
	}

	fmt.Fprintf(os.Stderr, "%d itens exportados para %s\n", len(items), *out)
	return nil
}

// maskDatabaseURL esconde as credenciais da URL do banco nos logs.
func maskDatabaseURL(url string) string {
	if url == "" {
		return "(sqlite embutido)"
	}
	if len(url) > 20 {
		return url[:12] + "***@..."
	}
	return "***"
}
