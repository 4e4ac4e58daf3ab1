package convert

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// LibreOffice converte via o binário soffice em modo headless.
type LibreOffice struct {
	binary string
}

// NewLibreOffice cria o conversor local. binary vazio usa "soffice".
func NewLibreOffice(binary string) *LibreOffice {
	if binary == "" {
		binary = "soffice"
	}
	return &LibreOffice{binary: binary}
}

// Name identifica a estratégia.
func (l *LibreOffice) Name() string { return "libreoffice" }

// Available sonda a presença do conversor local executando o binário com
// --version; sucesso do subprocesso significa presente.
func (l *LibreOffice) Available() bool {
	return exec.Command(l.binary, "--headless", "--version").Run() == nil
}

// Convert grava o DOCX em um diretório temporário, executa a conversão
// headless e lê o PDF resultante.
func (l *LibreOffice) Convert(ctx context.Context, docx []byte) ([]byte, error) {
	dir, err := os.MkdirTemp("", "plaquinhas-convert-")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	in := filepath.Join(dir, "document.docx")
	if err := os.WriteFile(in, docx, 0o600); err != nil {
		return nil, fmt.Errorf("failed to write temp document: %w", err)
	}

	cmd := exec.CommandContext(ctx, l.binary,
		"--headless", "--convert-to", "pdf", "--outdir", dir, in)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("soffice conversion failed: %w: %s", err, out)
	}

	pdf, err := os.ReadFile(filepath.Join(dir, "document.pdf"))
	if err != nil {
		return nil, fmt.Errorf("failed to read converted pdf: %w", err)
	}
	return pdf, nil
}
