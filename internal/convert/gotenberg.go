package convert

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/pwavaliacoes/plaquinhas/internal/model"
)

const (
	// docxContentType é o media type de documentos WordprocessingML.
	docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

	// healthTimeout limita a sonda de saúde do serviço externo.
	healthTimeout = 2 * time.Second

	// maxErrorBody limita o corpo de erro carregado na mensagem.
	maxErrorBody = 200
)

// Gotenberg converte via a rota LibreOffice de um serviço Gotenberg.
type Gotenberg struct {
	baseURL string
	client  *http.Client
}

// NewGotenberg cria o conversor apontando para baseURL (barras finais são
// removidas). O client é http.DefaultClient quando nil.
func NewGotenberg(baseURL string, client *http.Client) *Gotenberg {
	if client == nil {
		client = http.DefaultClient
	}
	return &Gotenberg{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// Name identifica a estratégia.
func (g *Gotenberg) Name() string { return "gotenberg" }

// Convert envia o DOCX como multipart form para a rota de conversão.
// Status não 2xx vira CONVERSION_SERVICE_ERROR com o corpo truncado.
func (g *Gotenberg) Convert(ctx context.Context, docx []byte) ([]byte, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="files"; filename="document.docx"`)
	header.Set("Content-Type", docxContentType)

	part, err := mw.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("failed to create multipart part: %w", err)
	}
	if _, err := part.Write(docx); err != nil {
		return nil, fmt.Errorf("failed to write multipart body: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	endpoint := g.baseURL + "/forms/libreoffice/convert"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return nil, fmt.Errorf("failed to build conversion request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("conversion request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, model.NewConversionServiceError(resp.StatusCode, string(b))
	}

	pdf, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read conversion response: %w", err)
	}
	return pdf, nil
}

// Healthy sonda a rota /health com timeout curto. Sem configuração,
// timeout ou status não-OK significam indisponível.
func (g *Gotenberg) Healthy(ctx context.Context) bool {
	if g.baseURL == "" {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}
