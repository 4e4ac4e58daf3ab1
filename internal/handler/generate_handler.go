package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pwavaliacoes/plaquinhas/internal/docgen"
	"github.com/pwavaliacoes/plaquinhas/internal/metrics"
	"github.com/pwavaliacoes/plaquinhas/internal/model"
)

// GeneratorInterface é o contrato do gerador de documentos.
type GeneratorInterface interface {
	Generate(modelName, item, valor string) ([]byte, error)
}

// PdfConverterInterface é o contrato da cadeia de conversão para PDF.
type PdfConverterInterface interface {
	Convert(ctx context.Context, docx []byte) ([]byte, error)
}

// GenerateHandler atende a geração de plaquinhas em DOCX e PDF.
type GenerateHandler struct {
	generator GeneratorInterface
	converter PdfConverterInterface
	collector metrics.MetricsCollector
}

// NewGenerateHandler cria o GenerateHandler. collector pode ser nil.
func NewGenerateHandler(generator GeneratorInterface, converter PdfConverterInterface, collector metrics.MetricsCollector) *GenerateHandler {
	return &GenerateHandler{
		generator: generator,
		converter: converter,
		collector: collector,
	}
}

// generateRequest é o corpo de POST /api/generate/{docx,pdf}.
// item aceita número ou string JSON, conforme enviado pelas versões do
// frontend.
type generateRequest struct {
	Model string          `json:"model"`
	Item  json.RawMessage `json:"item"`
	Valor string          `json:"valor"`
}

// itemString normaliza o campo item para texto.
func (req *generateRequest) itemString() (string, error) {
	if len(req.Item) == 0 {
		return "", fmt.Errorf("item ausente")
	}
	var asString string
	if err := json.Unmarshal(req.Item, &asString); err == nil {
		return strings.TrimSpace(asString), nil
	}
	var asNumber json.Number
	if err := json.Unmarshal(req.Item, &asNumber); err == nil {
		return asNumber.String(), nil
	}
	return "", fmt.Errorf("item em formato não suportado")
}

// decodeGenerateRequest valida e normaliza o corpo da requisição.
func decodeGenerateRequest(r *http.Request) (modelName, item, valor string, err error) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return "", "", "", model.NewInvalidInputError("Parâmetros inválidos")
	}

	item, itemErr := req.itemString()
	if itemErr != nil || item == "" || strings.TrimSpace(req.Valor) == "" {
		return "", "", "", model.NewInvalidInputError("Parâmetros inválidos")
	}

	return docgen.NormalizeModel(req.Model), item, strings.TrimSpace(req.Valor), nil
}

// recordOutcome registra as métricas de geração quando há coletor.
func (h *GenerateHandler) recordOutcome(modelName, format string, start time.Time, err error) {
	if h.collector == nil {
		return
	}
	if err != nil {
		h.collector.RecordGenerateFailure(modelName, format)
		return
	}
	h.collector.RecordGenerate(modelName, format)
	h.collector.RecordGenerateLatency(time.Since(start))
}

// GenerateDocx gera o DOCX preenchido.
// POST /api/generate/docx
func (h *GenerateHandler) GenerateDocx(w http.ResponseWriter, r *http.Request) {
	modelName, item, valor, err := decodeGenerateRequest(r)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	start := time.Now()
	docx, err := h.generator.Generate(modelName, item, valor)
	h.recordOutcome(modelName, "docx", start, err)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("%s-item-%s.docx", modelName, item)))
	w.Write(docx)
}

// GeneratePdf gera o DOCX preenchido e o converte para PDF pela cadeia.
// POST /api/generate/pdf
func (h *GenerateHandler) GeneratePdf(w http.ResponseWriter, r *http.Request) {
	modelName, item, valor, err := decodeGenerateRequest(r)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	start := time.Now()
	docx, err := h.generator.Generate(modelName, item, valor)
	if err != nil {
		h.recordOutcome(modelName, "pdf", start, err)
		handleServiceError(w, err)
		return
	}

	pdf, err := h.converter.Convert(r.Context(), docx)
	h.recordOutcome(modelName, "pdf", start, err)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("%s-item-%s.pdf", modelName, item)))
	w.Write(pdf)
}
