package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/pwavaliacoes/plaquinhas/internal/model"
)

// stubGenerator devolve um DOCX fixo e registra os argumentos recebidos.
type stubGenerator struct {
	docx    []byte
	err     error
	gotName string
	gotItem string
	gotVal  string
}

func (s *stubGenerator) Generate(modelName, item, valor string) ([]byte, error) {
	s.gotName, s.gotItem, s.gotVal = modelName, item, valor
	return s.docx, s.err
}

// stubConverter devolve um PDF fixo.
type stubConverter struct {
	pdf []byte
	err error
}

func (s *stubConverter) Convert(_ context.Context, _ []byte) ([]byte, error) {
	return s.pdf, s.err
}

// TestGenerateHandler_DocxOK verifica o anexo DOCX e o nome do arquivo.
func TestGenerateHandler_DocxOK(t *testing.T) {
	gen := &stubGenerator{docx: []byte("docx-bytes")}
	h := NewGenerateHandler(gen, &stubConverter{}, nil)

	rec := postJSON(t, h.GenerateDocx, "/api/generate/docx",
		`{"model":"wellington","item":12,"valor":"R$ 25,50"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("esperado 200, resultado %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Disposition"); got != `attachment; filename="wellington-item-12.docx"` {
		t.Errorf("Content-Disposition divergente: %q", got)
	}
	if !strings.Contains(rec.Header().Get("Content-Type"), "wordprocessingml") {
		t.Errorf("Content-Type divergente: %q", rec.Header().Get("Content-Type"))
	}
	if rec.Body.String() != "docx-bytes" {
		t.Errorf("corpo divergente: %q", rec.Body.String())
	}
	if gen.gotItem != "12" || gen.gotVal != "R$ 25,50" {
		t.Errorf("argumentos divergentes: item=%q valor=%q", gen.gotItem, gen.gotVal)
	}
}

// TestGenerateHandler_ItemAsString verifica a aceitação de item como string.
func TestGenerateHandler_ItemAsString(t *testing.T) {
	gen := &stubGenerator{docx: []byte("docx-bytes")}
	h := NewGenerateHandler(gen, &stubConverter{}, nil)

	rec := postJSON(t, h.GenerateDocx, "/api/generate/docx",
		`{"model":"patricia","item":"7","valor":"R$ 10,00"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("esperado 200, resultado %d", rec.Code)
	}
	if gen.gotItem != "7" {
		t.Errorf("item divergente: %q", gen.gotItem)
	}
}

// TestGenerateHandler_UnknownModelFallsBack verifica a normalização de
// modelo desconhecido para patricia.
func TestGenerateHandler_UnknownModelFallsBack(t *testing.T) {
	gen := &stubGenerator{docx: []byte("docx-bytes")}
	h := NewGenerateHandler(gen, &stubConverter{}, nil)

	rec := postJSON(t, h.GenerateDocx, "/api/generate/docx",
		`{"model":"inexistente","item":1,"valor":"R$ 1,00"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("esperado 200, resultado %d", rec.Code)
	}
	if gen.gotName != "patricia" {
		t.Errorf("modelo divergente: %q", gen.gotName)
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "patricia-item-1.docx") {
		t.Errorf("nome do anexo divergente: %q", got)
	}
}

// TestGenerateHandler_MissingFields verifica 400 para campos ausentes.
func TestGenerateHandler_MissingFields(t *testing.T) {
	h := NewGenerateHandler(&stubGenerator{}, &stubConverter{}, nil)

	for name, body := range map[string]string{
		"sem item":      `{"model":"wellington","valor":"R$ 1,00"}`,
		"sem valor":     `{"model":"wellington","item":1}`,
		"valor vazio":   `{"model":"wellington","item":1,"valor":"  "}`,
		"json inválido": `{lixo`,
	} {
		rec := postJSON(t, h.GenerateDocx, "/api/generate/docx", body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: esperado 400, resultado %d", name, rec.Code)
		}
	}
}

// TestGenerateHandler_TemplateNotFound verifica 500 com o código de template.
func TestGenerateHandler_TemplateNotFound(t *testing.T) {
	h := NewGenerateHandler(&stubGenerator{err: model.NewTemplateNotFoundError("patricia")}, &stubConverter{}, nil)

	rec := postJSON(t, h.GenerateDocx, "/api/generate/docx",
		`{"model":"patricia","item":1,"valor":"R$ 1,00"}`)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("esperado 500, resultado %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), model.ErrCodeTemplateNotFound) {
		t.Errorf("código ausente: %s", rec.Body.String())
	}
}

// TestGenerateHandler_PdfOK verifica a conversão e o anexo PDF.
func TestGenerateHandler_PdfOK(t *testing.T) {
	h := NewGenerateHandler(
		&stubGenerator{docx: []byte("docx-bytes")},
		&stubConverter{pdf: []byte("%PDF-fake")},
		nil,
	)

	rec := postJSON(t, h.GeneratePdf, "/api/generate/pdf",
		`{"model":"wellington","item":3,"valor":"R$ 99,90"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("esperado 200, resultado %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/pdf" {
		t.Errorf("Content-Type divergente: %q", got)
	}
	if got := rec.Header().Get("Content-Disposition"); got != `attachment; filename="wellington-item-3.pdf"` {
		t.Errorf("Content-Disposition divergente: %q", got)
	}
	if rec.Body.String() != "%PDF-fake" {
		t.Errorf("corpo divergente: %q", rec.Body.String())
	}
}

// TestGenerateHandler_PdfConversionUnavailable verifica 500 com a dica de
// indisponibilidade.
func TestGenerateHandler_PdfConversionUnavailable(t *testing.T) {
	h := NewGenerateHandler(
		&stubGenerator{docx: []byte("docx-bytes")},
		&stubConverter{err: model.NewPdfUnavailableError(false)},
		nil,
	)

	rec := postJSON(t, h.GeneratePdf, "/api/generate/pdf",
		`{"model":"wellington","item":3,"valor":"R$ 99,90"}`)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("esperado 500, resultado %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), model.ErrCodePdfUnavailable) {
		t.Errorf("código ausente: %s", rec.Body.String())
	}
}

// TestGenerateHandler_UnexpectedErrorIs500 verifica o 500 genérico para
// erros fora da taxonomia.
func TestGenerateHandler_UnexpectedErrorIs500(t *testing.T) {
	h := NewGenerateHandler(&stubGenerator{err: errors.New("disco cheio")}, &stubConverter{}, nil)

	rec := postJSON(t, h.GenerateDocx, "/api/generate/docx",
		`{"model":"wellington","item":1,"valor":"R$ 1,00"}`)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("esperado 500, resultado %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "INTERNAL_ERROR") {
		t.Errorf("código ausente: %s", rec.Body.String())
	}
}
