package export

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/pwavaliacoes/plaquinhas/internal/model"
)

// fakeGenerator devolve o conteúdo em função do item.
type fakeGenerator struct {
	err   error
	calls int
}

func (f *fakeGenerator) Generate(modelName, item, valor string) ([]byte, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return []byte(fmt.Sprintf("docx:%s:%s:%s", modelName, item, valor)), nil
}

// fakeConverter marca o conteúdo como convertido.
type fakeConverter struct {
	err error
}

func (f *fakeConverter) Convert(_ context.Context, docx []byte) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return append([]byte("pdf:"), docx...), nil
}

func sampleItems() []model.Item {
	return []model.Item{
		{ItemNumber: 1, DisplayValue: "R$ 10,00"},
		{ItemNumber: 7, DisplayValue: "R$ 25,50"},
		{ItemNumber: 12, DisplayValue: "R$ 1.234,56"},
	}
}

func readZipEntries(t *testing.T, buf *bytes.Buffer) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("lendo ZIP produzido: %v", err)
	}
	entries := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("abrindo entrada %s: %v", f.Name, err)
		}
		b, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("lendo entrada %s: %v", f.Name, err)
		}
		entries[f.Name] = string(b)
	}
	return entries
}

// TestExportAll_Docx verifica as entradas do ZIP e a ordem do progresso.
func TestExportAll_Docx(t *testing.T) {
	exp := NewExporter(&fakeGenerator{}, nil)

	var buf bytes.Buffer
	var seen []int
	err := exp.ExportAll(context.Background(), "wellington", "docx", sampleItems(), &buf,
		func(done, total int, item model.Item) {
			if total != 3 {
				t.Errorf("total divergente: %d", total)
			}
			seen = append(seen, done)
		})
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	entries := readZipEntries(t, &buf)
	if len(entries) != 3 {
		t.Fatalf("esperadas 3 entradas, resultado %d", len(entries))
	}
	if got := entries["wellington-item-7.docx"]; got != "docx:wellington:7:R$ 25,50" {
		t.Errorf("entrada divergente: %q", got)
	}
	for i, done := range seen {
		if done != i+1 {
			t.Errorf("progresso fora de ordem: %v", seen)
			break
		}
	}
}

// TestExportAll_Pdf verifica a conversão de cada item.
func TestExportAll_Pdf(t *testing.T) {
	exp := NewExporter(&fakeGenerator{}, &fakeConverter{})

	var buf bytes.Buffer
	if err := exp.ExportAll(context.Background(), "patricia", "pdf", sampleItems(), &buf, nil); err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	entries := readZipEntries(t, &buf)
	if got := entries["patricia-item-1.pdf"]; got != "pdf:docx:patricia:1:R$ 10,00" {
		t.Errorf("entrada divergente: %q", got)
	}
}

// TestExportAll_UnknownModelFallsBack verifica a normalização do modelo.
func TestExportAll_UnknownModelFallsBack(t *testing.T) {
	exp := NewExporter(&fakeGenerator{}, nil)

	var buf bytes.Buffer
	items := sampleItems()[:1]
	if err := exp.ExportAll(context.Background(), "desconhecido", "docx", items, &buf, nil); err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	entries := readZipEntries(t, &buf)
	if _, ok := entries["patricia-item-1.docx"]; !ok {
		t.Errorf("entrada de fallback ausente: %v", entries)
	}
}

// TestExportAll_InvalidFormat verifica INVALID_INPUT para formato estranho.
func TestExportAll_InvalidFormat(t *testing.T) {
	exp := NewExporter(&fakeGenerator{}, nil)

	err := exp.ExportAll(context.Background(), "wellington", "xlsx", sampleItems(), &bytes.Buffer{}, nil)
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeInvalidInput {
		t.Fatalf("esperado INVALID_INPUT, resultado %v", err)
	}
}

// TestExportAll_PdfWithoutConverter verifica a indisponibilidade sem cadeia.
func TestExportAll_PdfWithoutConverter(t *testing.T) {
	exp := NewExporter(&fakeGenerator{}, nil)

	err := exp.ExportAll(context.Background(), "wellington", "pdf", sampleItems(), &bytes.Buffer{}, nil)
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodePdfUnavailable {
		t.Fatalf("esperado PDF_CONVERSION_UNAVAILABLE, resultado %v", err)
	}
}

// TestExportAll_CancelStopsBetweenItems verifica o cancelamento cooperativo:
// o cancelamento no progresso do primeiro item impede o segundo.
func TestExportAll_CancelStopsBetweenItems(t *testing.T) {
	gen := &fakeGenerator{}
	exp := NewExporter(gen, nil)

	ctx, cancel := context.WithCancel(context.Background())
	var buf bytes.Buffer
	err := exp.ExportAll(ctx, "wellington", "docx", sampleItems(), &buf,
		func(done, total int, item model.Item) {
			if done == 1 {
				cancel()
			}
		})

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("esperado context.Canceled, resultado %v", err)
	}
	if gen.calls != 1 {
		t.Errorf("esperada 1 geração antes do cancelamento, resultado %d", gen.calls)
	}
}

// TestExportAll_GeneratorFailureAborts verifica a interrupção na primeira
// falha de geração.
func TestExportAll_GeneratorFailureAborts(t *testing.T) {
	exp := NewExporter(&fakeGenerator{err: model.NewTemplateNotFoundError("wellington")}, nil)

	err := exp.ExportAll(context.Background(), "wellington", "docx", sampleItems(), &bytes.Buffer{}, nil)
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeTemplateNotFound {
		t.Fatalf("esperado TEMPLATE_NOT_FOUND na cadeia de erro, resultado %v", err)
	}
}
