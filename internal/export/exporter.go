// Package export produz o ZIP de lote com uma plaquinha por item.
// O laço é estritamente sequencial e verifica cancelamento entre itens.
package export

import (
	"archive/zip"
	"context"
	"fmt"
	"io"

	"github.com/pwavaliacoes/plaquinhas/internal/docgen"
	"github.com/pwavaliacoes/plaquinhas/internal/model"
)

// Generator é o contrato do gerador de documentos.
type Generator interface {
	Generate(modelName, item, valor string) ([]byte, error)
}

// PdfConverter é o contrato da cadeia de conversão para PDF.
type PdfConverter interface {
	Convert(ctx context.Context, docx []byte) ([]byte, error)
}

// Progress é chamado após cada item exportado.
type Progress func(done, total int, item model.Item)

// Exporter gera o lote de plaquinhas.
type Exporter struct {
	generator Generator
	converter PdfConverter
}

// NewExporter cria o Exporter. converter só é exigido para format "pdf".
func NewExporter(generator Generator, converter PdfConverter) *Exporter {
	return &Exporter{generator: generator, converter: converter}
}

// ExportAll gera um documento por item e grava as entradas
// "{modelo}-item-{n}.{ext}" no ZIP escrito em out. format é "docx" ou
// "pdf". O cancelamento do contexto interrompe o laço antes do próximo
// item e devolve ctx.Err(); o chamador decide o destino do arquivo
// parcial. progress pode ser nil.
func (e *Exporter) ExportAll(ctx context.Context, modelName, format string, items []model.Item, out io.Writer, progress Progress) error {
	if format != "docx" && format != "pdf" {
		return model.NewInvalidInputError(fmt.Sprintf("formato não suportado: %s", format))
	}
	if format == "pdf" && e.converter == nil {
		return model.NewPdfUnavailableError(false)
	}

	modelName = docgen.NormalizeModel(modelName)

	zw := zip.NewWriter(out)
	for i, item := range items {
		if err := ctx.Err(); err != nil {
			return err
		}

		docx, err := e.generator.Generate(modelName, fmt.Sprintf("%d", item.ItemNumber), item.DisplayValue)
		if err != nil {
			return fmt.Errorf("failed to generate item %d: %w", item.ItemNumber, err)
		}

		content := docx
		if format == "pdf" {
			content, err = e.converter.Convert(ctx, docx)
			if err != nil {
				return fmt.Errorf("failed to convert item %d: %w", item.ItemNumber, err)
			}
		}

		name := fmt.Sprintf("%s-item-%d.%s", modelName, item.ItemNumber, format)
		w, err := zw.Create(name)
		if err != nil {
			return fmt.Errorf("failed to create zip entry %s: %w", name, err)
		}
		if _, err := w.Write(content); err != nil {
			return fmt.Errorf("failed to write zip entry %s: %w", name, err)
		}

		if progress != nil {
			progress(i+1, len(items), item)
		}
	}

	return zw.Close()
}
