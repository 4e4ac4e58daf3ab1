// Package convert converte documentos DOCX em PDF através de uma cadeia
// ordenada de estratégias: serviço Gotenberg externo, quando configurado,
// e LibreOffice local como fallback. Uma única passada, sem retry.
package convert

import (
	"context"
	"log/slog"

	"github.com/pwavaliacoes/plaquinhas/internal/model"
)

// Converter é uma estratégia de conversão DOCX → PDF.
type Converter interface {
	// Name identifica a estratégia para logs e métricas.
	Name() string
	// Convert converte o arquivo DOCX em PDF.
	Convert(ctx context.Context, docx []byte) ([]byte, error)
}

// Chain tenta cada estratégia na ordem, passando para a próxima em caso
// de falha. Esgotadas as estratégias, devolve PDF_CONVERSION_UNAVAILABLE
// com a dica adequada (varia conforme o serviço externo ter sido tentado).
type Chain struct {
	converters []Converter
	external   bool

	// TierObserver, quando definido, recebe o nome da estratégia que
	// atendeu a conversão. Usado para métricas.
	TierObserver func(name string)
}

// NewChain cria a cadeia de conversão. external indica se a primeira
// estratégia é o serviço externo configurado, o que muda a mensagem
// de indisponibilidade.
func NewChain(external bool, converters ...Converter) *Chain {
	return &Chain{converters: converters, external: external}
}

// Convert executa a cadeia.
func (c *Chain) Convert(ctx context.Context, docx []byte) ([]byte, error) {
	for _, conv := range c.converters {
		pdf, err := conv.Convert(ctx, docx)
		if err == nil {
			if c.TierObserver != nil {
				c.TierObserver(conv.Name())
			}
			return pdf, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		slog.Warn("conversão PDF falhou, tentando a próxima estratégia",
			slog.String("converter", conv.Name()),
			slog.String("error", err.Error()),
		)
	}
	return nil, model.NewPdfUnavailableError(c.external)
}
