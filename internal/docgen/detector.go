// Package docgen preenche templates DOCX de plaquinha com os campos
// ITEM e VALOR, detectando dinamicamente o estilo de delimitador usado
// no corpo do documento. É a implementação única compartilhada pelos
// handlers HTTP e pela exportação em lote.
package docgen

import "regexp"

// DelimiterStyle é um dos quatro estilos de delimitador suportados.
// Conjunto fechado com ordem de prioridade explícita; nunca casamento
// aberto de strings.
type DelimiterStyle string

const (
	// StyleCurly é o estilo base "{X}". É o fallback quando nenhum dos
	// demais estilos é detectado, não um caso positivamente detectado.
	StyleCurly DelimiterStyle = "curly"
	// StyleMustache é o estilo "{{X}}".
	StyleMustache DelimiterStyle = "mustache"
	// StyleBrackets é o estilo "[[X]]".
	StyleBrackets DelimiterStyle = "brackets"
	// StyleGuillemets é o estilo "«X»".
	StyleGuillemets DelimiterStyle = "guillemets"
)

// RenderOptions carrega o par de delimitadores escolhido e as duas flags
// fixas de renderização, sempre habilitadas.
type RenderOptions struct {
	Style DelimiterStyle
	Open  string
	Close string

	// ParagraphLoop e Linebreaks reproduzem as opções base de substituição
	// do gerador original; ambas sempre true.
	ParagraphLoop bool
	Linebreaks    bool
}

// Os padrões casam os dois nomes de campo (ITEM, VALOR) sem distinção de
// maiúsculas. Os três estilos não-base toleram espaços internos; o estilo
// base "{X}" é exato, como no detector original.
var (
	curlyRe      = regexp.MustCompile(`(?i)(\{ITEM\})|(\{VALOR\})`)
	mustacheRe   = regexp.MustCompile(`(?i)(\{\{\s*ITEM\s*\}\})|(\{\{\s*VALOR\s*\}\})`)
	bracketsRe   = regexp.MustCompile(`(?i)(\[\[\s*ITEM\s*\]\])|(\[\[\s*VALOR\s*\]\])`)
	guillemetsRe = regexp.MustCompile(`(?i)(«\s*ITEM\s*»)|(«\s*VALOR\s*»)`)
)

// DetectDelimiters inspeciona o XML bruto do corpo do documento e escolhe
// o estilo de delimitador. Ordem de prioridade: mustache → colchetes →
// guilhemets; sem casamento, devolve a configuração base de chaves simples.
func DetectDelimiters(xml string) RenderOptions {
	base := RenderOptions{ParagraphLoop: true, Linebreaks: true}

	switch {
	case mustacheRe.MatchString(xml):
		base.Style, base.Open, base.Close = StyleMustache, "{{", "}}"
	case bracketsRe.MatchString(xml):
		base.Style, base.Open, base.Close = StyleBrackets, "[[", "]]"
	case guillemetsRe.MatchString(xml):
		base.Style, base.Open, base.Close = StyleGuillemets, "«", "»"
	default:
		base.Style, base.Open, base.Close = StyleCurly, "{", "}"
	}

	return base
}

// HasPlaceholders informa se o corpo contém os campos em qualquer um dos
// quatro estilos suportados.
func HasPlaceholders(xml string) bool {
	return curlyRe.MatchString(xml) ||
		mustacheRe.MatchString(xml) ||
		bracketsRe.MatchString(xml) ||
		guillemetsRe.MatchString(xml)
}
