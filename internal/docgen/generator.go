package docgen

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pwavaliacoes/plaquinhas/internal/model"
)

// documentEntry é o membro do arquivo DOCX que contém o corpo do documento.
const documentEntry = "word/document.xml"

// Generator resolve nomes de modelo para arquivos de template e produz
// o DOCX preenchido. O template é lido do disco a cada geração, sem cache
// entre requisições.
type Generator struct {
	templateDir string
}

// NewGenerator cria um Generator que resolve templates em templateDir.
func NewGenerator(templateDir string) *Generator {
	return &Generator{templateDir: templateDir}
}

// NormalizeModel resolve um nome de modelo arbitrário para o modelo
// efetivamente usado, seguindo a mesma regra de templatePath.
func NormalizeModel(modelName string) string {
	if modelName == string(model.ModelWellington) {
		return string(model.ModelWellington)
	}
	return string(model.ModelPatricia)
}

// templatePath resolve o nome do modelo para o caminho do .docx.
// Qualquer nome diferente de "wellington" resolve para patricia,
// reproduzindo a seleção de caminho original.
func (g *Generator) templatePath(modelName string) string {
	if modelName == string(model.ModelWellington) {
		return filepath.Join(g.templateDir, "wellington.docx")
	}
	return filepath.Join(g.templateDir, "patricia.docx")
}

// Generate preenche o template do modelo com o número do item e o valor
// de exibição e devolve o arquivo DOCX resultante.
// Falha com TEMPLATE_NOT_FOUND quando o arquivo do modelo não existe e com
// RENDER_ERROR quando nenhum placeholder é substituído.
func (g *Generator) Generate(modelName, item, valor string) ([]byte, error) {
	p := g.templatePath(modelName)

	content, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, model.NewTemplateNotFoundError(modelName)
		}
		return nil, fmt.Errorf("failed to read template %s: %w", p, err)
	}

	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("failed to open template archive: %w", err)
	}

	xml, err := readEntry(zr, documentEntry)
	if err != nil {
		return nil, fmt.Errorf("failed to read document body: %w", err)
	}

	opts := DetectDelimiters(xml)

	filled, replaced := substitute(xml, opts, map[string]string{
		"ITEM":  item,
		"VALOR": valor,
	})
	if replaced == 0 {
		return nil, model.NewRenderError()
	}

	out, err := rewriteArchive(zr, documentEntry, filled)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize document: %w", err)
	}
	return out, nil
}

// readEntry lê um membro do arquivo zip como texto.
func readEntry(zr *zip.Reader, name string) (string, error) {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", err
		}
		defer rc.Close()
		b, err := io.ReadAll(rc)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	return "", fmt.Errorf("entry %s not found in archive", name)
}

// substitute troca cada placeholder pelo valor correspondente e devolve o
// XML resultante com o total de substituições efetuadas.
func substitute(xml string, opts RenderOptions, fields map[string]string) (string, int) {
	total := 0
	for name, value := range fields {
		re := placeholderPattern(opts, name)
		count := len(re.FindAllStringIndex(xml, -1))
		if count == 0 {
			continue
		}
		xml = re.ReplaceAllString(xml, renderValue(value, opts))
		total += count
	}
	return xml, total
}

// placeholderPattern monta o padrão do placeholder para um campo no estilo
// detectado. O estilo base de chaves simples é exato; os demais toleram
// espaços internos.
func placeholderPattern(opts RenderOptions, field string) *regexp.Regexp {
	open := regexp.QuoteMeta(opts.Open)
	clos := regexp.QuoteMeta(opts.Close)
	if opts.Style == StyleCurly {
		return regexp.MustCompile(`(?i)` + open + field + clos)
	}
	return regexp.MustCompile(`(?i)` + open + `\s*` + field + `\s*` + clos)
}

// renderValue escapa o valor para XML e, com Linebreaks habilitado, traduz
// quebras de linha literais para <w:br/> dentro do run.
func renderValue(value string, opts RenderOptions) string {
	escaped := xmlEscape(value)
	if opts.Linebreaks {
		escaped = strings.ReplaceAll(escaped, "\n", `</w:t><w:br/><w:t>`)
	}
	// ReplaceAllString interpreta $ como referência de grupo
	return strings.ReplaceAll(escaped, "$", "$$")
}

// xmlEscape escapa os caracteres reservados do XML no texto do valor.
func xmlEscape(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	return r.Replace(s)
}

// rewriteArchive reserializa o arquivo zip substituindo apenas o membro
// indicado; os demais membros são copiados sem alteração.
func rewriteArchive(zr *zip.Reader, name, content string) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, f := range zr.File {
		if f.Name == name {
			w, err := zw.Create(name)
			if err != nil {
				return nil, err
			}
			if _, err := io.WriteString(w, content); err != nil {
				return nil, err
			}
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:   f.Name,
			Method: f.Method,
		})
		if err != nil {
			rc.Close()
			return nil, err
		}
		if _, err := io.Copy(w, rc); err != nil {
			rc.Close()
			return nil, err
		}
		rc.Close()
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
