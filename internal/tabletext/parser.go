// Package tabletext extrai pares (item, valor) de tabelas de texto livre
// coladas pelo usuário, linha a linha, por heurística posicional e monetária.
package tabletext

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pwavaliacoes/plaquinhas/internal/currency"
	"github.com/pwavaliacoes/plaquinhas/internal/model"
)

// itemPrefixRe qualifica uma linha: 1 a 4 dígitos no início (após espaços),
// seguidos de fronteira de palavra. O número capturado é o número do item.
var itemPrefixRe = regexp.MustCompile(`^\s*(\d{1,4})\b`)

// moneyRe reconhece substrings monetárias: símbolo, dígitos agrupados
// opcionais, vírgula e exatamente dois decimais (ex.: "R$ 1.234,56").
var moneyRe = regexp.MustCompile(`R\$\s*([\d.\s]*\d,\d{2})`)

// Parse percorre o texto colado e devolve os itens reconhecidos na ordem
// das linhas de entrada. Linhas em branco são descartadas. Uma linha sem
// prefixo de item ou sem substring monetária é descartada inteira.
// Quando há mais de uma substring monetária na linha, a ÚLTIMA vence
// (linha com preço unitário e total: o total é o pretendido).
// Números de item não são deduplicados nem validados por unicidade.
func Parse(raw string) []model.Item {
	items := []model.Item{}

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimRight(line, "\r")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		mItem := itemPrefixRe.FindStringSubmatch(line)
		if mItem == nil {
			continue
		}
		itemNum, err := strconv.Atoi(mItem[1])
		if err != nil {
			continue
		}

		moneyMatches := moneyRe.FindAllStringSubmatch(line, -1)
		if len(moneyMatches) == 0 {
			continue
		}
		last := moneyMatches[len(moneyMatches)-1][1]

		valor := last
		if n, err := currency.Parse(last); err == nil {
			valor = currency.Format(n)
		}

		items = append(items, model.Item{
			ItemNumber:   itemNum,
			DisplayValue: valor,
		})
	}

	return items
}
