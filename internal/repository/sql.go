package repository

import (
	"strconv"
	"strings"
	"time"
)

// timeLayout é o formato textual dos timestamps persistidos (UTC, precisão
// de milissegundos). A ordenação lexicográfica coincide com a cronológica,
// o que permite comparações de corte direto em SQL nos dois bancos.
const timeLayout = "2006-01-02T15:04:05.000Z07:00"

// formatTime serializa um instante para persistência.
func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// parseTime desserializa um timestamp persistido.
func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}

// rebind converte placeholders $1..$n para ? quando o driver é SQLite.
// As consultas usam os placeholders em ordem crescente, então a troca
// posicional preserva a associação dos argumentos.
func rebind(driver, query string) string {
	if driver != "sqlite" {
		return query
	}
	var b strings.Builder
	b.Grow(len(query))
	for i := 0; i < len(query); i++ {
		if query[i] != '$' {
			b.WriteByte(query[i])
			continue
		}
		j := i + 1
		for j < len(query) && query[j] >= '0' && query[j] <= '9' {
			j++
		}
		if j == i+1 {
			b.WriteByte(query[i])
			continue
		}
		if _, err := strconv.Atoi(query[i+1 : j]); err == nil {
			b.WriteByte('?')
			i = j - 1
		}
	}
	return b.String()
}
