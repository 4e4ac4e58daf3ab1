// Package currency converte valores monetários entre a forma localizada
// pt-BR ("R$ 1.234,56") e o valor numérico canônico.
package currency

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pwavaliacoes/plaquinhas/internal/model"
)

// Parse converte uma string monetária localizada em um número.
// Remove tudo exceto dígitos, vírgula, ponto e sinal; descarta o ponto
// (separador de milhar) e troca a vírgula pelo ponto decimal.
// Retorna INVALID_VALUE quando o resultado não é um número finito.
func Parse(input string) (float64, error) {
	var b strings.Builder
	for _, r := range input {
		switch {
		case r >= '0' && r <= '9', r == ',', r == '.', r == '-':
			b.WriteRune(r)
		}
	}

	s := strings.ReplaceAll(b.String(), ".", "")
	s = strings.ReplaceAll(s, ",", ".")

	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(n, 0) || math.IsNaN(n) {
		return 0, model.NewInvalidValueError(input)
	}
	return n, nil
}

// Format renderiza um número na convenção monetária pt-BR: "R$ 1.234,56".
// A ida e volta é numérica, não literal: Format(Parse(s)) reparseia para o
// mesmo valor, mas não necessariamente para a mesma string.
func Format(n float64) string {
	neg := math.Signbit(n) && n != 0
	cents := int64(math.Round(math.Abs(n) * 100))

	intPart := cents / 100
	fracPart := cents % 100

	digits := strconv.FormatInt(intPart, 10)
	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)

	sign := ""
	if neg {
		sign = "-"
	}
	return fmt.Sprintf("%sR$ %s,%02d", sign, strings.Join(groups, "."), fracPart)
}
