package utils

import (
	"fmt"
	"strings"
)

var sparkLevels = []rune("▁▂▄▆█")

// MoodSparkline desenha a tendência de humor como barras de texto, uma
// por nota (1-5). Notas fora do intervalo são truncadas.
func MoodSparkline(scores []int) string {
	if len(scores) == 0 {
		return ""
	}

	var b strings.Builder
	for _, score := range scores {
		if score < 1 {
			score = 1
		}
		if score > 5 {
			score = 5
		}
		b.WriteRune(sparkLevels[score-1])
	}
	return b.String()
}

// FormatAvgMood formata a média de humor para o painel; sem dados vira
// um traço.
func FormatAvgMood(avg float64) string {
	if avg == 0 {
		return "–"
	}
	return fmt.Sprintf("%.1f", avg)
}

// Plural escolhe a forma singular ou plural conforme a contagem.
func Plural(count int, singular, plural string) string {
	if count == 1 {
		return singular
	}
	return plural
}
