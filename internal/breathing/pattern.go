package breathing

import (
	"fmt"
	"time"
)

// Pattern descreve uma técnica de respiração guiada. Hold e HoldPost
// iguais a zero significam que a fase não existe nessa técnica.
type Pattern struct {
	Key         string
	Name        string
	Description string
	GuideText   string
	Inhale      time.Duration
	Hold        time.Duration
	Exhale      time.Duration
	HoldPost    time.Duration
}

func (p Pattern) Validate() error {
	if p.Inhale <= 0 {
		return fmt.Errorf("técnica %q: duração de inspiração deve ser positiva", p.Key)
	}
	if p.Exhale <= 0 {
		return fmt.Errorf("técnica %q: duração de expiração deve ser positiva", p.Key)
	}
	if p.Hold < 0 || p.HoldPost < 0 {
		return fmt.Errorf("técnica %q: duração de pausa não pode ser negativa", p.Key)
	}
	return nil
}

// DefaultPatterns retorna o catálogo embutido de técnicas.
func DefaultPatterns() []Pattern {
	return []Pattern{
		{
			Key:         "4-7-8",
			Name:        "Técnica 4-7-8",
			Description: "Ideal para reduzir a ansiedade e urgência alimentar.",
			GuideText: "A técnica 4-7-8 ajuda a acalmar o sistema nervoso. " +
				"Inspire pelo nariz contando até quatro. Segure o ar por sete segundos. " +
				"E solte lentamente pela boca por oito segundos. Siga o ritmo do círculo.",
			Inhale: 4 * time.Second,
			Hold:   7 * time.Second,
			Exhale: 8 * time.Second,
		},
		{
			Key:         "quadrada",
			Name:        "Respiração Quadrada",
			Description: "Foco total e equilíbrio emocional.",
			GuideText: "A respiração quadrada traz equilíbrio. Inspire por quatro segundos. " +
				"Segure por quatro. Expire por quatro. E aguarde mais quatro antes da próxima. " +
				"Vamos começar.",
			Inhale:   4 * time.Second,
			Hold:     4 * time.Second,
			Exhale:   4 * time.Second,
			HoldPost: 4 * time.Second,
		},
		{
			Key:         "calma",
			Name:        "Respiração Profunda",
			Description: "Acalma o sistema nervoso rapidamente.",
			GuideText: "Feche os olhos se desejar. Inspire profundamente preenchendo o abdômen. " +
				"E expire soltando todo o ar, relaxando os ombros. Siga o movimento suave do guia.",
			Inhale: 5 * time.Second,
			Exhale: 5 * time.Second,
		},
	}
}
