package services

import (
	"strings"

	"github.com/Giterapeuta/app-emagrecimento/internal/database"
)

// Classification é o resultado da análise de uma mensagem do usuário.
// Meal nil significa que a mensagem não fala de refeição; Mood zero
// significa que nenhum sinal de humor foi detectado.
type Classification struct {
	Meal *database.MealKind
	Mood int
}

// MessageClassifier extrai registros de refeição e humor do texto livre
// da conversa. A implementação padrão é uma heurística por palavras-chave;
// a interface permite trocá-la por um classificador real depois.
type MessageClassifier interface {
	Classify(text string) Classification
}

// KeywordClassifier reconhece sinais por substrings em português.
type KeywordClassifier struct{}

func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{}
}

func (kc *KeywordClassifier) Classify(text string) Classification {
	low := strings.ToLower(text)
	var result Classification

	if strings.Contains(low, "refeição") || strings.Contains(low, "comi") {
		kind := database.MealMindful
		if strings.Contains(low, "rápido") || strings.Contains(low, "excesso") {
			kind = database.MealUnmindful
		}
		result.Meal = &kind
	}

	switch {
	case strings.Contains(low, "feliz"), strings.Contains(low, "bem"), strings.Contains(low, "consegui"):
		result.Mood = 5
	case strings.Contains(low, "difícil"), strings.Contains(low, "triste"), strings.Contains(low, "ansiosa"):
		result.Mood = 2
	}

	return result
}
