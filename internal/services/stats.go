package services

import (
	"log"

	"github.com/Giterapeuta/app-emagrecimento/internal/database"
)

type StatsService struct {
	repository *database.Repository
}

func NewStatsService(repo *database.Repository) *StatsService {
	return &StatsService{
		repository: repo,
	}
}

// RecordPause registra uma pausa de respiração concluída.
func (ss *StatsService) RecordPause() {
	if err := ss.repository.IncrementPauses(); err != nil {
		log.Printf("⚠️ Erro ao registrar pausa: %v", err)
	}
}

// Apply grava no histórico o que o classificador extraiu da mensagem.
func (ss *StatsService) Apply(c Classification) {
	if c.Meal != nil {
		if err := ss.repository.AddMeal(*c.Meal); err != nil {
			log.Printf("⚠️ Erro ao registrar refeição: %v", err)
		}
	}
	if c.Mood > 0 {
		if err := ss.repository.AddMoodScore(c.Mood); err != nil {
			log.Printf("⚠️ Erro ao registrar humor: %v", err)
		}
	}
}

// Summary são os números do painel de bem-estar.
type Summary struct {
	Pauses       int     `json:"pauses"`
	AvgMood      float64 `json:"avg_mood"`
	MoodScores   []int   `json:"mood_scores"`
	MindfulMeals int     `json:"mindful_meals"`
	TotalMeals   int     `json:"total_meals"`
}

func (ss *StatsService) Summary() (*Summary, error) {
	stats, err := ss.repository.Stats()
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		Pauses:     stats.Pauses,
		MoodScores: stats.MoodScores,
		TotalMeals: len(stats.Meals),
	}

	if len(stats.MoodScores) > 0 {
		total := 0
		for _, score := range stats.MoodScores {
			total += score
		}
		summary.AvgMood = float64(total) / float64(len(stats.MoodScores))
	}

	for _, meal := range stats.Meals {
		if meal == database.MealMindful {
			summary.MindfulMeals++
		}
	}

	return summary, nil
}
