package database

// MealKind classifica uma refeição registrada.
type MealKind string

const (
	MealMindful   MealKind = "mindful"
	MealUnmindful MealKind = "unmindful"
)

// DailyStats agrega os registros de bem-estar do usuário. Contador de
// pausas só cresce; humor e refeições são sequências append-only.
type DailyStats struct {
	Pauses     int        `json:"pauses"`
	MoodScores []int      `json:"mood_scores"`
	Meals      []MealKind `json:"meals"`
}

// Chaves da tabela profile.
const (
	ProfilePauses = "pauses"
	ProfilePhoto  = "photo_file_id"
)
