package database

import (
	"database/sql"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/Giterapeuta/app-emagrecimento/internal/scheduler"
)

type Repository struct {
	Db *Database
}

func NewRepository(db *Database) *Repository {
	return &Repository{Db: db}
}

// Reminder repository methods

// Reminders devolve todos os lembretes na ordem de criação. Implementa
// scheduler.Source.
func (r *Repository) Reminders() ([]scheduler.Reminder, error) {
	rows, err := r.Db.db.Query(`
		SELECT id, time, type, enabled
		FROM reminders
		ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reminders []scheduler.Reminder
	for rows.Next() {
		var reminder scheduler.Reminder
		err := rows.Scan(
			&reminder.ID,
			&reminder.Time,
			&reminder.Type,
			&reminder.Enabled,
		)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, reminder)
	}

	return reminders, rows.Err()
}

func (r *Repository) AddReminder(clock string, kind scheduler.ReminderType) (scheduler.Reminder, error) {
	reminder := scheduler.Reminder{
		ID:      uuid.NewString(),
		Time:    clock,
		Type:    kind,
		Enabled: true,
	}
	_, err := r.Db.db.Exec(`
		INSERT INTO reminders (id, time, type, enabled)
		VALUES (?, ?, ?, ?)
	`, reminder.ID, reminder.Time, reminder.Type, reminder.Enabled)
	return reminder, err
}

func (r *Repository) DeleteReminder(id string) error {
	_, err := r.Db.db.Exec("DELETE FROM reminders WHERE id = ?", id)
	return err
}

// ToggleReminder inverte o habilitado do lembrete e devolve o estado novo.
func (r *Repository) ToggleReminder(id string) (bool, error) {
	_, err := r.Db.db.Exec("UPDATE reminders SET enabled = NOT enabled WHERE id = ?", id)
	if err != nil {
		return false, err
	}

	var enabled bool
	err = r.Db.db.QueryRow("SELECT enabled FROM reminders WHERE id = ?", id).Scan(&enabled)
	if err != nil {
		return false, fmt.Errorf("lembrete %s não encontrado: %v", id, err)
	}
	return enabled, nil
}

func (r *Repository) UpdateReminderTime(id, clock string) error {
	_, err := r.Db.db.Exec("UPDATE reminders SET time = ? WHERE id = ?", clock, id)
	return err
}

// EnsureDefaultReminders semeia os lembretes padrão na primeira execução:
// pausas às 10:00 e 15:00 e registro de refeição às 20:00.
func (r *Repository) EnsureDefaultReminders() error {
	var count int
	if err := r.Db.db.QueryRow("SELECT COUNT(*) FROM reminders").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := []struct {
		clock string
		kind  scheduler.ReminderType
	}{
		{"10:00", scheduler.ReminderPause},
		{"15:00", scheduler.ReminderPause},
		{"20:00", scheduler.ReminderLog},
	}

	for _, d := range defaults {
		if _, err := r.AddReminder(d.clock, d.kind); err != nil {
			return err
		}
	}
	return nil
}

// Stats repository methods

func (r *Repository) IncrementPauses() error {
	_, err := r.Db.db.Exec(`
		INSERT INTO profile (key, value) VALUES (?, '1')
		ON CONFLICT(key) DO UPDATE SET value = CAST(value AS INTEGER) + 1
	`, ProfilePauses)
	return err
}

func (r *Repository) AddMoodScore(score int) error {
	if score < 1 || score > 5 {
		return fmt.Errorf("nota de humor %d fora do intervalo 1-5", score)
	}
	_, err := r.Db.db.Exec("INSERT INTO mood_scores (score) VALUES (?)", score)
	return err
}

func (r *Repository) AddMeal(kind MealKind) error {
	_, err := r.Db.db.Exec("INSERT INTO meals (kind) VALUES (?)", kind)
	return err
}

// Stats carrega o agregado completo. Dados ausentes resultam em zeros,
// nunca em erro de primeira execução.
func (r *Repository) Stats() (*DailyStats, error) {
	stats := &DailyStats{}

	pausesStr, err := r.ProfileValue(ProfilePauses)
	if err != nil {
		return nil, err
	}
	if pausesStr != "" {
		pauses, err := strconv.Atoi(pausesStr)
		if err == nil {
			stats.Pauses = pauses
		}
	}

	rows, err := r.Db.db.Query("SELECT score FROM mood_scores ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var score int
		if err := rows.Scan(&score); err != nil {
			return nil, err
		}
		stats.MoodScores = append(stats.MoodScores, score)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	mealRows, err := r.Db.db.Query("SELECT kind FROM meals ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer mealRows.Close()
	for mealRows.Next() {
		var kind MealKind
		if err := mealRows.Scan(&kind); err != nil {
			return nil, err
		}
		stats.Meals = append(stats.Meals, kind)
	}

	return stats, mealRows.Err()
}

// Profile repository methods

func (r *Repository) SetProfileValue(key, value string) error {
	_, err := r.Db.db.Exec(`
		INSERT INTO profile (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

// ProfileValue devolve o valor da chave ou vazio se não existir.
func (r *Repository) ProfileValue(key string) (string, error) {
	var value string
	err := r.Db.db.QueryRow("SELECT value FROM profile WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}
