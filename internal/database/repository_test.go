package database

import (
	"testing"

	"github.com/Giterapeuta/app-emagrecimento/internal/scheduler"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("erro ao abrir BD em memória: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewRepository(db)
}

func TestEnsureDefaultReminders(t *testing.T) {
	repo := newTestRepo(t)

	if err := repo.EnsureDefaultReminders(); err != nil {
		t.Fatalf("erro ao semear: %v", err)
	}

	reminders, err := repo.Reminders()
	if err != nil {
		t.Fatalf("erro ao listar: %v", err)
	}
	if len(reminders) != 3 {
		t.Fatalf("esperava 3 lembretes padrão, obteve %d", len(reminders))
	}
	if reminders[0].Time != "10:00" || reminders[0].Type != scheduler.ReminderPause {
		t.Fatalf("primeiro lembrete inesperado: %+v", reminders[0])
	}
	if reminders[2].Time != "20:00" || reminders[2].Type != scheduler.ReminderLog {
		t.Fatalf("terceiro lembrete inesperado: %+v", reminders[2])
	}

	// Segunda chamada não duplica.
	if err := repo.EnsureDefaultReminders(); err != nil {
		t.Fatalf("erro na segunda semeadura: %v", err)
	}
	reminders, _ = repo.Reminders()
	if len(reminders) != 3 {
		t.Fatalf("semeadura duplicou lembretes: %d", len(reminders))
	}
}

func TestReminderLifecycle(t *testing.T) {
	repo := newTestRepo(t)

	added, err := repo.AddReminder("08:30", scheduler.ReminderPause)
	if err != nil {
		t.Fatalf("erro ao adicionar: %v", err)
	}
	if added.ID == "" || !added.Enabled {
		t.Fatalf("lembrete recém-criado inválido: %+v", added)
	}

	enabled, err := repo.ToggleReminder(added.ID)
	if err != nil {
		t.Fatalf("erro ao alternar: %v", err)
	}
	if enabled {
		t.Fatal("esperava lembrete desabilitado após alternar")
	}

	if err := repo.UpdateReminderTime(added.ID, "09:45"); err != nil {
		t.Fatalf("erro ao editar horário: %v", err)
	}

	reminders, err := repo.Reminders()
	if err != nil {
		t.Fatalf("erro ao listar: %v", err)
	}
	if len(reminders) != 1 || reminders[0].Time != "09:45" || reminders[0].Enabled {
		t.Fatalf("estado inesperado: %+v", reminders)
	}

	if err := repo.DeleteReminder(added.ID); err != nil {
		t.Fatalf("erro ao remover: %v", err)
	}
	reminders, _ = repo.Reminders()
	if len(reminders) != 0 {
		t.Fatalf("lembrete não foi removido: %+v", reminders)
	}
}

func TestStatsAccumulate(t *testing.T) {
	repo := newTestRepo(t)

	// Primeira leitura em banco vazio devolve zeros, não erro.
	stats, err := repo.Stats()
	if err != nil {
		t.Fatalf("erro na primeira leitura: %v", err)
	}
	if stats.Pauses != 0 || len(stats.MoodScores) != 0 || len(stats.Meals) != 0 {
		t.Fatalf("esperava estatísticas zeradas, obteve %+v", stats)
	}

	for i := 0; i < 3; i++ {
		if err := repo.IncrementPauses(); err != nil {
			t.Fatalf("erro ao incrementar pausas: %v", err)
		}
	}
	if err := repo.AddMoodScore(5); err != nil {
		t.Fatalf("erro ao registrar humor: %v", err)
	}
	if err := repo.AddMoodScore(2); err != nil {
		t.Fatalf("erro ao registrar humor: %v", err)
	}
	if err := repo.AddMeal(MealMindful); err != nil {
		t.Fatalf("erro ao registrar refeição: %v", err)
	}
	if err := repo.AddMeal(MealUnmindful); err != nil {
		t.Fatalf("erro ao registrar refeição: %v", err)
	}

	stats, err = repo.Stats()
	if err != nil {
		t.Fatalf("erro ao ler estatísticas: %v", err)
	}
	if stats.Pauses != 3 {
		t.Fatalf("esperava 3 pausas, obteve %d", stats.Pauses)
	}
	if len(stats.MoodScores) != 2 || stats.MoodScores[0] != 5 || stats.MoodScores[1] != 2 {
		t.Fatalf("notas de humor inesperadas: %v", stats.MoodScores)
	}
	if len(stats.Meals) != 2 || stats.Meals[0] != MealMindful {
		t.Fatalf("refeições inesperadas: %v", stats.Meals)
	}
}

func TestAddMoodScoreRange(t *testing.T) {
	repo := newTestRepo(t)

	if err := repo.AddMoodScore(0); err == nil {
		t.Fatal("esperava erro para nota abaixo do intervalo")
	}
	if err := repo.AddMoodScore(6); err == nil {
		t.Fatal("esperava erro para nota acima do intervalo")
	}
}

func TestProfileValues(t *testing.T) {
	repo := newTestRepo(t)

	value, err := repo.ProfileValue(ProfilePhoto)
	if err != nil {
		t.Fatalf("erro em chave ausente: %v", err)
	}
	if value != "" {
		t.Fatalf("chave ausente deveria ser vazia, obteve %q", value)
	}

	if err := repo.SetProfileValue(ProfilePhoto, "file-abc"); err != nil {
		t.Fatalf("erro ao gravar: %v", err)
	}
	if err := repo.SetProfileValue(ProfilePhoto, "file-def"); err != nil {
		t.Fatalf("erro ao sobrescrever: %v", err)
	}

	value, err = repo.ProfileValue(ProfilePhoto)
	if err != nil {
		t.Fatalf("erro ao ler: %v", err)
	}
	if value != "file-def" {
		t.Fatalf("esperava valor sobrescrito, obteve %q", value)
	}
}
