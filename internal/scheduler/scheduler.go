package scheduler

import (
	"fmt"
	"log"
	"sync"
	"time"
)

type ReminderType string

const (
	ReminderPause ReminderType = "pause"
	ReminderLog   ReminderType = "log"
)

// Reminder é um lembrete diário configurado pelo usuário. Time está no
// formato "HH:mm" em hora local.
type Reminder struct {
	ID      string
	Time    string
	Type    ReminderType
	Enabled bool
}

// Notification é o alerta transitório emitido quando um lembrete dispara.
type Notification struct {
	Title   string
	Message string
}

// Source fornece os lembretes correntes a cada verificação, para que
// edições feitas pelo usuário valham já no próximo ciclo.
type Source interface {
	Reminders() ([]Reminder, error)
}

// Notifier entrega a notificação ao usuário.
type Notifier interface {
	Notify(n Notification) error
}

// Scheduler verifica periodicamente se algum lembrete habilitado
// coincide com o minuto atual e dispara no máximo uma notificação por
// minuto. Não há recuperação de lembretes perdidos: se nenhuma
// verificação cair dentro do minuto configurado, o lembrete não dispara
// naquele dia.
type Scheduler struct {
	mu            sync.Mutex
	source        Source
	notifier      Notifier
	now           func() time.Time
	lastTriggered string
}

func New(source Source, notifier Notifier) *Scheduler {
	return &Scheduler{
		source:   source,
		notifier: notifier,
		now:      time.Now,
	}
}

// SetClock troca a fonte de tempo (testes).
func (s *Scheduler) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Poll executa uma verificação. Chamado pelo cron a cada 10 segundos.
func (s *Scheduler) Poll() {
	s.mu.Lock()
	currentTime := s.now().Format("15:04")
	if s.lastTriggered == currentTime {
		s.mu.Unlock()
		return
	}

	reminders, err := s.source.Reminders()
	if err != nil {
		s.mu.Unlock()
		log.Printf("⚠️ Erro ao carregar lembretes: %v", err)
		return
	}

	var matched *Reminder
	for i := range reminders {
		if reminders[i].Enabled && reminders[i].Time == currentTime {
			matched = &reminders[i]
			break
		}
	}
	if matched == nil {
		s.mu.Unlock()
		return
	}

	s.lastTriggered = currentTime
	notifier := s.notifier
	notification := NotificationFor(matched.Type)
	s.mu.Unlock()

	log.Printf("🔔 Lembrete %s disparado às %s", matched.Type, currentTime)
	if err := notifier.Notify(notification); err != nil {
		log.Printf("❌ Erro ao enviar notificação: %v", err)
	}
}

// NotificationFor monta o título e a mensagem conforme o tipo do lembrete.
func NotificationFor(t ReminderType) Notification {
	if t == ReminderPause {
		return Notification{
			Title:   "🌬️ Hora de uma Pausa",
			Message: "Gizele aqui: que tal pararmos um minuto para respirar?",
		}
	}
	return Notification{
		Title:   "📓 Registro de Bem-estar",
		Message: "Como foi sua última refeição? Vamos conversar sobre isso.",
	}
}

// ValidateClock confere o formato "HH:mm" de um horário de lembrete e o
// devolve normalizado com zeros à esquerda.
func ValidateClock(value string) (string, error) {
	parsed, err := time.Parse("15:04", value)
	if err != nil {
		return "", fmt.Errorf("horário inválido %q: use o formato HH:mm", value)
	}
	return parsed.Format("15:04"), nil
}
