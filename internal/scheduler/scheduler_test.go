package scheduler

import (
	"testing"
	"time"
)

type staticSource struct {
	reminders []Reminder
	err       error
}

func (s *staticSource) Reminders() ([]Reminder, error) {
	return s.reminders, s.err
}

type captureNotifier struct {
	sent []Notification
}

func (c *captureNotifier) Notify(n Notification) error {
	c.sent = append(c.sent, n)
	return nil
}

func fixedClock(hour, minute, second int) func() time.Time {
	return func() time.Time {
		return time.Date(2026, time.March, 10, hour, minute, second, 0, time.Local)
	}
}

func TestPollFiresOncePerMinute(t *testing.T) {
	source := &staticSource{reminders: []Reminder{
		{ID: "1", Time: "10:00", Type: ReminderPause, Enabled: true},
	}}
	notifier := &captureNotifier{}
	s := New(source, notifier)

	s.SetClock(fixedClock(10, 0, 3))
	s.Poll()
	if len(notifier.sent) != 1 {
		t.Fatalf("esperava 1 notificação, obteve %d", len(notifier.sent))
	}
	if notifier.sent[0].Title != "🌬️ Hora de uma Pausa" {
		t.Fatalf("título inesperado: %q", notifier.sent[0].Title)
	}

	// Segunda verificação no mesmo minuto não dispara de novo.
	s.SetClock(fixedClock(10, 0, 7))
	s.Poll()
	if len(notifier.sent) != 1 {
		t.Fatalf("notificação repetida no mesmo minuto: %d", len(notifier.sent))
	}

	// Minuto seguinte já não coincide com o horário do lembrete.
	s.SetClock(fixedClock(10, 1, 0))
	s.Poll()
	if len(notifier.sent) != 1 {
		t.Fatalf("lembrete disparou fora do horário: %d", len(notifier.sent))
	}
}

func TestPollIgnoresDisabledReminder(t *testing.T) {
	source := &staticSource{reminders: []Reminder{
		{ID: "1", Time: "15:00", Type: ReminderPause, Enabled: false},
	}}
	notifier := &captureNotifier{}
	s := New(source, notifier)

	s.SetClock(fixedClock(15, 0, 0))
	s.Poll()
	if len(notifier.sent) != 0 {
		t.Fatalf("lembrete desabilitado disparou: %d", len(notifier.sent))
	}
}

func TestPollNoMatchKeepsGuardClear(t *testing.T) {
	source := &staticSource{reminders: []Reminder{
		{ID: "1", Time: "20:00", Type: ReminderLog, Enabled: true},
	}}
	notifier := &captureNotifier{}
	s := New(source, notifier)

	// Sem coincidência não marca o minuto; a coincidência real ainda dispara.
	s.SetClock(fixedClock(19, 59, 50))
	s.Poll()
	s.SetClock(fixedClock(20, 0, 0))
	s.Poll()

	if len(notifier.sent) != 1 {
		t.Fatalf("esperava 1 notificação, obteve %d", len(notifier.sent))
	}
	if notifier.sent[0].Title != "📓 Registro de Bem-estar" {
		t.Fatalf("título inesperado: %q", notifier.sent[0].Title)
	}
}

func TestPollEditedTimeTakesEffectNextCheck(t *testing.T) {
	source := &staticSource{reminders: []Reminder{
		{ID: "1", Time: "09:00", Type: ReminderPause, Enabled: true},
	}}
	notifier := &captureNotifier{}
	s := New(source, notifier)

	s.SetClock(fixedClock(9, 30, 0))
	s.Poll()
	if len(notifier.sent) != 0 {
		t.Fatal("não deveria disparar fora do horário")
	}

	source.reminders[0].Time = "09:30"
	s.Poll()
	if len(notifier.sent) != 1 {
		t.Fatalf("edição de horário não valeu na verificação seguinte: %d", len(notifier.sent))
	}
}

func TestPollSharedTimeFiresAtMostOne(t *testing.T) {
	source := &staticSource{reminders: []Reminder{
		{ID: "1", Time: "12:00", Type: ReminderPause, Enabled: true},
		{ID: "2", Time: "12:00", Type: ReminderLog, Enabled: true},
	}}
	notifier := &captureNotifier{}
	s := New(source, notifier)

	s.SetClock(fixedClock(12, 0, 0))
	s.Poll()
	if len(notifier.sent) != 1 {
		t.Fatalf("dois lembretes no mesmo minuto: esperava 1 notificação, obteve %d", len(notifier.sent))
	}
}

func TestNotificationFor(t *testing.T) {
	pause := NotificationFor(ReminderPause)
	if pause.Message != "Gizele aqui: que tal pararmos um minuto para respirar?" {
		t.Fatalf("mensagem de pausa inesperada: %q", pause.Message)
	}
	logEntry := NotificationFor(ReminderLog)
	if logEntry.Message != "Como foi sua última refeição? Vamos conversar sobre isso." {
		t.Fatalf("mensagem de registro inesperada: %q", logEntry.Message)
	}
}

func TestValidateClock(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"10:00", "10:00", false},
		{"9:05", "09:05", false},
		{"23:59", "23:59", false},
		{"24:00", "", true},
		{"10h30", "", true},
		{"", "", true},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ValidateClock(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("esperava erro para %q", tc.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("erro inesperado: %v", err)
			}
			if got != tc.want {
				t.Fatalf("esperava %q, obteve %q", tc.want, got)
			}
		})
	}
}
