package services

import (
	"github.com/Giterapeuta/app-emagrecimento/internal/database"
	"github.com/Giterapeuta/app-emagrecimento/internal/scheduler"
)

// NotificationSender é a superfície de entrega de alertas ao usuário.
type NotificationSender interface {
	SendMessage(text string) error
	SendNotification(n scheduler.Notification) error
}

// NotificationService liga o agendador de lembretes à superfície de
// entrega (o bot do Telegram).
type NotificationService struct {
	sender    NotificationSender
	scheduler *scheduler.Scheduler
}

func NewNotificationService(sender NotificationSender, repo *database.Repository) *NotificationService {
	ns := &NotificationService{sender: sender}
	ns.scheduler = scheduler.New(repo, ns)
	return ns
}

// CheckReminders executa uma verificação de lembretes. Chamado pelo cron.
func (ns *NotificationService) CheckReminders() {
	ns.scheduler.Poll()
}

// Notify implementa scheduler.Notifier entregando pelo bot.
func (ns *NotificationService) Notify(n scheduler.Notification) error {
	return ns.sender.SendNotification(n)
}
