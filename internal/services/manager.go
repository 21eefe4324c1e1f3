package services

import (
	"github.com/Giterapeuta/app-emagrecimento/internal/database"
)

type ServiceManager struct {
	Notification *NotificationService
	Stats        *StatsService
	Classifier   MessageClassifier
	repository   *database.Repository
}

func NewServiceManager(db *database.Database) *ServiceManager {
	repo := database.NewRepository(db)

	return &ServiceManager{
		Notification: nil,
		Stats:        NewStatsService(repo),
		Classifier:   NewKeywordClassifier(),
		repository:   repo,
	}
}

func (sm *ServiceManager) SetNotificationSender(sender NotificationSender) {
	sm.Notification = NewNotificationService(sender, sm.repository)
}

func (sm *ServiceManager) Repository() *database.Repository {
	return sm.repository
}
