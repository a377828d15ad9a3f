package service

import (
	"mentora_backend/internal/model"
	"mentora_backend/internal/repository"
)

// NotificationService 只维护通知状态，投递（推送/邮件）不在范围内
type NotificationService struct {
	Repo *repository.NotificationRepository
}

func NewNotificationService(repo *repository.NotificationRepository) *NotificationService {
	return &NotificationService{Repo: repo}
}

func (s *NotificationService) Record(userID uint, title, body, typ string) error {
	return s.Repo.Create(&model.Notification{
		UserID: userID,
		Title:  title,
		Body:   body,
		Type:   typ,
	})
}

func (s *NotificationService) List(userID uint, unreadOnly bool) ([]model.Notification, error) {
	return s.Repo.FindByUserID(userID, unreadOnly)
}

func (s *NotificationService) MarkRead(userID, id uint) error {
	return s.Repo.MarkRead(id, userID)
}

func (s *NotificationService) MarkAllRead(userID uint) error {
	return s.Repo.MarkAllRead(userID)
}
