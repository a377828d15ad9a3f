package service

import (
	"errors"
	"mentora_backend/internal/model"
	"mentora_backend/internal/repository"
	"time"

	"gorm.io/gorm"
)

type StudySessionService struct {
	Repo *repository.StudySessionRepository
}

func NewStudySessionService(repo *repository.StudySessionRepository) *StudySessionService {
	return &StudySessionService{Repo: repo}
}

// StartSession 同一时刻只允许一个进行中的时段，已有的先自动收尾
func (s *StudySessionService) StartSession(userID uint, subject string) (*model.StudySession, error) {
	if open, err := s.Repo.FindOpenSession(userID); err == nil {
		s.closeSession(open)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	session := &model.StudySession{
		UserID:    userID,
		Subject:   subject,
		StartedAt: time.Now(),
	}
	if err := s.Repo.Create(session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *StudySessionService) StopSession(userID uint) (*model.StudySession, error) {
	open, err := s.Repo.FindOpenSession(userID)
	if err != nil {
		return nil, err
	}
	if err := s.closeSession(open); err != nil {
		return nil, err
	}
	return open, nil
}

func (s *StudySessionService) closeSession(session *model.StudySession) error {
	now := time.Now()
	session.EndedAt = &now
	session.DurationMinutes = int(now.Sub(session.StartedAt).Minutes())
	return s.Repo.Update(session)
}

func (s *StudySessionService) ListSessions(userID uint, from, to time.Time) ([]model.StudySession, error) {
	return s.Repo.FindByUserAndRange(userID, from, to)
}

func (s *StudySessionService) TotalMinutes(userID uint, from, to time.Time) (int64, error) {
	return s.Repo.SumMinutesInRange(userID, from, to)
}
