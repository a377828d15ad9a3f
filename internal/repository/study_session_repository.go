package repository

import (
	"mentora_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type StudySessionRepository struct {
	DB *gorm.DB
}

func NewStudySessionRepository(db *gorm.DB) *StudySessionRepository {
	return &StudySessionRepository{DB: db}
}

func (r *StudySessionRepository) Create(session *model.StudySession) error {
	return r.DB.Create(session).Error
}

func (r *StudySessionRepository) FindByIDAndUser(id, userID uint) (*model.StudySession, error) {
	var s model.StudySession
	err := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&s).Error
	return &s, err
}

func (r *StudySessionRepository) FindOpenSession(userID uint) (*model.StudySession, error) {
	var s model.StudySession
	err := r.DB.Where("user_id = ? AND ended_at IS NULL", userID).
		Order("started_at DESC").
		First(&s).Error
	return &s, err
}

func (r *StudySessionRepository) Update(session *model.StudySession) error {
	return r.DB.Save(session).Error
}

func (r *StudySessionRepository) FindByUserAndRange(userID uint, from, to time.Time) ([]model.StudySession, error) {
	var sessions []model.StudySession
	err := r.DB.Where("user_id = ? AND started_at >= ? AND started_at < ?", userID, from, to).
		Order("started_at DESC").
		Find(&sessions).Error
	return sessions, err
}

// SumMinutesInRange 区间内累计学习分钟数
func (r *StudySessionRepository) SumMinutesInRange(userID uint, from, to time.Time) (int64, error) {
	var total int64
	err := r.DB.Model(&model.StudySession{}).
		Where("user_id = ? AND started_at >= ? AND started_at < ?", userID, from, to).
		Select("COALESCE(SUM(duration_minutes), 0)").
		Scan(&total).Error
	return total, err
}
