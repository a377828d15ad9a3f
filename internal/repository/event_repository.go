package repository

import (
	"mentora_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type EventRepository struct {
	DB *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{DB: db}
}

func (r *EventRepository) Create(event *model.CalendarEvent) error {
	return r.DB.Create(event).Error
}

func (r *EventRepository) FindByIDAndUser(id, userID uint) (*model.CalendarEvent, error) {
	var e model.CalendarEvent
	err := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&e).Error
	return &e, err
}

func (r *EventRepository) FindByUserAndRange(userID uint, from, to time.Time) ([]model.CalendarEvent, error) {
	var events []model.CalendarEvent
	err := r.DB.Where("user_id = ? AND start_time >= ? AND start_time < ?", userID, from, to).
		Order("start_time ASC").
		Find(&events).Error
	return events, err
}

func (r *EventRepository) Update(event *model.CalendarEvent) error {
	return r.DB.Save(event).Error
}

func (r *EventRepository) Delete(id, userID uint) error {
	res := r.DB.Where("id = ? AND user_id = ?", id, userID).Delete(&model.CalendarEvent{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountInRange 统计已结束事件的总数与出勤数
func (r *EventRepository) CountInRange(userID uint, from, to time.Time) (total, attended int64, err error) {
	if err = r.DB.Model(&model.CalendarEvent{}).
		Where("user_id = ? AND start_time >= ? AND start_time < ?", userID, from, to).
		Count(&total).Error; err != nil {
		return
	}
	err = r.DB.Model(&model.CalendarEvent{}).
		Where("user_id = ? AND start_time >= ? AND start_time < ? AND attended = ?", userID, from, to, true).
		Count(&attended).Error
	return
}
