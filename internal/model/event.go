package model

import "time"

// CalendarEvent 日历事件，Attended 只记录出勤状态，不负责提醒投递
// swagger:model CalendarEvent
type CalendarEvent struct {
	BaseModel
	UserID      uint      `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Location    string    `gorm:"size:255" json:"location"`
	StartTime   time.Time `gorm:"index;not null" json:"startTime"`
	EndTime     time.Time `gorm:"not null" json:"endTime"`
	Attended    bool      `gorm:"default:false" json:"attended"`
}

func (CalendarEvent) TableName() string {
	return "calendar_events"
}
