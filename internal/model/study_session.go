package model

import "time"

// StudySession 学习时段记录
// swagger:model StudySession
type StudySession struct {
	BaseModel
	UserID          uint       `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	Subject         string     `gorm:"size:100" json:"subject"`
	StartedAt       time.Time  `gorm:"index;not null" json:"startedAt"`
	EndedAt         *time.Time `json:"endedAt,omitempty"`
	DurationMinutes int        `gorm:"default:0" json:"durationMinutes"`
}

func (StudySession) TableName() string {
	return "study_sessions"
}
