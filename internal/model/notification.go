package model

import "time"

// Notification 通知状态记录，不做任何推送/邮件投递
// swagger:model Notification
type Notification struct {
	BaseModel
	UserID uint       `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	Title  string     `gorm:"size:255;not null" json:"title"`
	Body   string     `gorm:"type:text" json:"body"`
	Type   string     `gorm:"size:50" json:"type"`
	IsRead bool       `gorm:"default:false" json:"isRead"`
	ReadAt *time.Time `json:"readAt,omitempty"`
}

func (Notification) TableName() string {
	return "notifications"
}
