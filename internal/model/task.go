package model

import (
	"time"
)

type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskDone       TaskStatus = "done"
)

// Task 每日可调度任务，可选关联到规划步骤
type Task struct {
	BaseModel
	UserID          uint       `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	StepID          *string    `gorm:"index;type:varchar(36)" json:"stepId,omitempty"`
	Title           string     `gorm:"size:255;not null" json:"title"`
	Description     string     `gorm:"type:text" json:"description"`
	ScheduledDate   time.Time  `gorm:"index;type:datetime" json:"scheduledDate"`
	DurationMinutes int        `gorm:"default:0" json:"durationMinutes"`
	Priority        int        `gorm:"default:3" json:"priority"`
	Status          TaskStatus `gorm:"type:enum('pending','in_progress','done');default:'pending'" json:"status"`
	CompletedAt     *time.Time `json:"completedAt,omitempty"`
	// 任务失败/放弃时的反馈记录
	FailureReason string `gorm:"size:255" json:"failureReason,omitempty"`
	Mood          string `gorm:"size:50" json:"mood,omitempty"`
	Comment       string `gorm:"type:text" json:"comment,omitempty"`
}

func (Task) TableName() string {
	return "tasks"
}
