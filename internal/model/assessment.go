package model

import (
	"encoding/json"
	"time"
)

// AssessmentQuestion 诊断测评题目，Category 决定回答进入上下文的哪个槽位
// swagger:model AssessmentQuestion
type AssessmentQuestion struct {
	BaseModel
	Category string          `gorm:"size:50;not null" json:"category"` // graduation/skills/interests/career_goal/availability/learning_style
	Content  string          `gorm:"type:text;not null" json:"content"`
	Options  json.RawMessage `gorm:"type:json" json:"options,omitempty"`
	Order    int             `gorm:"default:0" json:"order"`
	IsActive bool            `gorm:"default:true" json:"isActive"`
}

func (AssessmentQuestion) TableName() string {
	return "assessment_questions"
}

// AssessmentAttempt 一次测评提交，ContextJSON 保存构建好的上下文快照
// swagger:model AssessmentAttempt
type AssessmentAttempt struct {
	BaseModel
	UserID      uint            `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	Major       string          `gorm:"size:100" json:"major"`
	StudyLevel  string          `gorm:"size:50" json:"studyLevel"`
	Status      string          `gorm:"size:20;default:'completed'" json:"status"`
	ContextJSON json.RawMessage `gorm:"type:json" json:"context,omitempty"`
	SubmittedAt time.Time       `json:"submittedAt"`
	Responses   []AssessmentResponse `gorm:"foreignKey:AttemptID" json:"responses,omitempty"`
}

func (AssessmentAttempt) TableName() string {
	return "assessment_attempts"
}

type AssessmentResponse struct {
	BaseModel
	AttemptID    uint   `gorm:"index;type:bigint unsigned;not null" json:"attemptId"`
	QuestionID   uint   `gorm:"index;type:bigint unsigned" json:"questionId"`
	QuestionText string `gorm:"size:500" json:"questionText"`
	Category     string `gorm:"size:50" json:"category"`
	Value        string `gorm:"type:text" json:"value"`
	Skipped      bool   `gorm:"default:false" json:"skipped"`
}

func (AssessmentResponse) TableName() string {
	return "assessment_responses"
}
