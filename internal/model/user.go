package model

import (
	"time"
)

type UserRole string

const (
	Student UserRole = "student"
	Admin   UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Name           string   `gorm:"size:100;not null" json:"name"`
	Email          string   `gorm:"size:100;unique;not null" json:"email"`
	Password       string   `gorm:"size:100;not null" json:"-"`
	Role           UserRole `gorm:"type:enum('student','admin');default:'student'" json:"role"`
	Major          string   `gorm:"size:100" json:"major"`
	StudyLevel     string   `gorm:"size:50" json:"studyLevel"` // 本科/硕士/博士 或 freshman...senior
	GraduationYear int      `gorm:"default:0" json:"graduationYear"`
	WeeklyHours    int      `gorm:"default:0" json:"weeklyHours"` // 每周可用学习小时数
	LearningStyle  string   `gorm:"size:50" json:"learningStyle"`
	CareerGoal     string   `gorm:"type:text" json:"careerGoal"`
	Avatar         string   `gorm:"size:255" json:"avatar"`
	Language       string   `gorm:"size:10;default:'en'" json:"language"`
	Disabled       bool     `gorm:"default:false" json:"disabled"`
	LastLogin      time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
	LastSeen       time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}

// RefreshToken 登录刷新令牌，过期记录由后台任务定期清理
type RefreshToken struct {
	BaseModel
	UserID    uint       `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	Token     string     `gorm:"size:128;uniqueIndex;not null" json:"-"`
	ExpiresAt time.Time  `gorm:"index;not null" json:"expiresAt"`
	RevokedAt *time.Time `json:"revokedAt,omitempty"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}
