package database

import (
	"fmt"
	"log"
	"mentora_backend/internal/config"
	"mentora_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
		cfg.Database.Charset,
		cfg.Database.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	// release 模式默认不做自动迁移，需通过 --migrate 显式开启
	if cfg.Server.Mode == "release" && !cfg.ForceMigrate {
		return db, nil
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.RefreshToken{},
		&model.AssessmentQuestion{},
		&model.AssessmentAttempt{},
		&model.AssessmentResponse{},
		&model.Plan{},
		&model.PlanStep{},
		&model.Checkpoint{},
		&model.SkillRequirement{},
		&model.PlanResource{},
		&model.Task{},
		&model.CalendarEvent{},
		&model.Note{},
		&model.StudySession{},
		&model.Notification{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// 默认评估问卷题目（库里没有题目时插入一套基础问卷）
	var count int64
	db.Model(&model.AssessmentQuestion{}).Count(&count)
	if count == 0 {
		defaultQuestions := []model.AssessmentQuestion{
			{Category: "graduation", Content: "When do you expect to graduate?", Order: 1, IsActive: true},
			{Category: "availability", Content: "How many hours per week can you dedicate to studying?", Order: 2, IsActive: true},
			{Category: "skills", Content: "Which skills do you already feel confident in?", Order: 3, IsActive: true},
			{Category: "interests", Content: "Which topics or fields interest you the most?", Order: 4, IsActive: true},
			{Category: "career_goal", Content: "What role do you see yourself in after graduation?", Order: 5, IsActive: true},
			{Category: "learning_style", Content: "How do you prefer to learn new material?", Order: 6, IsActive: true},
		}
		for _, q := range defaultQuestions {
			db.Create(&q)
		}
	}

	return db, nil
}
