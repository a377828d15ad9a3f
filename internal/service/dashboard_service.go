package service

import (
	"context"
	"encoding/json"
	"fmt"
	"mentora_backend/internal/config"
	"mentora_backend/internal/model"
	"mentora_backend/internal/repository"
	"time"

	"github.com/go-redis/redis/v8"
)

type DashboardService struct {
	TaskRepo    *repository.TaskRepository
	EventRepo   *repository.EventRepository
	SessionRepo *repository.StudySessionRepository
	PlanRepo    *repository.PlanRepository
	Redis       *redis.Client
	Weights     config.ProgressConfig
}

func NewDashboardService(
	taskRepo *repository.TaskRepository,
	eventRepo *repository.EventRepository,
	sessionRepo *repository.StudySessionRepository,
	planRepo *repository.PlanRepository,
	rdb *redis.Client,
	weights config.ProgressConfig,
) *DashboardService {
	return &DashboardService{
		TaskRepo:    taskRepo,
		EventRepo:   eventRepo,
		SessionRepo: sessionRepo,
		PlanRepo:    planRepo,
		Redis:       rdb,
		Weights:     weights,
	}
}

// AttendanceSummary 给前端/外部协作方消费的出勤汇总
type AttendanceSummary struct {
	From               string  `json:"from"`
	To                 string  `json:"to"`
	TasksTotal         int     `json:"tasksTotal"`
	TasksDone          int     `json:"tasksDone"`
	EventsTotal        int     `json:"eventsTotal"`
	EventsAttended     int     `json:"eventsAttended"`
	TaskWeight         float64 `json:"taskWeight"`
	EventWeight        float64 `json:"eventWeight"`
	ProgressPercentage int     `json:"progressPercentage"`
}

const dashboardCacheTTL = 60 * time.Second

// GetAttendanceSummary 区间内任务完成率与事件出勤率的加权综合得分。
// 结果在 Redis 缓存 60 秒。
func (s *DashboardService) GetAttendanceSummary(ctx context.Context, userID uint, from, to time.Time) (*AttendanceSummary, error) {
	cacheKey := fmt.Sprintf("mentora:attendance:%d:%s:%s", userID, from.Format("2006-01-02"), to.Format("2006-01-02"))
	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
			var summary AttendanceSummary
			if json.Unmarshal([]byte(cached), &summary) == nil {
				return &summary, nil
			}
		}
	}

	tasksTotal, tasksDone, err := s.TaskRepo.CountInRange(userID, from, to)
	if err != nil {
		return nil, err
	}
	eventsTotal, eventsAttended, err := s.EventRepo.CountInRange(userID, from, to)
	if err != nil {
		return nil, err
	}

	summary := &AttendanceSummary{
		From:           from.Format("2006-01-02"),
		To:             to.Format("2006-01-02"),
		TasksTotal:     int(tasksTotal),
		TasksDone:      int(tasksDone),
		EventsTotal:    int(eventsTotal),
		EventsAttended: int(eventsAttended),
		TaskWeight:     s.Weights.TaskWeight,
		EventWeight:    s.Weights.EventWeight,
		ProgressPercentage: CompositeScore(
			int(tasksDone), int(tasksTotal),
			int(eventsAttended), int(eventsTotal),
			s.Weights.TaskWeight, s.Weights.EventWeight,
		),
	}

	if s.Redis != nil {
		if data, err := json.Marshal(summary); err == nil {
			s.Redis.Set(ctx, cacheKey, data, dashboardCacheTTL)
		}
	}

	return summary, nil
}

type Dashboard struct {
	TodayTasks        []*model.Task      `json:"todayTasks"`
	ActivePlans       []model.Plan       `json:"activePlans"`
	WeekStudyMinutes  int64              `json:"weekStudyMinutes"`
	AttendanceSummary *AttendanceSummary `json:"attendanceSummary"`
}

// GetUserDashboard 今日任务 + 活跃规划 + 本周学习时长 + 出勤综合分
func (s *DashboardService) GetUserDashboard(ctx context.Context, userID uint) (*Dashboard, error) {
	tasks, err := s.TaskRepo.FindByUserAndDate(userID, time.Now())
	if err != nil {
		return nil, err
	}

	plans, err := s.PlanRepo.ListByUser(userID, "")
	if err != nil {
		return nil, err
	}
	active := make([]model.Plan, 0, len(plans))
	for _, p := range plans {
		if p.Status == model.PlanActive {
			active = append(active, p)
		}
	}

	now := time.Now()
	weekStart := now.AddDate(0, 0, -int(now.Weekday()))
	minutes, err := s.SessionRepo.SumMinutesInRange(userID, weekStart, now)
	if err != nil {
		return nil, err
	}

	summary, err := s.GetAttendanceSummary(ctx, userID, weekStart, now.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		TodayTasks:        tasks,
		ActivePlans:       active,
		WeekStudyMinutes:  minutes,
		AttendanceSummary: summary,
	}, nil
}
