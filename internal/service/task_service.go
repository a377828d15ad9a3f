package service

import (
	"mentora_backend/internal/model"
	"mentora_backend/internal/repository"
	"time"
)

type TaskService struct {
	Repo *repository.TaskRepository
}

func NewTaskService(repo *repository.TaskRepository) *TaskService {
	return &TaskService{Repo: repo}
}

type TaskRequest struct {
	Title           string  `json:"title" binding:"required"`
	Description     string  `json:"description"`
	ScheduledDate   string  `json:"scheduledDate" binding:"required"` // 2006-01-02
	DurationMinutes int     `json:"durationMinutes"`
	Priority        int     `json:"priority"`
	StepID          *string `json:"stepId"`
}

func (s *TaskService) CreateTask(userID uint, req TaskRequest) (*model.Task, error) {
	date, err := time.Parse("2006-01-02", req.ScheduledDate)
	if err != nil {
		return nil, err
	}
	priority := req.Priority
	if priority < 1 || priority > 5 {
		priority = 3
	}
	task := &model.Task{
		UserID:          userID,
		StepID:          req.StepID,
		Title:           req.Title,
		Description:     req.Description,
		ScheduledDate:   date,
		DurationMinutes: req.DurationMinutes,
		Priority:        priority,
		Status:          model.TaskPending,
	}
	if err := s.Repo.Create(task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) ListTasks(userID uint) ([]*model.Task, error) {
	return s.Repo.FindByUserID(userID)
}

func (s *TaskService) GetTodayTasks(userID uint) ([]*model.Task, error) {
	return s.Repo.FindByUserAndDate(userID, time.Now())
}

func (s *TaskService) UpdateTask(userID, taskID uint, req TaskRequest) (*model.Task, error) {
	task, err := s.Repo.FindByIDAndUser(taskID, userID)
	if err != nil {
		return nil, err
	}
	if req.ScheduledDate != "" {
		date, err := time.Parse("2006-01-02", req.ScheduledDate)
		if err != nil {
			return nil, err
		}
		task.ScheduledDate = date
	}
	task.Title = req.Title
	task.Description = req.Description
	task.DurationMinutes = req.DurationMinutes
	if req.Priority >= 1 && req.Priority <= 5 {
		task.Priority = req.Priority
	}
	task.StepID = req.StepID

	if err := s.Repo.Update(task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) CompleteTask(userID, taskID uint) (*model.Task, error) {
	task, err := s.Repo.FindByIDAndUser(taskID, userID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	task.Status = model.TaskDone
	task.CompletedAt = &now
	if err := s.Repo.Update(task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) StartTask(userID, taskID uint) (*model.Task, error) {
	task, err := s.Repo.FindByIDAndUser(taskID, userID)
	if err != nil {
		return nil, err
	}
	if task.Status == model.TaskPending {
		task.Status = model.TaskInProgress
		if err := s.Repo.Update(task); err != nil {
			return nil, err
		}
	}
	return task, nil
}

type TaskFeedbackRequest struct {
	FailureReason string `json:"failureReason"`
	Mood          string `json:"mood"`
	Comment       string `json:"comment"`
}

// FailTask 放弃/失败时记录反馈，任务退回 pending 供重新安排
func (s *TaskService) FailTask(userID, taskID uint, req TaskFeedbackRequest) (*model.Task, error) {
	task, err := s.Repo.FindByIDAndUser(taskID, userID)
	if err != nil {
		return nil, err
	}
	task.Status = model.TaskPending
	task.CompletedAt = nil
	task.FailureReason = req.FailureReason
	task.Mood = req.Mood
	task.Comment = req.Comment
	if err := s.Repo.Update(task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) DeleteTask(userID, taskID uint) error {
	return s.Repo.Delete(taskID, userID)
}
