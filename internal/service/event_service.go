package service

import (
	"mentora_backend/internal/model"
	"mentora_backend/internal/repository"
	"time"
)

type EventService struct {
	Repo *repository.EventRepository
}

func NewEventService(repo *repository.EventRepository) *EventService {
	return &EventService{Repo: repo}
}

type EventRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	StartTime   time.Time `json:"startTime" binding:"required"`
	EndTime     time.Time `json:"endTime" binding:"required"`
}

func (s *EventService) CreateEvent(userID uint, req EventRequest) (*model.CalendarEvent, error) {
	event := &model.CalendarEvent{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
	}
	if err := s.Repo.Create(event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *EventService) ListEvents(userID uint, from, to time.Time) ([]model.CalendarEvent, error) {
	return s.Repo.FindByUserAndRange(userID, from, to)
}

func (s *EventService) UpdateEvent(userID, eventID uint, req EventRequest) (*model.CalendarEvent, error) {
	event, err := s.Repo.FindByIDAndUser(eventID, userID)
	if err != nil {
		return nil, err
	}
	event.Title = req.Title
	event.Description = req.Description
	event.Location = req.Location
	event.StartTime = req.StartTime
	event.EndTime = req.EndTime
	if err := s.Repo.Update(event); err != nil {
		return nil, err
	}
	return event, nil
}

// MarkAttendance 只记录出勤状态，不触发任何提醒投递
func (s *EventService) MarkAttendance(userID, eventID uint, attended bool) (*model.CalendarEvent, error) {
	event, err := s.Repo.FindByIDAndUser(eventID, userID)
	if err != nil {
		return nil, err
	}
	event.Attended = attended
	if err := s.Repo.Update(event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *EventService) DeleteEvent(userID, eventID uint) error {
	return s.Repo.Delete(eventID, userID)
}
