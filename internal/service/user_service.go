package service

import (
	"mentora_backend/internal/model"
	"mentora_backend/internal/repository"
)

type UserService struct {
	Repo *repository.UserRepository
}

func NewUserService(repo *repository.UserRepository) *UserService {
	return &UserService{Repo: repo}
}

func (s *UserService) GetProfile(userID uint) (*model.User, error) {
	return s.Repo.FindByID(userID)
}

type UpdateProfileRequest struct {
	Name           string `json:"name"`
	Major          string `json:"major"`
	StudyLevel     string `json:"studyLevel"`
	GraduationYear int    `json:"graduationYear"`
	WeeklyHours    int    `json:"weeklyHours"`
	LearningStyle  string `json:"learningStyle"`
	CareerGoal     string `json:"careerGoal"`
	Language       string `json:"language"`
}

func (s *UserService) UpdateProfile(userID uint, req UpdateProfileRequest) (*model.User, error) {
	user, err := s.Repo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	user.Major = req.Major
	user.StudyLevel = req.StudyLevel
	user.GraduationYear = req.GraduationYear
	user.WeeklyHours = req.WeeklyHours
	user.LearningStyle = req.LearningStyle
	user.CareerGoal = req.CareerGoal
	if req.Language != "" {
		user.Language = req.Language
	}

	if err := s.Repo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateAvatar(userID uint, url string) error {
	user, err := s.Repo.FindByID(userID)
	if err != nil {
		return err
	}
	user.Avatar = url
	return s.Repo.Update(user)
}
