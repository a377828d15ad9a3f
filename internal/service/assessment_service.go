package service

import (
	"encoding/json"
	"mentora_backend/internal/model"
	"mentora_backend/internal/repository"
	"mentora_backend/pkg/logger"
	"time"

	"go.uber.org/zap"
)

type AssessmentService struct {
	Repo     *repository.AssessmentRepository
	UserRepo *repository.UserRepository
}

func NewAssessmentService(repo *repository.AssessmentRepository, userRepo *repository.UserRepository) *AssessmentService {
	return &AssessmentService{Repo: repo, UserRepo: userRepo}
}

type AssessmentQuestionRequest struct {
	Category string          `json:"category" binding:"required"`
	Content  string          `json:"content" binding:"required"`
	Options  json.RawMessage `json:"options"`
	Order    int             `json:"order"`
	IsActive *bool           `json:"isActive"`
}

func (s *AssessmentService) CreateQuestion(req AssessmentQuestionRequest) (*model.AssessmentQuestion, error) {
	q := &model.AssessmentQuestion{
		Category: req.Category,
		Content:  req.Content,
		Options:  req.Options,
		Order:    req.Order,
		IsActive: true,
	}
	if req.IsActive != nil {
		q.IsActive = *req.IsActive
	}
	if err := s.Repo.CreateQuestion(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *AssessmentService) ListQuestions(includeInactive bool) ([]model.AssessmentQuestion, error) {
	if includeInactive {
		return s.Repo.ListAllQuestions()
	}
	return s.Repo.ListActiveQuestions()
}

func (s *AssessmentService) UpdateQuestion(id uint, req AssessmentQuestionRequest) (*model.AssessmentQuestion, error) {
	q, err := s.Repo.FindQuestionByID(id)
	if err != nil {
		return nil, err
	}
	q.Category = req.Category
	q.Content = req.Content
	q.Options = req.Options
	q.Order = req.Order
	if req.IsActive != nil {
		q.IsActive = *req.IsActive
	}
	if err := s.Repo.UpdateQuestion(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *AssessmentService) DeleteQuestion(id uint) error {
	return s.Repo.DeleteQuestion(id)
}

type AttemptResponseRequest struct {
	QuestionID uint   `json:"questionId"`
	Value      string `json:"value"`
	Skipped    bool   `json:"skipped"`
}

type SubmitAttemptRequest struct {
	Major      string                   `json:"major"`
	StudyLevel string                   `json:"studyLevel"`
	Responses  []AttemptResponseRequest `json:"responses" binding:"required"`
}

// SubmitAttempt 落库答卷并立即构建上下文快照挂到提交记录上。
// 上下文构建永不失败，所以提交也不会因为脏答案而失败。
func (s *AssessmentService) SubmitAttempt(userID uint, req SubmitAttemptRequest) (*model.AssessmentAttempt, error) {
	questions, err := s.Repo.ListAllQuestions()
	if err != nil {
		return nil, err
	}
	questionMap := make(map[uint]model.AssessmentQuestion, len(questions))
	for _, q := range questions {
		questionMap[q.ID] = q
	}

	major, studyLevel := req.Major, req.StudyLevel
	if major == "" || studyLevel == "" {
		if user, err := s.UserRepo.FindByID(userID); err == nil {
			if major == "" {
				major = user.Major
			}
			if studyLevel == "" {
				studyLevel = user.StudyLevel
			}
		}
	}

	attempt := &model.AssessmentAttempt{
		UserID:      userID,
		Major:       major,
		StudyLevel:  studyLevel,
		Status:      "completed",
		SubmittedAt: time.Now(),
	}

	for _, r := range req.Responses {
		resp := model.AssessmentResponse{
			QuestionID: r.QuestionID,
			Value:      r.Value,
			Skipped:    r.Skipped,
		}
		if q, ok := questionMap[r.QuestionID]; ok {
			resp.Category = q.Category
			resp.QuestionText = q.Content
		}
		attempt.Responses = append(attempt.Responses, resp)
	}

	actx := BuildAssessmentContext(major, studyLevel, attempt.Responses)
	if raw, err := MarshalContext(actx); err == nil {
		attempt.ContextJSON = raw
	} else {
		logger.Log.Warn("failed to serialize assessment context", zap.Uint("userId", userID), zap.Error(err))
	}

	if err := s.Repo.CreateAttempt(attempt); err != nil {
		return nil, err
	}
	return attempt, nil
}

func (s *AssessmentService) GetLatestAttempt(userID uint) (*model.AssessmentAttempt, error) {
	return s.Repo.FindLatestAttempt(userID)
}

func (s *AssessmentService) GetAttempt(id, userID uint) (*model.AssessmentAttempt, error) {
	return s.Repo.FindAttemptByIDAndUser(id, userID)
}
