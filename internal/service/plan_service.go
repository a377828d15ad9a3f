package service

import (
	"context"
	"fmt"
	"mentora_backend/internal/model"
	"mentora_backend/internal/repository"
	"mentora_backend/internal/util"
	"mentora_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type PlanService struct {
	Repo           *repository.PlanRepository
	AssessmentRepo *repository.AssessmentRepository
	AI             AICompleter
	Notifier       *NotificationService // 可为 nil
}

func NewPlanService(repo *repository.PlanRepository, assessmentRepo *repository.AssessmentRepository, ai AICompleter, notifier *NotificationService) *PlanService {
	return &PlanService{
		Repo:           repo,
		AssessmentRepo: assessmentRepo,
		AI:             ai,
		Notifier:       notifier,
	}
}

type GeneratePlanRequest struct {
	AttemptID              uint   `json:"attemptId"` // 0 表示取最近一次测评
	AdditionalInstructions string `json:"additionalInstructions"`
}

type GenerationResult struct {
	Plan     *model.Plan `json:"plan"`
	Warnings []string    `json:"warnings,omitempty"`
}

// Generate 生成规划的完整管线：
// 测评上下文 → 提示词 → AI → 校验 → 组装 → 单事务落库。
// AI 超时/结构不合格都不会留下任何半成品规划。
func (s *PlanService) Generate(ctx context.Context, userID uint, kind model.PlanKind, req GeneratePlanRequest) (*GenerationResult, error) {
	// 1. 定位测评记录
	var attempt *model.AssessmentAttempt
	var err error
	if req.AttemptID > 0 {
		attempt, err = s.AssessmentRepo.FindAttemptByIDAndUser(req.AttemptID, userID)
	} else {
		attempt, err = s.AssessmentRepo.FindLatestAttempt(userID)
	}
	if err != nil {
		return nil, err
	}

	// 2. 恢复上下文快照，没有快照就从答卷行重建
	var actx *AssessmentContext
	if len(attempt.ContextJSON) > 0 {
		actx, err = UnmarshalContext(attempt.ContextJSON)
		if err != nil {
			logger.Log.Warn("context snapshot unreadable, rebuilding",
				zap.Uint("attemptId", attempt.ID), zap.Error(err))
			actx = nil
		}
	}
	if actx == nil {
		actx = BuildAssessmentContext(attempt.Major, attempt.StudyLevel, attempt.Responses)
	}

	// 3. 构建提示词并调用 AI
	tmpl := NewPlanPromptTemplate(kind)
	userPrompt := tmpl.BuildUserPrompt(actx, req.AdditionalInstructions)

	raw, err := s.AI.Complete(ctx, tmpl.System, userPrompt)
	if err != nil {
		return nil, err
	}

	// 4. 最低门槛校验
	if ok, reason := tmpl.ValidateResponse(raw); !ok {
		logger.Log.Warn("ai plan response rejected",
			zap.Uint("userId", userID), zap.String("kind", string(kind)), zap.String("reason", reason))
		return nil, fmt.Errorf("%w: %s", util.ErrInvalidAIResponse, reason)
	}

	resp, err := tmpl.ParseResponse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrInvalidAIResponse, err)
	}

	// 5. 组装实体图
	plan, warnings, err := AssemblePlan(userID, attempt.ID, kind, resp)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrInvalidAIResponse, err)
	}
	for _, w := range warnings {
		logger.Log.Warn("plan assembly warning", zap.String("planId", plan.ID), zap.String("warning", w))
	}

	// 6. 整图原子落库，再归档被取代的旧规划
	if err := s.Repo.CreateGraph(plan); err != nil {
		return nil, err
	}
	if err := s.Repo.ArchiveSuperseded(userID, kind, plan.ID); err != nil {
		logger.Log.Warn("failed to archive superseded plans", zap.Uint("userId", userID), zap.Error(err))
	}

	if s.Notifier != nil {
		if err := s.Notifier.Record(userID, "新规划已生成", plan.Title, "plan_generated"); err != nil {
			logger.Log.Warn("failed to record plan notification", zap.Uint("userId", userID), zap.Error(err))
		}
	}

	return &GenerationResult{Plan: plan, Warnings: warnings}, nil
}

func (s *PlanService) GetPlan(planID string, userID uint) (*model.Plan, error) {
	return s.Repo.FindByIDAndUser(planID, userID)
}

func (s *PlanService) ListPlans(userID uint, kind model.PlanKind) ([]model.Plan, error) {
	return s.Repo.ListByUser(userID, kind)
}

// PlanSummary 进度更新后的汇总视图
type PlanSummary struct {
	ID       string           `json:"id"`
	Title    string           `json:"title"`
	Kind     model.PlanKind   `json:"kind"`
	Status   model.PlanStatus `json:"status"`
	Progress int              `json:"progress"`
	Steps    []StepSummary    `json:"steps"`
}

type StepSummary struct {
	ID         string           `json:"id"`
	Title      string           `json:"title"`
	OrderIndex int              `json:"orderIndex"`
	Status     model.StepStatus `json:"status"`
	Progress   int              `json:"progress"`
}

func summarize(plan *model.Plan) *PlanSummary {
	sum := &PlanSummary{
		ID:       plan.ID,
		Title:    plan.Title,
		Kind:     plan.Kind,
		Status:   plan.Status,
		Progress: plan.Progress,
	}
	for i := range plan.Steps {
		st := &plan.Steps[i]
		sum.Steps = append(sum.Steps, StepSummary{
			ID:         st.ID,
			Title:      st.Title,
			OrderIndex: st.OrderIndex,
			Status:     st.Status,
			Progress:   st.Progress,
		})
	}
	return sum
}

// UpdateCheckpoint 勾选/取消检查点，随后自底向上重算并带乐观锁写回。
// 版本冲突原样返回 ErrVersionConflict，由调用方重试。
func (s *PlanService) UpdateCheckpoint(userID uint, planID, checkpointID string, isCompleted bool) (*PlanSummary, error) {
	plan, err := s.Repo.FindByIDAndUser(planID, userID)
	if err != nil {
		return nil, err
	}

	var target *model.Checkpoint
	var step *model.PlanStep
	for i := range plan.Steps {
		for j := range plan.Steps[i].Checkpoints {
			if plan.Steps[i].Checkpoints[j].ID == checkpointID {
				step = &plan.Steps[i]
				target = &plan.Steps[i].Checkpoints[j]
			}
		}
	}
	if target == nil {
		return nil, util.ErrStepNotFound
	}
	// 锁定/跳过的步骤不接受叶子变更
	if step.Status == model.StepLocked || step.Status == model.StepSkipped {
		return nil, ErrInvalidTransition
	}

	target.IsCompleted = isCompleted
	TouchStep(step)
	version := plan.Version
	Recalculate(plan)

	err = s.Repo.SaveProgress(plan, version, func(tx *gorm.DB) error {
		return tx.Model(&model.Checkpoint{}).
			Where("id = ?", target.ID).
			Update("is_completed", target.IsCompleted).Error
	})
	if err != nil {
		return nil, err
	}
	return summarize(plan), nil
}

// UpdateSkill 更新技能达成状态，存在技能要求的步骤进度完全由技能口径决定
func (s *PlanService) UpdateSkill(userID uint, planID, skillID string, status model.SkillStatus) (*PlanSummary, error) {
	switch status {
	case model.SkillNotStarted, model.SkillInProgress, model.SkillAchieved:
	default:
		return nil, fmt.Errorf("unknown skill status %q", status)
	}

	plan, err := s.Repo.FindByIDAndUser(planID, userID)
	if err != nil {
		return nil, err
	}

	var target *model.SkillRequirement
	var step *model.PlanStep
	for i := range plan.Steps {
		for j := range plan.Steps[i].Skills {
			if plan.Steps[i].Skills[j].ID == skillID {
				step = &plan.Steps[i]
				target = &plan.Steps[i].Skills[j]
			}
		}
	}
	if target == nil {
		return nil, util.ErrStepNotFound
	}
	if step.Status == model.StepLocked || step.Status == model.StepSkipped {
		return nil, ErrInvalidTransition
	}

	target.Status = status
	TouchStep(step)
	version := plan.Version
	Recalculate(plan)

	err = s.Repo.SaveProgress(plan, version, func(tx *gorm.DB) error {
		return tx.Model(&model.SkillRequirement{}).
			Where("id = ?", target.ID).
			Update("status", target.Status).Error
	})
	if err != nil {
		return nil, err
	}
	return summarize(plan), nil
}

// OpenResource 标记资源已打开
func (s *PlanService) OpenResource(userID uint, planID, resourceID string) (*PlanSummary, error) {
	plan, err := s.Repo.FindByIDAndUser(planID, userID)
	if err != nil {
		return nil, err
	}

	var target *model.PlanResource
	for i := range plan.Resources {
		if plan.Resources[i].ID == resourceID {
			target = &plan.Resources[i]
		}
	}
	if target == nil {
		return nil, util.ErrStepNotFound
	}

	target.IsOpened = true
	version := plan.Version
	Recalculate(plan)

	err = s.Repo.SaveProgress(plan, version, func(tx *gorm.DB) error {
		return tx.Model(&model.PlanResource{}).
			Where("id = ?", target.ID).
			Update("is_opened", true).Error
	})
	if err != nil {
		return nil, err
	}
	return summarize(plan), nil
}

// SkipStepByID 显式跳过步骤，进度冻结且仍计入规划平均值
func (s *PlanService) SkipStepByID(userID uint, planID, stepID string) (*PlanSummary, error) {
	plan, err := s.Repo.FindByIDAndUser(planID, userID)
	if err != nil {
		return nil, err
	}

	var step *model.PlanStep
	for i := range plan.Steps {
		if plan.Steps[i].ID == stepID {
			step = &plan.Steps[i]
		}
	}
	if step == nil {
		return nil, util.ErrStepNotFound
	}

	if err := SkipStep(step); err != nil {
		return nil, err
	}
	version := plan.Version
	Recalculate(plan)

	if err := s.Repo.SaveProgress(plan, version, nil); err != nil {
		return nil, err
	}
	return summarize(plan), nil
}

// Archive 显式归档，终态
func (s *PlanService) Archive(userID uint, planID string) (*PlanSummary, error) {
	plan, err := s.Repo.FindByIDAndUser(planID, userID)
	if err != nil {
		return nil, err
	}

	if err := ArchivePlan(plan); err != nil {
		return nil, err
	}

	if err := s.Repo.SaveProgress(plan, plan.Version, nil); err != nil {
		return nil, err
	}
	return summarize(plan), nil
}
