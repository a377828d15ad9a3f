package service

import (
	"errors"
	"mentora_backend/internal/model"
)

var ErrInvalidTransition = errors.New("invalid status transition")

// stepTransitions 步骤状态机合法迁移表。
// Completed 只能由进度聚合触发，Skipped 只能由用户显式触发。
var stepTransitions = map[model.StepStatus][]model.StepStatus{
	model.StepLocked:     {model.StepNotStarted, model.StepSkipped},
	model.StepNotStarted: {model.StepInProgress, model.StepSkipped},
	model.StepInProgress: {model.StepCompleted, model.StepSkipped},
	model.StepCompleted:  {},
	model.StepSkipped:    {},
}

func CanTransitionStep(from, to model.StepStatus) bool {
	for _, t := range stepTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// TouchStep 首次交互时把步骤从未开始推进到进行中
func TouchStep(step *model.PlanStep) {
	if step.Status == model.StepNotStarted {
		step.Status = model.StepInProgress
	}
}

// SkipStep 任意非终态步骤可被显式跳过，进度冻结在当前值
func SkipStep(step *model.PlanStep) error {
	if !CanTransitionStep(step.Status, model.StepSkipped) {
		return ErrInvalidTransition
	}
	step.Status = model.StepSkipped
	return nil
}

// ArchivePlan 归档是显式用户动作，终态；不会删除任何步骤
func ArchivePlan(plan *model.Plan) error {
	if plan.Status == model.PlanArchived {
		return ErrInvalidTransition
	}
	plan.Status = model.PlanArchived
	return nil
}

func stepTerminal(s model.StepStatus) bool {
	return s == model.StepCompleted || s == model.StepSkipped
}

// unlockSteps 顺序解锁：锁定步骤的序号等于当前最小未完成序号时解锁。
// 跳过的步骤不阻塞后续步骤。
func unlockSteps(plan *model.Plan) {
	lowest := -1
	for i := range plan.Steps {
		s := &plan.Steps[i]
		if stepTerminal(s.Status) {
			continue
		}
		if lowest < 0 || s.OrderIndex < lowest {
			lowest = s.OrderIndex
		}
	}
	if lowest < 0 {
		return
	}
	for i := range plan.Steps {
		s := &plan.Steps[i]
		if s.Status == model.StepLocked && s.OrderIndex == lowest {
			s.Status = model.StepNotStarted
		}
	}
}
