package service

import (
	"errors"
	"fmt"
	"mentora_backend/internal/model"
	"strings"
)

var ErrEmptyPlan = errors.New("assembled plan has no step with checkpoints")

// AssemblePlan 把通过校验的 AI 响应映射为完整实体图。
// 进度一律归零，完成标记一律清空：进度只能靠用户交互挣得，生成器说了不算。
// 悬空引用只丢弃对应子项并记警告，不让整个规划失败。
func AssemblePlan(userID, attemptID uint, kind model.PlanKind, resp *PlanResponse) (*model.Plan, []string, error) {
	var warnings []string

	plan := &model.Plan{
		UserID:    userID,
		AttemptID: attemptID,
		Kind:      kind,
		Title:     strings.TrimSpace(resp.Title),
		Summary:   strings.TrimSpace(resp.Summary),
		Status:    model.PlanActive,
		Progress:  0,
		Version:   1,
	}
	plan.ID = model.GenerateUUID()

	seenOrder := map[int]bool{}
	hasCheckpoint := false

	for i, sr := range resp.Steps {
		// orderIndex 以响应为准，不按数组位置重排；重复视为输入质量问题，只警告
		if seenOrder[sr.OrderIndex] {
			warnings = append(warnings, fmt.Sprintf("duplicate step orderIndex %d (step %q)", sr.OrderIndex, sr.Title))
		}
		seenOrder[sr.OrderIndex] = true

		step := model.PlanStep{
			PlanID:         plan.ID,
			Title:          strings.TrimSpace(sr.Title),
			Description:    sr.Description,
			OrderIndex:     sr.OrderIndex,
			Status:         model.StepLocked,
			Progress:       0,
			EstimatedHours: sr.EstimatedHours,
		}
		step.ID = model.GenerateUUID()
		if step.Title == "" {
			step.Title = fmt.Sprintf("Step %d", i+1)
		}
		// 首步直接解锁
		if sr.OrderIndex == 0 {
			step.Status = model.StepNotStarted
		}

		for j, cr := range sr.Checkpoints {
			desc := strings.TrimSpace(cr.Description)
			if desc == "" {
				warnings = append(warnings, fmt.Sprintf("step %q: checkpoint %d has no description, dropped", step.Title, j))
				continue
			}
			cp := model.Checkpoint{
				StepID:           step.ID,
				Description:      desc,
				OrderIndex:       j,
				IsCompleted:      false, // 无视 AI 的任何完成暗示
				IsMandatory:      cr.IsMandatory,
				EstimatedMinutes: cr.EstimatedMinutes,
				Type:             cr.Type,
			}
			cp.ID = model.GenerateUUID()
			step.Checkpoints = append(step.Checkpoints, cp)
		}
		if len(step.Checkpoints) > 0 {
			hasCheckpoint = true
		}

		for _, sk := range sr.RequiredSkills {
			name := strings.TrimSpace(sk.SkillName)
			if name == "" {
				continue
			}
			req := model.SkillRequirement{
				StepID:      step.ID,
				SkillName:   name,
				TargetLevel: normalizeProficiency(sk.TargetLevel),
				Status:      model.SkillNotStarted,
				Weight:      clampWeight(sk.Weight),
			}
			req.ID = model.GenerateUUID()
			step.Skills = append(step.Skills, req)
		}

		for _, rr := range sr.Resources {
			if res, ok := buildResource(plan.ID, &step.ID, rr); ok {
				plan.Resources = append(plan.Resources, res)
			}
		}

		plan.Steps = append(plan.Steps, step)
	}

	// 规划级资源：stepIndex 越界则丢弃该条并记警告
	for _, rr := range resp.Resources {
		var stepID *string
		if rr.StepIndex != nil {
			idx := *rr.StepIndex
			if idx < 0 || idx >= len(plan.Steps) {
				warnings = append(warnings, fmt.Sprintf("resource %q references step index %d outside the plan, dropped", rr.Title, idx))
				continue
			}
			stepID = &plan.Steps[idx].ID
		}
		if res, ok := buildResource(plan.ID, stepID, rr); ok {
			plan.Resources = append(plan.Resources, res)
		}
	}

	if !hasCheckpoint {
		return nil, warnings, ErrEmptyPlan
	}

	return plan, warnings, nil
}

func buildResource(planID string, stepID *string, rr ResourceResponse) (model.PlanResource, bool) {
	title := strings.TrimSpace(rr.Title)
	if title == "" {
		return model.PlanResource{}, false
	}
	isFree := true
	if rr.IsFree != nil {
		isFree = *rr.IsFree
	}
	res := model.PlanResource{
		PlanID:   planID,
		StepID:   stepID,
		Title:    title,
		URL:      rr.URL,
		Type:     rr.Type,
		IsFree:   isFree,
		Priority: clampPriority(rr.Priority),
		IsOpened: false,
	}
	res.ID = model.GenerateUUID()
	return res, true
}

func normalizeProficiency(level string) model.ProficiencyLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "expert", "3":
		return model.ProficiencyExpert
	case "advanced", "2":
		return model.ProficiencyAdvanced
	case "intermediate", "1":
		return model.ProficiencyIntermediate
	default:
		return model.ProficiencyBeginner
	}
}

func clampWeight(w int) int {
	if w < 1 {
		return 1
	}
	if w > 5 {
		return 5
	}
	return w
}

func clampPriority(p int) int {
	if p < 1 {
		return 3
	}
	if p > 5 {
		return 5
	}
	return p
}
