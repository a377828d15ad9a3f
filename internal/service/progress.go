package service

import (
	"math"
	"mentora_backend/internal/model"
)

// StepProgress 计算单个步骤进度。
// 存在技能要求时完全以技能加权为准，检查点完成情况被忽略；
// 否则取检查点完成率（四舍五入）。两种口径互斥。
func StepProgress(step *model.PlanStep) int {
	if len(step.Skills) > 0 {
		achieved, inProgress := 0, 0
		for _, sk := range step.Skills {
			switch sk.Status {
			case model.SkillAchieved:
				achieved++
			case model.SkillInProgress:
				inProgress++
			}
		}
		return (achieved*100 + inProgress*50) / len(step.Skills)
	}

	if len(step.Checkpoints) == 0 {
		return 0
	}
	completed := 0
	for _, cp := range step.Checkpoints {
		if cp.IsCompleted {
			completed++
		}
	}
	return int(math.Round(100 * float64(completed) / float64(len(step.Checkpoints))))
}

// PlanProgress 步骤进度的算术平均，四舍五入；无步骤为 0。
// 跳过的步骤按冻结值计入分母。
func PlanProgress(plan *model.Plan) int {
	if len(plan.Steps) == 0 {
		return 0
	}
	sum := 0
	for i := range plan.Steps {
		sum += plan.Steps[i].Progress
	}
	return int(math.Round(float64(sum) / float64(len(plan.Steps))))
}

// Recalculate 叶子状态变化后自底向上重算派生值并套用自动迁移：
// 步骤到 100 自动完成，所有步骤完成后规划自动完成。
func Recalculate(plan *model.Plan) {
	for i := range plan.Steps {
		step := &plan.Steps[i]
		if step.Status == model.StepSkipped {
			continue // 冻结
		}
		step.Progress = StepProgress(step)
		if step.Progress >= 100 && step.Status != model.StepCompleted {
			step.Status = model.StepCompleted
		}
	}

	unlockSteps(plan)

	plan.Progress = PlanProgress(plan)

	if plan.Status == model.PlanActive && len(plan.Steps) > 0 {
		allCompleted := true
		for i := range plan.Steps {
			if plan.Steps[i].Status != model.StepCompleted {
				allCompleted = false
				break
			}
		}
		if allCompleted {
			plan.Status = model.PlanCompleted
		}
	}
}

// CompositeScore 出勤/任务综合得分：
// round(任务完成率×Wt + 出勤率×We)，某一项没有样本时该项贡献 0。
func CompositeScore(tasksDone, tasksTotal, eventsAttended, eventsTotal int, taskWeight, eventWeight float64) int {
	var taskPart, eventPart float64
	if tasksTotal > 0 {
		taskPart = float64(tasksDone) / float64(tasksTotal) * taskWeight * 100
	}
	if eventsTotal > 0 {
		eventPart = float64(eventsAttended) / float64(eventsTotal) * eventWeight * 100
	}
	return int(math.Round(taskPart + eventPart))
}
