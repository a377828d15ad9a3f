package service

import (
	"testing"

	"mentora_backend/internal/model"
)

func stepWithCheckpoints(done, total int) *model.PlanStep {
	step := &model.PlanStep{Status: model.StepInProgress}
	for i := 0; i < total; i++ {
		step.Checkpoints = append(step.Checkpoints, model.Checkpoint{IsCompleted: i < done})
	}
	return step
}

func TestStepProgressCheckpointRatio(t *testing.T) {
	cases := []struct {
		done, total, want int
	}{
		{0, 4, 0},
		{1, 4, 25},
		{3, 4, 75},
		{4, 4, 100},
		{1, 3, 33},
		{2, 3, 67},
		{0, 0, 0},
	}
	for _, tc := range cases {
		got := StepProgress(stepWithCheckpoints(tc.done, tc.total))
		if got != tc.want {
			t.Fatalf("StepProgress(%d/%d) = %d, want %d", tc.done, tc.total, got, tc.want)
		}
	}
}

func TestStepProgressSkillsOverrideCheckpoints(t *testing.T) {
	// 检查点全部完成，但技能口径说了算
	step := stepWithCheckpoints(4, 4)
	step.Skills = []model.SkillRequirement{
		{Status: model.SkillAchieved},
		{Status: model.SkillInProgress},
	}

	if got := StepProgress(step); got != 75 {
		t.Fatalf("skill-based progress = %d, want 75", got)
	}

	step.Skills = []model.SkillRequirement{
		{Status: model.SkillNotStarted},
		{Status: model.SkillNotStarted},
		{Status: model.SkillInProgress},
	}
	// (0 + 0 + 50) / 3 整数除法
	if got := StepProgress(step); got != 16 {
		t.Fatalf("skill-based progress = %d, want 16", got)
	}
}

func TestPlanProgressMean(t *testing.T) {
	plan := &model.Plan{Steps: []model.PlanStep{
		{Progress: 0},
		{Progress: 50},
		{Progress: 100},
	}}
	if got := PlanProgress(plan); got != 50 {
		t.Fatalf("PlanProgress = %d, want 50", got)
	}

	if got := PlanProgress(&model.Plan{}); got != 0 {
		t.Fatalf("empty plan progress = %d, want 0", got)
	}

	// 四舍五入
	plan = &model.Plan{Steps: []model.PlanStep{{Progress: 33}, {Progress: 34}}}
	if got := PlanProgress(plan); got != 34 {
		t.Fatalf("rounded progress = %d, want 34", got)
	}
}

func TestRecalculateAutoCompletesAndUnlocks(t *testing.T) {
	plan := &model.Plan{Status: model.PlanActive}
	first := *stepWithCheckpoints(2, 2)
	first.OrderIndex = 0
	first.Status = model.StepInProgress
	second := *stepWithCheckpoints(0, 2)
	second.OrderIndex = 1
	second.Status = model.StepLocked
	plan.Steps = []model.PlanStep{first, second}

	Recalculate(plan)

	if plan.Steps[0].Status != model.StepCompleted {
		t.Fatalf("step at 100%% must auto-complete, got %s", plan.Steps[0].Status)
	}
	if plan.Steps[1].Status != model.StepNotStarted {
		t.Fatalf("next step must unlock, got %s", plan.Steps[1].Status)
	}
	if plan.Progress != 50 {
		t.Fatalf("plan progress = %d, want 50", plan.Progress)
	}
	if plan.Status != model.PlanActive {
		t.Fatalf("plan must stay active while steps remain")
	}
}

func TestRecalculateCompletesPlan(t *testing.T) {
	plan := &model.Plan{Status: model.PlanActive}
	for i := 0; i < 2; i++ {
		s := *stepWithCheckpoints(2, 2)
		s.OrderIndex = i
		s.Status = model.StepInProgress
		plan.Steps = append(plan.Steps, s)
	}

	Recalculate(plan)

	if plan.Status != model.PlanCompleted {
		t.Fatalf("plan with all steps completed must complete, got %s", plan.Status)
	}
	if plan.Progress != 100 {
		t.Fatalf("plan progress = %d, want 100", plan.Progress)
	}
}

func TestRecalculateFreezesSkippedSteps(t *testing.T) {
	plan := &model.Plan{Status: model.PlanActive}
	skipped := *stepWithCheckpoints(2, 2) // 检查点数据会让进度算成 100
	skipped.OrderIndex = 0
	skipped.Status = model.StepSkipped
	skipped.Progress = 40 // 冻结值
	active := *stepWithCheckpoints(0, 2)
	active.OrderIndex = 1
	active.Status = model.StepNotStarted
	plan.Steps = []model.PlanStep{skipped, active}

	Recalculate(plan)

	if plan.Steps[0].Progress != 40 {
		t.Fatalf("skipped step progress must stay frozen at 40, got %d", plan.Steps[0].Progress)
	}
	// 冻结值仍计入分母: round((40+0)/2) = 20
	if plan.Progress != 20 {
		t.Fatalf("plan progress = %d, want 20", plan.Progress)
	}
}

func TestRecalculateSkippedDoesNotBlockUnlock(t *testing.T) {
	plan := &model.Plan{Status: model.PlanActive}
	skipped := model.PlanStep{OrderIndex: 0, Status: model.StepSkipped}
	locked := *stepWithCheckpoints(0, 1)
	locked.OrderIndex = 1
	locked.Status = model.StepLocked
	plan.Steps = []model.PlanStep{skipped, locked}

	Recalculate(plan)

	if plan.Steps[1].Status != model.StepNotStarted {
		t.Fatalf("skipped step must not block the next unlock, got %s", plan.Steps[1].Status)
	}
}

func TestCompositeScore(t *testing.T) {
	cases := []struct {
		name                       string
		tasksDone, tasksTotal      int
		eventsAttended, eventsTotal int
		want                       int
	}{
		{"both present", 8, 10, 2, 4, 68},  // 0.8*60 + 0.5*40
		{"no tasks", 0, 0, 2, 4, 20},       // 任务项贡献 0
		{"no events", 8, 10, 0, 0, 48},     // 出勤项贡献 0
		{"nothing", 0, 0, 0, 0, 0},
		{"perfect", 5, 5, 3, 3, 100},
	}
	for _, tc := range cases {
		got := CompositeScore(tc.tasksDone, tc.tasksTotal, tc.eventsAttended, tc.eventsTotal, 0.6, 0.4)
		if got != tc.want {
			t.Fatalf("%s: CompositeScore = %d, want %d", tc.name, got, tc.want)
		}
	}
}
