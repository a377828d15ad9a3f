package service

import (
	"errors"
	"testing"

	"mentora_backend/internal/model"
)

func TestCanTransitionStep(t *testing.T) {
	allowed := []struct{ from, to model.StepStatus }{
		{model.StepLocked, model.StepNotStarted},
		{model.StepLocked, model.StepSkipped},
		{model.StepNotStarted, model.StepInProgress},
		{model.StepNotStarted, model.StepSkipped},
		{model.StepInProgress, model.StepCompleted},
		{model.StepInProgress, model.StepSkipped},
	}
	for _, tc := range allowed {
		if !CanTransitionStep(tc.from, tc.to) {
			t.Fatalf("%s -> %s should be allowed", tc.from, tc.to)
		}
	}

	denied := []struct{ from, to model.StepStatus }{
		{model.StepLocked, model.StepInProgress},
		{model.StepLocked, model.StepCompleted},
		{model.StepNotStarted, model.StepCompleted},
		{model.StepCompleted, model.StepInProgress},
		{model.StepCompleted, model.StepSkipped},
		{model.StepSkipped, model.StepNotStarted},
		{model.StepSkipped, model.StepSkipped},
	}
	for _, tc := range denied {
		if CanTransitionStep(tc.from, tc.to) {
			t.Fatalf("%s -> %s must be denied", tc.from, tc.to)
		}
	}
}

func TestTouchStep(t *testing.T) {
	step := &model.PlanStep{Status: model.StepNotStarted}
	TouchStep(step)
	if step.Status != model.StepInProgress {
		t.Fatalf("touch must start a not_started step, got %s", step.Status)
	}

	// 其他状态不受影响
	for _, s := range []model.StepStatus{model.StepLocked, model.StepInProgress, model.StepCompleted, model.StepSkipped} {
		step := &model.PlanStep{Status: s}
		TouchStep(step)
		if step.Status != s {
			t.Fatalf("touch must not change %s, got %s", s, step.Status)
		}
	}
}

func TestSkipStep(t *testing.T) {
	for _, s := range []model.StepStatus{model.StepLocked, model.StepNotStarted, model.StepInProgress} {
		step := &model.PlanStep{Status: s, Progress: 30}
		if err := SkipStep(step); err != nil {
			t.Fatalf("skip from %s: %v", s, err)
		}
		if step.Status != model.StepSkipped {
			t.Fatalf("step not skipped from %s", s)
		}
		if step.Progress != 30 {
			t.Fatalf("skip must freeze progress, got %d", step.Progress)
		}
	}

	for _, s := range []model.StepStatus{model.StepCompleted, model.StepSkipped} {
		step := &model.PlanStep{Status: s}
		if err := SkipStep(step); !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("skip from terminal %s must fail, got %v", s, err)
		}
	}
}

func TestArchivePlan(t *testing.T) {
	for _, s := range []model.PlanStatus{model.PlanActive, model.PlanCompleted} {
		plan := &model.Plan{Status: s}
		if err := ArchivePlan(plan); err != nil {
			t.Fatalf("archive from %s: %v", s, err)
		}
		if plan.Status != model.PlanArchived {
			t.Fatalf("plan not archived from %s", s)
		}
	}

	plan := &model.Plan{Status: model.PlanArchived}
	if err := ArchivePlan(plan); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("double archive must fail, got %v", err)
	}
}

func TestUnlockStepsSequence(t *testing.T) {
	plan := &model.Plan{Status: model.PlanActive, Steps: []model.PlanStep{
		{OrderIndex: 0, Status: model.StepCompleted, Progress: 100},
		{OrderIndex: 1, Status: model.StepLocked},
		{OrderIndex: 2, Status: model.StepLocked},
	}}

	Recalculate(plan)

	if plan.Steps[1].Status != model.StepNotStarted {
		t.Fatalf("step 1 must unlock, got %s", plan.Steps[1].Status)
	}
	if plan.Steps[2].Status != model.StepLocked {
		t.Fatalf("step 2 must stay locked, got %s", plan.Steps[2].Status)
	}
}
