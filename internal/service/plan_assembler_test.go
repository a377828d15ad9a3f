package service

import (
	"errors"
	"strings"
	"testing"

	"mentora_backend/internal/model"
)

func boolPtr(b bool) *bool { return &b }
func intPtr(i int) *int    { return &i }

func sampleResponse() *PlanResponse {
	return &PlanResponse{
		Title:   "Backend Fundamentals",
		Summary: "Databases, APIs, deployment.",
		Steps: []StepResponse{
			{
				Title:          "SQL Basics",
				OrderIndex:     0,
				EstimatedHours: 20,
				Checkpoints: []CheckpointResponse{
					{Description: "Install PostgreSQL", Type: "Setup", IsMandatory: true},
					{Description: "Finish SELECT tutorial", Type: "Exercise"},
				},
				RequiredSkills: []SkillResponse{
					{SkillName: "SQL", TargetLevel: "intermediate", Weight: 9},
				},
				Resources: []ResourceResponse{
					{Title: "PostgreSQL docs", URL: "https://postgresql.org/docs", Type: "article"},
				},
			},
			{
				Title:      "REST APIs",
				OrderIndex: 1,
				Checkpoints: []CheckpointResponse{
					{Description: "Build a CRUD service", Type: "Project"},
				},
			},
		},
		Resources: []ResourceResponse{
			{Title: "General reading", URL: "https://example.com", Type: "book", IsFree: boolPtr(false), Priority: 2},
		},
	}
}

func TestAssemblePlanZeroesAllProgress(t *testing.T) {
	plan, warnings, err := AssemblePlan(7, 3, model.PlanKindStudy, sampleResponse())
	if err != nil {
		t.Fatalf("AssemblePlan: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}

	if plan.UserID != 7 || plan.AttemptID != 3 || plan.Kind != model.PlanKindStudy {
		t.Fatalf("plan identity mismatch: %+v", plan)
	}
	if plan.Status != model.PlanActive || plan.Progress != 0 || plan.Version != 1 {
		t.Fatalf("new plan must be active at zero progress, version 1: %+v", plan)
	}
	if plan.ID == "" {
		t.Fatalf("plan must get an id at assembly time")
	}

	for _, step := range plan.Steps {
		if step.Progress != 0 {
			t.Fatalf("step %q progress must be 0", step.Title)
		}
		for _, cp := range step.Checkpoints {
			if cp.IsCompleted {
				t.Fatalf("checkpoint %q must start incomplete", cp.Description)
			}
		}
		for _, sk := range step.Skills {
			if sk.Status != model.SkillNotStarted {
				t.Fatalf("skill %q must start not_started", sk.SkillName)
			}
		}
	}
}

func TestAssemblePlanStepStatuses(t *testing.T) {
	plan, _, err := AssemblePlan(1, 1, model.PlanKindStudy, sampleResponse())
	if err != nil {
		t.Fatalf("AssemblePlan: %v", err)
	}

	if plan.Steps[0].Status != model.StepNotStarted {
		t.Fatalf("first step (orderIndex 0) must be not_started, got %s", plan.Steps[0].Status)
	}
	if plan.Steps[1].Status != model.StepLocked {
		t.Fatalf("later steps must be locked, got %s", plan.Steps[1].Status)
	}
}

func TestAssemblePlanClampsSkillWeightAndPriority(t *testing.T) {
	plan, _, err := AssemblePlan(1, 1, model.PlanKindStudy, sampleResponse())
	if err != nil {
		t.Fatalf("AssemblePlan: %v", err)
	}

	sk := plan.Steps[0].Skills[0]
	if sk.Weight != 5 {
		t.Fatalf("weight 9 must clamp to 5, got %d", sk.Weight)
	}
	if sk.TargetLevel != model.ProficiencyIntermediate {
		t.Fatalf("target level mismatch: %s", sk.TargetLevel)
	}

	for _, r := range plan.Resources {
		if r.Priority < 1 || r.Priority > 5 {
			t.Fatalf("resource priority out of range: %d", r.Priority)
		}
		if r.IsOpened {
			t.Fatalf("resources must start unopened")
		}
	}
}

func TestAssemblePlanDuplicateOrderIndexWarns(t *testing.T) {
	resp := sampleResponse()
	resp.Steps[1].OrderIndex = 0

	plan, warnings, err := AssemblePlan(1, 1, model.PlanKindStudy, resp)
	if err != nil {
		t.Fatalf("duplicate orderIndex must not fail assembly: %v", err)
	}
	if len(plan.Steps) != 2 {
		t.Fatalf("both steps must survive, got %d", len(plan.Steps))
	}

	found := false
	for _, w := range warnings {
		if strings.Contains(w, "duplicate step orderIndex") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected duplicate orderIndex warning, got %v", warnings)
	}
}

func TestAssemblePlanDropsEmptyCheckpoints(t *testing.T) {
	resp := sampleResponse()
	resp.Steps[0].Checkpoints = append(resp.Steps[0].Checkpoints, CheckpointResponse{Description: "   "})

	plan, warnings, err := AssemblePlan(1, 1, model.PlanKindStudy, resp)
	if err != nil {
		t.Fatalf("AssemblePlan: %v", err)
	}
	if len(plan.Steps[0].Checkpoints) != 2 {
		t.Fatalf("blank checkpoint must be dropped, got %d", len(plan.Steps[0].Checkpoints))
	}
	if len(warnings) == 0 {
		t.Fatalf("dropping a checkpoint must warn")
	}
}

func TestAssemblePlanResourceStepIndex(t *testing.T) {
	resp := sampleResponse()
	resp.Resources = append(resp.Resources,
		ResourceResponse{Title: "Attached", URL: "https://example.com/a", StepIndex: intPtr(1)},
		ResourceResponse{Title: "Dangling", URL: "https://example.com/d", StepIndex: intPtr(9)},
	)

	plan, warnings, err := AssemblePlan(1, 1, model.PlanKindStudy, resp)
	if err != nil {
		t.Fatalf("AssemblePlan: %v", err)
	}

	var attached, dangling bool
	for _, r := range plan.Resources {
		switch r.Title {
		case "Attached":
			attached = true
			if r.StepID == nil || *r.StepID != plan.Steps[1].ID {
				t.Fatalf("valid stepIndex must attach to the step")
			}
		case "Dangling":
			dangling = true
		}
	}
	if !attached {
		t.Fatalf("resource with valid stepIndex missing")
	}
	if dangling {
		t.Fatalf("resource with out-of-range stepIndex must be dropped")
	}

	warned := false
	for _, w := range warnings {
		if strings.Contains(w, "outside the plan") {
			warned = true
		}
	}
	if !warned {
		t.Fatalf("dropping a dangling resource must warn, got %v", warnings)
	}
}

func TestAssemblePlanRejectsEmptyPlan(t *testing.T) {
	resp := &PlanResponse{
		Title:   "Empty",
		Summary: "No substance.",
		Steps: []StepResponse{
			{Title: "A", OrderIndex: 0},
			{Title: "B", OrderIndex: 1, Checkpoints: []CheckpointResponse{{Description: "  "}}},
		},
	}

	_, _, err := AssemblePlan(1, 1, model.PlanKindStudy, resp)
	if !errors.Is(err, ErrEmptyPlan) {
		t.Fatalf("expected ErrEmptyPlan, got %v", err)
	}
}
