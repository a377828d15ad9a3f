package service

import (
	"strings"
	"testing"

	"mentora_backend/internal/model"
)

func TestNewPlanPromptTemplateSelectsSystemPrompt(t *testing.T) {
	study := NewPlanPromptTemplate(model.PlanKindStudy)
	career := NewPlanPromptTemplate(model.PlanKindCareer)

	if !strings.Contains(study.System, "academic planning assistant") {
		t.Fatalf("study system prompt wrong")
	}
	if !strings.Contains(career.System, "career planning assistant") {
		t.Fatalf("career system prompt wrong")
	}
	if study.System == career.System {
		t.Fatalf("study and career prompts must differ")
	}
}

func TestBuildUserPromptDerivedHours(t *testing.T) {
	tmpl := NewPlanPromptTemplate(model.PlanKindStudy)
	ctx := &AssessmentContext{
		Major:                "CS",
		YearsUntilGraduation: 2,
		WeeklyHoursAvailable: 10,
	}

	prompt := tmpl.BuildUserPrompt(ctx, "")

	want := "Total available study hours until graduation: 2 years x 48 weeks x 10 hours = 960 hours."
	if !strings.Contains(prompt, want) {
		t.Fatalf("derived hours line missing:\n%s", prompt)
	}
}

func TestBuildUserPromptOmitsDerivedHoursWhenInputMissing(t *testing.T) {
	tmpl := NewPlanPromptTemplate(model.PlanKindStudy)

	for _, ctx := range []*AssessmentContext{
		{YearsUntilGraduation: 2},
		{WeeklyHoursAvailable: 10},
		{},
	} {
		prompt := tmpl.BuildUserPrompt(ctx, "")
		if strings.Contains(prompt, "Total available study hours") {
			t.Fatalf("derived line must need both inputs: %+v", ctx)
		}
	}
}

func TestBuildUserPromptImplicitGoals(t *testing.T) {
	tmpl := NewPlanPromptTemplate(model.PlanKindCareer)

	p1 := tmpl.BuildUserPrompt(&AssessmentContext{YearsUntilGraduation: 1}, "")
	if !strings.Contains(p1, "Prepare for job market entry.") {
		t.Fatalf("1 year out should imply job market goal:\n%s", p1)
	}

	p2 := tmpl.BuildUserPrompt(&AssessmentContext{YearsUntilGraduation: 2}, "")
	if !strings.Contains(p2, "Build a foundation for internships.") {
		t.Fatalf("2 years out should imply internship goal:\n%s", p2)
	}
	if strings.Contains(p2, "Prepare for job market entry.") {
		t.Fatalf("2 years out must not carry the job market goal")
	}

	p4 := tmpl.BuildUserPrompt(&AssessmentContext{YearsUntilGraduation: 4}, "")
	if strings.Contains(p4, "internships") || strings.Contains(p4, "job market") {
		t.Fatalf("4 years out must not imply either goal:\n%s", p4)
	}
}

func TestBuildUserPromptSectionOrder(t *testing.T) {
	tmpl := NewPlanPromptTemplate(model.PlanKindStudy)
	ctx := &AssessmentContext{
		Major:                "CS",
		CareerGoal:           "Backend engineer",
		WeeklyHoursAvailable: 8,
	}

	prompt := tmpl.BuildUserPrompt(ctx, "Focus on databases.")

	ic := strings.Index(prompt, "Student Context:")
	ik := strings.Index(prompt, "Constraints:")
	ig := strings.Index(prompt, "Goals:")
	ia := strings.Index(prompt, "Additional instructions:")
	if ic < 0 || ik < 0 || ig < 0 || ia < 0 {
		t.Fatalf("missing section:\n%s", prompt)
	}
	if !(ic < ik && ik < ig && ig < ia) {
		t.Fatalf("sections out of order:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Focus on databases.") {
		t.Fatalf("additional instructions missing")
	}
}

func TestBuildUserPromptBlankInstructionsOmitted(t *testing.T) {
	tmpl := NewPlanPromptTemplate(model.PlanKindStudy)
	prompt := tmpl.BuildUserPrompt(&AssessmentContext{}, "   \n  ")
	if strings.Contains(prompt, "Additional instructions:") {
		t.Fatalf("blank instructions must not add a section")
	}
}

const validPlanJSON = `{
  "title": "Backend Fundamentals",
  "summary": "A focused plan covering databases, APIs and deployment.",
  "steps": [
    {
      "title": "SQL Basics",
      "orderIndex": 0,
      "checkpoints": [
        {"description": "Install PostgreSQL", "type": "Setup"},
        {"description": "Finish the SELECT tutorial", "type": "Exercise"}
      ]
    }
  ]
}`

func TestValidateResponse(t *testing.T) {
	tmpl := NewPlanPromptTemplate(model.PlanKindStudy)

	cases := []struct {
		name string
		raw  string
		ok   bool
	}{
		{"valid", validPlanJSON, true},
		{"not json", "Here is your plan: ...", false},
		{"missing title", `{"title":"","summary":"s","steps":[{"checkpoints":[{"description":"x"}]}]}`, false},
		{"missing summary", `{"title":"t","summary":" ","steps":[{"checkpoints":[{"description":"x"}]}]}`, false},
		{"no steps", `{"title":"t","summary":"s","steps":[]}`, false},
		{"no checkpoints anywhere", `{"title":"t","summary":"s","steps":[{"title":"a"},{"title":"b"}]}`, false},
	}

	for _, tc := range cases {
		ok, reason := tmpl.ValidateResponse(tc.raw)
		if ok != tc.ok {
			t.Fatalf("%s: ok = %v (reason %q), want %v", tc.name, ok, reason, tc.ok)
		}
		if !ok && reason == "" {
			t.Fatalf("%s: rejection must carry a reason", tc.name)
		}
	}
}

func TestParseResponse(t *testing.T) {
	tmpl := NewPlanPromptTemplate(model.PlanKindStudy)
	resp, err := tmpl.ParseResponse(validPlanJSON)
	if err != nil {
		t.Fatalf("ParseResponse: %v", err)
	}
	if resp.Title != "Backend Fundamentals" || len(resp.Steps) != 1 || len(resp.Steps[0].Checkpoints) != 2 {
		t.Fatalf("parsed response mismatch: %+v", resp)
	}
}
