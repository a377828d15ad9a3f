package service

import (
	"strings"
	"testing"

	"mentora_backend/internal/model"
)

func TestBuildAssessmentContextMapsCategories(t *testing.T) {
	responses := []model.AssessmentResponse{
		{Category: "graduation", Value: "2 years"},
		{Category: "availability", Value: "10"},
		{Category: "skills", Value: `["Python", "SQL"]`},
		{Category: "interests", Value: "machine learning, data viz"},
		{Category: "career_goal", Value: "Become a data engineer"},
		{Category: "learning_style", Value: "visual"},
	}

	ctx := BuildAssessmentContext("Computer Science", "junior", responses)

	if ctx.Major != "Computer Science" {
		t.Fatalf("Major = %q", ctx.Major)
	}
	if ctx.YearsUntilGraduation != 2 {
		t.Fatalf("YearsUntilGraduation = %d, want 2", ctx.YearsUntilGraduation)
	}
	if ctx.WeeklyHoursAvailable != 10 {
		t.Fatalf("WeeklyHoursAvailable = %d, want 10", ctx.WeeklyHoursAvailable)
	}
	if len(ctx.CurrentSkills) != 2 || ctx.CurrentSkills[0] != "Python" || ctx.CurrentSkills[1] != "SQL" {
		t.Fatalf("CurrentSkills = %v", ctx.CurrentSkills)
	}
	if len(ctx.InterestAreas) != 2 || ctx.InterestAreas[1] != "data viz" {
		t.Fatalf("InterestAreas = %v", ctx.InterestAreas)
	}
	if ctx.CareerGoal != "Become a data engineer" {
		t.Fatalf("CareerGoal = %q", ctx.CareerGoal)
	}
	if ctx.LearningStyle != "visual" {
		t.Fatalf("LearningStyle = %q", ctx.LearningStyle)
	}
}

func TestBuildAssessmentContextNeverFails(t *testing.T) {
	responses := []model.AssessmentResponse{
		{Category: "graduation", Value: "soon, hopefully"},
		{Category: "availability", Value: "not sure"},
		{Category: "skills", Value: ""},
		{Category: "interests", Value: "   "},
		{Category: "career_goal", Value: "TBD", Skipped: true},
	}

	ctx := BuildAssessmentContext("", "", responses)

	if ctx.YearsUntilGraduation != 0 {
		t.Fatalf("dirty graduation answer should parse to 0, got %d", ctx.YearsUntilGraduation)
	}
	if ctx.WeeklyHoursAvailable != 0 {
		t.Fatalf("dirty availability answer should parse to 0, got %d", ctx.WeeklyHoursAvailable)
	}
	if ctx.CareerGoal != "" {
		t.Fatalf("skipped response must be ignored, got %q", ctx.CareerGoal)
	}
	if len(ctx.CurrentSkills) != 0 || len(ctx.InterestAreas) != 0 {
		t.Fatalf("blank answers must not produce list entries")
	}
}

func TestBuildAssessmentContextCategoryAliases(t *testing.T) {
	responses := []model.AssessmentResponse{
		{Category: "Years_Until_Graduation", Value: "3"},
		{Category: "weekly_hours", Value: "15"},
		{Category: "current_skills", Value: "Go"},
	}

	ctx := BuildAssessmentContext("", "", responses)

	if ctx.YearsUntilGraduation != 3 {
		t.Fatalf("alias years_until_graduation not honored, got %d", ctx.YearsUntilGraduation)
	}
	if ctx.WeeklyHoursAvailable != 15 {
		t.Fatalf("alias weekly_hours not honored, got %d", ctx.WeeklyHoursAvailable)
	}
	if len(ctx.CurrentSkills) != 1 || ctx.CurrentSkills[0] != "Go" {
		t.Fatalf("alias current_skills not honored, got %v", ctx.CurrentSkills)
	}
}

func TestBuildAssessmentContextOverflowToExtra(t *testing.T) {
	long := "What is your favorite way to review material before an important exam session?"
	responses := []model.AssessmentResponse{
		{Category: "misc", QuestionText: "Do you commute?", Value: "yes, 40 minutes"},
		{Category: "other", QuestionText: long, Value: "flashcards"},
	}

	ctx := BuildAssessmentContext("", "", responses)

	if got := ctx.Extra["do_you_commute"]; got != "yes, 40 minutes" {
		t.Fatalf("Extra slug key missing, Extra = %v", ctx.Extra)
	}

	for k := range ctx.Extra {
		if len(k) > 50 {
			t.Fatalf("slug key %q exceeds 50 chars (%d)", k, len(k))
		}
		if strings.Contains(k, "?") || strings.Contains(k, " ") {
			t.Fatalf("slug key %q not normalized", k)
		}
	}
}

func TestParseList(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{`["a","b"]`, []string{"a", "b"}},
		{`["a", " ", "b"]`, []string{"a", "b"}},
		{"a, b; c\nd", []string{"a", "b", "c", "d"}},
		{"single", []string{"single"}},
		{"", nil},
	}
	for _, tc := range cases {
		got := ParseList(tc.in)
		if len(got) != len(tc.want) {
			t.Fatalf("ParseList(%q) = %v, want %v", tc.in, got, tc.want)
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Fatalf("ParseList(%q)[%d] = %q, want %q", tc.in, i, got[i], tc.want[i])
			}
		}
	}
}

func TestRenderPromptBlock(t *testing.T) {
	ctx := &AssessmentContext{
		Major:                "CS",
		YearsUntilGraduation: 2,
		CurrentSkills:        []string{"Python"},
		WeeklyHoursAvailable: 10,
		Extra: map[string]string{
			"f": "6", "e": "5", "d": "4", "c": "3", "b": "2", "a": "1",
		},
	}

	block := ctx.RenderPromptBlock()

	if !strings.HasPrefix(block, "Student Context:\n") {
		t.Fatalf("block must start with header, got %q", block)
	}
	if !strings.Contains(block, "- Major: CS\n") {
		t.Fatalf("missing major line: %q", block)
	}
	if strings.Contains(block, "Study level") {
		t.Fatalf("empty fields must be omitted: %q", block)
	}
	// 溢出条目最多 5 条，按键排序后 f 被截掉
	if strings.Contains(block, "- f: 6") {
		t.Fatalf("extra entries must cap at 5: %q", block)
	}
	if !strings.Contains(block, "- a: 1") || !strings.Contains(block, "- e: 5") {
		t.Fatalf("sorted extra entries missing: %q", block)
	}
}

func TestContextSnapshotRoundTrip(t *testing.T) {
	ctx := BuildAssessmentContext("Math", "senior", []model.AssessmentResponse{
		{Category: "graduation", Value: "1"},
		{Category: "skills", Value: "calculus, proofs"},
	})

	raw, err := MarshalContext(ctx)
	if err != nil {
		t.Fatalf("MarshalContext: %v", err)
	}

	restored, err := UnmarshalContext(raw)
	if err != nil {
		t.Fatalf("UnmarshalContext: %v", err)
	}
	if restored.Major != "Math" || restored.YearsUntilGraduation != 1 || len(restored.CurrentSkills) != 2 {
		t.Fatalf("round trip mismatch: %+v", restored)
	}
	if restored.Extra == nil {
		t.Fatalf("Extra must be non-nil after restore")
	}
}
