package service

import (
	"encoding/json"
	"fmt"
	"mentora_backend/internal/model"
	"strings"
)

// studyPlanSystemPrompt 固定的系统指令：严格 JSON 模式 + 十条编写规则。
// 作为不可变模板注入，不放全局可变状态。
const studyPlanSystemPrompt = `You are an academic planning assistant for university students.
You must respond with a single JSON object and nothing else: no markdown fences, no commentary.

Response schema:
{
  "title": "string, plan title",
  "summary": "string, 2-4 sentence overview",
  "steps": [
    {
      "title": "string",
      "description": "string",
      "orderIndex": 0,
      "estimatedHours": 0,
      "checkpoints": [
        {
          "description": "string",
          "type": "Setup|Reading|Exercise|Project|Practice|Assessment",
          "isMandatory": true,
          "estimatedMinutes": 0
        }
      ],
      "requiredSkills": [
        {"skillName": "string", "targetLevel": "beginner|intermediate|advanced|expert", "weight": 1}
      ],
      "resources": [
        {"title": "string", "url": "string", "type": "string", "isFree": true, "priority": 1}
      ]
    }
  ],
  "resources": [
    {"title": "string", "url": "string", "type": "string", "isFree": true, "priority": 1, "stepIndex": 0}
  ]
}

Authoring rules:
1. The overall timeframe must be achievable for the student's stated availability.
2. Steps must follow a logical progression; earlier steps prepare for later ones.
3. Each step must contain between 3 and 8 checkpoints.
4. Checkpoint types should be diverse across the plan, not all of one kind.
5. Resource types should be diverse (articles, videos, courses, books, tools).
6. Skill target levels must be realistic relative to the student's current skills.
7. The sum of estimatedHours over all steps must not exceed the total available study hours.
8. orderIndex values start at 0 and must be unique and strictly increasing.
9. Prefer free resources; mark paid ones with "isFree": false.
10. All text must be plain strings; never nest additional JSON or markdown inside fields.`

// careerPlanSystemPrompt 职业规划在同一 schema 上换措辞
const careerPlanSystemPrompt = `You are a career planning assistant for university students preparing to enter the job market.
You must respond with a single JSON object and nothing else: no markdown fences, no commentary.

Use exactly the same response schema and the same ten authoring rules as a study plan:
title, summary and an ordered "steps" array, where each step carries checkpoints,
requiredSkills and resources. Steps describe career milestones (portfolio, internships,
networking, applications, interviews) instead of course topics; checkpoints are concrete
actions the student can finish and tick off.

Response schema:
{
  "title": "string",
  "summary": "string",
  "steps": [
    {
      "title": "string",
      "description": "string",
      "orderIndex": 0,
      "estimatedHours": 0,
      "checkpoints": [{"description": "string", "type": "string", "isMandatory": true, "estimatedMinutes": 0}],
      "requiredSkills": [{"skillName": "string", "targetLevel": "beginner|intermediate|advanced|expert", "weight": 1}],
      "resources": [{"title": "string", "url": "string", "type": "string", "isFree": true, "priority": 1}]
    }
  ],
  "resources": [{"title": "string", "url": "string", "type": "string", "isFree": true, "priority": 1, "stepIndex": 0}]
}`

const weeksPerYear = 48

// PromptTemplate 不可变的提示词模板，按计划类型注入
type PromptTemplate struct {
	System string
}

func NewPlanPromptTemplate(kind model.PlanKind) PromptTemplate {
	if kind == model.PlanKindCareer {
		return PromptTemplate{System: careerPlanSystemPrompt}
	}
	return PromptTemplate{System: studyPlanSystemPrompt}
}

// BuildUserPrompt 按固定顺序拼接：上下文 → 约束 → 目标 → 附加说明
func (t PromptTemplate) BuildUserPrompt(ctx *AssessmentContext, additionalInstructions string) string {
	var b strings.Builder

	b.WriteString(ctx.RenderPromptBlock())

	b.WriteString("\nConstraints:\n")
	if ctx.WeeklyHoursAvailable > 0 {
		fmt.Fprintf(&b, "- The student can study about %d hours per week.\n", ctx.WeeklyHoursAvailable)
	}
	// 两个输入都已知时才派生总学习时长
	if ctx.YearsUntilGraduation > 0 && ctx.WeeklyHoursAvailable > 0 {
		total := ctx.YearsUntilGraduation * weeksPerYear * ctx.WeeklyHoursAvailable
		fmt.Fprintf(&b, "- Total available study hours until graduation: %d years x %d weeks x %d hours = %d hours.\n",
			ctx.YearsUntilGraduation, weeksPerYear, ctx.WeeklyHoursAvailable, total)
	}

	b.WriteString("\nGoals:\n")
	if ctx.CareerGoal != "" {
		fmt.Fprintf(&b, "- %s\n", ctx.CareerGoal)
	}
	if ctx.YearsUntilGraduation > 0 {
		if ctx.YearsUntilGraduation <= 1 {
			b.WriteString("- Prepare for job market entry.\n")
		} else if ctx.YearsUntilGraduation <= 2 {
			b.WriteString("- Build a foundation for internships.\n")
		}
	}

	if s := strings.TrimSpace(additionalInstructions); s != "" {
		b.WriteString("\nAdditional instructions:\n")
		b.WriteString(s)
		b.WriteString("\n")
	}

	return b.String()
}

// PlanResponse AI 返回的规划结构。除最低门槛外所有字段都按可缺省解码，
// 严格校验推迟到组装阶段逐字段处理。
type PlanResponse struct {
	Title     string             `json:"title"`
	Summary   string             `json:"summary"`
	Steps     []StepResponse     `json:"steps"`
	Resources []ResourceResponse `json:"resources"`
}

type StepResponse struct {
	Title          string               `json:"title"`
	Description    string               `json:"description"`
	OrderIndex     int                  `json:"orderIndex"`
	EstimatedHours int                  `json:"estimatedHours"`
	Checkpoints    []CheckpointResponse `json:"checkpoints"`
	RequiredSkills []SkillResponse      `json:"requiredSkills"`
	Resources      []ResourceResponse   `json:"resources"`
}

type CheckpointResponse struct {
	Description      string `json:"description"`
	Type             string `json:"type"`
	IsMandatory      bool   `json:"isMandatory"`
	EstimatedMinutes int    `json:"estimatedMinutes"`
}

type SkillResponse struct {
	SkillName   string `json:"skillName"`
	TargetLevel string `json:"targetLevel"`
	Weight      int    `json:"weight"`
}

type ResourceResponse struct {
	Title     string `json:"title"`
	URL       string `json:"url"`
	Type      string `json:"type"`
	IsFree    *bool  `json:"isFree"`
	Priority  int    `json:"priority"`
	StepIndex *int   `json:"stepIndex"` // 仅规划级资源使用
}

// ValidateResponse 最低门槛校验：能解析、title/summary 非空、
// steps 非空且至少一个步骤带非空 checkpoints。
// 其他结构缺陷（缺技能、缺资源）在这里一律放行。
// 任何解析错误都转成返回值，绝不向上抛。
func (t PromptTemplate) ValidateResponse(raw string) (bool, string) {
	var resp PlanResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return false, fmt.Sprintf("response is not valid JSON: %v", err)
	}
	if strings.TrimSpace(resp.Title) == "" {
		return false, "response is missing a title"
	}
	if strings.TrimSpace(resp.Summary) == "" {
		return false, "response is missing a summary"
	}
	if len(resp.Steps) == 0 {
		return false, "response contains no steps"
	}
	for _, s := range resp.Steps {
		if len(s.Checkpoints) > 0 {
			return true, ""
		}
	}
	return false, "no step contains any checkpoints"
}

// ParseResponse 在通过校验后解码为结构体
func (t PromptTemplate) ParseResponse(raw string) (*PlanResponse, error) {
	var resp PlanResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
