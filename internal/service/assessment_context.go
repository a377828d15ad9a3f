package service

import (
	"encoding/json"
	"fmt"
	"mentora_backend/internal/model"
	"sort"
	"strconv"
	"strings"
)

// AssessmentContext 测评答卷提炼出的结构化上下文，构建后不再修改，
// 以 JSON 快照形式挂在测评记录上。
type AssessmentContext struct {
	Major                string            `json:"major"`
	StudyLevel           string            `json:"studyLevel"`
	YearsUntilGraduation int               `json:"yearsUntilGraduation"`
	CurrentSkills        []string          `json:"currentSkills"`
	InterestAreas        []string          `json:"interestAreas"`
	CareerGoal           string            `json:"careerGoal"`
	WeeklyHoursAvailable int               `json:"weeklyHoursAvailable"`
	LearningStyle        string            `json:"learningStyle"`
	Extra                map[string]string `json:"extra,omitempty"`
}

// BuildAssessmentContext 把原始答卷行转换为上下文。
// 构建过程永不失败：数字解析不了就保持零值，未识别的分类进入 Extra。
func BuildAssessmentContext(major, studyLevel string, responses []model.AssessmentResponse) *AssessmentContext {
	ctx := &AssessmentContext{
		Major:      major,
		StudyLevel: studyLevel,
		Extra:      map[string]string{},
	}

	for _, r := range responses {
		if r.Skipped {
			continue
		}
		value := strings.TrimSpace(r.Value)
		if value == "" {
			continue
		}

		switch normalizeCategory(r.Category) {
		case "major":
			ctx.Major = value
		case "study_level":
			ctx.StudyLevel = value
		case "graduation":
			ctx.YearsUntilGraduation = parseIntOrZero(value)
		case "skills":
			ctx.CurrentSkills = ParseList(value)
		case "interests":
			ctx.InterestAreas = ParseList(value)
		case "career_goal":
			ctx.CareerGoal = value
		case "availability":
			ctx.WeeklyHoursAvailable = parseIntOrZero(value)
		case "learning_style":
			ctx.LearningStyle = value
		default:
			ctx.Extra[slugKey(r.QuestionText)] = value
		}
	}

	return ctx
}

func normalizeCategory(category string) string {
	c := strings.ToLower(strings.TrimSpace(category))
	switch c {
	case "graduation", "graduation_timeline", "years_until_graduation":
		return "graduation"
	case "skills", "current_skills":
		return "skills"
	case "interests", "interest_areas":
		return "interests"
	case "career_goal", "goal":
		return "career_goal"
	case "availability", "weekly_hours", "weekly_availability":
		return "availability"
	case "learning_style":
		return "learning_style"
	case "major", "study_level":
		return c
	}
	return ""
}

// ParseList 先尝试严格 JSON 数组，失败再按逗号/换行/分号切分
func ParseList(value string) []string {
	var arr []string
	if err := json.Unmarshal([]byte(value), &arr); err == nil {
		out := make([]string, 0, len(arr))
		for _, s := range arr {
			if t := strings.TrimSpace(s); t != "" {
				out = append(out, t)
			}
		}
		return out
	}

	parts := strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == '\n' || r == ';'
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// parseIntOrZero 提取字符串里第一段数字，如 "2 years" -> 2，失败返回 0
func parseIntOrZero(value string) int {
	if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
		return n
	}
	start := -1
	for i, r := range value {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			n, _ := strconv.Atoi(value[start:i])
			return n
		}
	}
	if start >= 0 {
		n, _ := strconv.Atoi(value[start:])
		return n
	}
	return 0
}

const slugMaxLen = 50

// slugKey 由题干生成溢出键：小写、去问号、空格转下划线、截断到 50 字符
func slugKey(question string) string {
	s := strings.ToLower(strings.TrimSpace(question))
	s = strings.ReplaceAll(s, "?", "")
	s = strings.ReplaceAll(s, " ", "_")
	if len(s) > slugMaxLen {
		s = s[:slugMaxLen]
	}
	return s
}

const maxExtraPromptEntries = 5

// RenderPromptBlock 渲染给提示词用的 "Student Context" 文本块。
// 溢出条目最多输出 5 条，按键排序保证结果稳定。
func (c *AssessmentContext) RenderPromptBlock() string {
	var b strings.Builder
	b.WriteString("Student Context:\n")
	if c.Major != "" {
		fmt.Fprintf(&b, "- Major: %s\n", c.Major)
	}
	if c.StudyLevel != "" {
		fmt.Fprintf(&b, "- Study level: %s\n", c.StudyLevel)
	}
	if c.YearsUntilGraduation > 0 {
		fmt.Fprintf(&b, "- Years until graduation: %d\n", c.YearsUntilGraduation)
	}
	if len(c.CurrentSkills) > 0 {
		fmt.Fprintf(&b, "- Current skills: %s\n", strings.Join(c.CurrentSkills, ", "))
	}
	if len(c.InterestAreas) > 0 {
		fmt.Fprintf(&b, "- Interest areas: %s\n", strings.Join(c.InterestAreas, ", "))
	}
	if c.CareerGoal != "" {
		fmt.Fprintf(&b, "- Career goal: %s\n", c.CareerGoal)
	}
	if c.WeeklyHoursAvailable > 0 {
		fmt.Fprintf(&b, "- Weekly hours available: %d\n", c.WeeklyHoursAvailable)
	}
	if c.LearningStyle != "" {
		fmt.Fprintf(&b, "- Learning style: %s\n", c.LearningStyle)
	}

	if len(c.Extra) > 0 {
		keys := make([]string, 0, len(c.Extra))
		for k := range c.Extra {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		if len(keys) > maxExtraPromptEntries {
			keys = keys[:maxExtraPromptEntries]
		}
		for _, k := range keys {
			fmt.Fprintf(&b, "- %s: %s\n", k, c.Extra[k])
		}
	}

	return b.String()
}

// MarshalContext / UnmarshalContext 上下文与持久化 JSON 快照互转
func MarshalContext(c *AssessmentContext) (json.RawMessage, error) {
	return json.Marshal(c)
}

func UnmarshalContext(raw json.RawMessage) (*AssessmentContext, error) {
	var c AssessmentContext
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	if c.Extra == nil {
		c.Extra = map[string]string{}
	}
	return &c, nil
}
