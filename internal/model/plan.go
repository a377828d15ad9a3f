package model

type PlanKind string

const (
	PlanKindStudy  PlanKind = "study"
	PlanKindCareer PlanKind = "career"
)

type PlanStatus string

const (
	PlanActive    PlanStatus = "active"
	PlanCompleted PlanStatus = "completed"
	PlanArchived  PlanStatus = "archived"
)

type StepStatus string

const (
	StepLocked     StepStatus = "locked"
	StepNotStarted StepStatus = "not_started"
	StepInProgress StepStatus = "in_progress"
	StepCompleted  StepStatus = "completed"
	StepSkipped    StepStatus = "skipped"
)

type SkillStatus string

const (
	SkillNotStarted SkillStatus = "not_started"
	SkillInProgress SkillStatus = "in_progress"
	SkillAchieved   SkillStatus = "achieved"
)

type ProficiencyLevel string

const (
	ProficiencyBeginner     ProficiencyLevel = "beginner"
	ProficiencyIntermediate ProficiencyLevel = "intermediate"
	ProficiencyAdvanced     ProficiencyLevel = "advanced"
	ProficiencyExpert       ProficiencyLevel = "expert"
)

// Plan AI生成的学习/职业规划，聚合根。
// Progress 永远由步骤进度推导，不允许外部直接写入。
// swagger:model Plan
type Plan struct {
	UUIDBase
	UserID    uint           `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	AttemptID uint           `gorm:"index;type:bigint unsigned" json:"attemptId"` // 来源测评记录
	Kind      PlanKind       `gorm:"type:enum('study','career');not null" json:"kind"`
	Title     string         `gorm:"size:255;not null" json:"title"`
	Summary   string         `gorm:"type:text" json:"summary"`
	Status    PlanStatus     `gorm:"type:enum('active','completed','archived');default:'active'" json:"status"`
	Progress  int            `gorm:"default:0" json:"progress"` // 0-100，派生值
	Version   int            `gorm:"default:1" json:"version"`  // 乐观锁版本号
	Steps     []PlanStep     `gorm:"foreignKey:PlanID" json:"steps,omitempty"`
	Resources []PlanResource `gorm:"foreignKey:PlanID" json:"resources,omitempty"`
}

func (Plan) TableName() string {
	return "plans"
}

// swagger:model PlanStep
type PlanStep struct {
	UUIDBase
	PlanID         string             `gorm:"index;type:varchar(36);not null" json:"planId"`
	Title          string             `gorm:"size:255;not null" json:"title"`
	Description    string             `gorm:"type:text" json:"description"`
	OrderIndex     int                `gorm:"not null" json:"orderIndex"`
	Status         StepStatus         `gorm:"type:enum('locked','not_started','in_progress','completed','skipped');default:'locked'" json:"status"`
	Progress       int                `gorm:"default:0" json:"progress"` // 0-100，派生值
	EstimatedHours int                `gorm:"default:0" json:"estimatedHours"`
	Checkpoints    []Checkpoint       `gorm:"foreignKey:StepID" json:"checkpoints,omitempty"`
	Skills         []SkillRequirement `gorm:"foreignKey:StepID" json:"skills,omitempty"`
}

func (PlanStep) TableName() string {
	return "plan_steps"
}

// swagger:model Checkpoint
type Checkpoint struct {
	UUIDBase
	StepID           string `gorm:"index;type:varchar(36);not null" json:"stepId"`
	Description      string `gorm:"size:500;not null" json:"description"`
	OrderIndex       int    `gorm:"not null" json:"orderIndex"`
	IsCompleted      bool   `gorm:"default:false" json:"isCompleted"`
	IsMandatory      bool   `gorm:"default:false" json:"isMandatory"`
	EstimatedMinutes int    `gorm:"default:0" json:"estimatedMinutes"`
	Type             string `gorm:"size:50" json:"type"` // Setup/Reading/Exercise/Project/Practice/Assessment
}

func (Checkpoint) TableName() string {
	return "checkpoints"
}

// PlanResource 学习资源，StepID 为空表示规划级资源
// swagger:model PlanResource
type PlanResource struct {
	UUIDBase
	PlanID   string  `gorm:"index;type:varchar(36);not null" json:"planId"`
	StepID   *string `gorm:"index;type:varchar(36)" json:"stepId,omitempty"`
	Title    string  `gorm:"size:255;not null" json:"title"`
	URL      string  `gorm:"size:500" json:"url"`
	Type     string  `gorm:"size:50" json:"type"`
	IsFree   bool    `gorm:"default:true" json:"isFree"`
	Priority int     `gorm:"default:3" json:"priority"`
	IsOpened bool    `gorm:"default:false" json:"isOpened"`
}

func (PlanResource) TableName() string {
	return "plan_resources"
}

// SkillRequirement 步骤关联的技能要求
// swagger:model SkillRequirement
type SkillRequirement struct {
	UUIDBase
	StepID      string           `gorm:"index;type:varchar(36);not null" json:"stepId"`
	SkillName   string           `gorm:"size:100;not null" json:"skillName"`
	TargetLevel ProficiencyLevel `gorm:"type:enum('beginner','intermediate','advanced','expert');default:'beginner'" json:"targetLevel"`
	Status      SkillStatus      `gorm:"type:enum('not_started','in_progress','achieved');default:'not_started'" json:"status"`
	Weight      int              `gorm:"default:1" json:"weight"` // 重要度 1-5
}

func (SkillRequirement) TableName() string {
	return "skill_requirements"
}
