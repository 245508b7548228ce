package routing

// Availability 坐席可用状态
type Availability string

const (
	AvailabilityAvailable Availability = "available"
	AvailabilityBusy      Availability = "busy"
	AvailabilityAway      Availability = "away"
)

// Proficiency 技能熟练度，basic < intermediate < advanced < expert
type Proficiency string

const (
	ProficiencyBasic        Proficiency = "basic"
	ProficiencyIntermediate Proficiency = "intermediate"
	ProficiencyAdvanced     Proficiency = "advanced"
	ProficiencyExpert       Proficiency = "expert"
)

// Rank 返回熟练度序号（basic=1 ... expert=4），未知返回 0
func (p Proficiency) Rank() int {
	switch p {
	case ProficiencyBasic:
		return 1
	case ProficiencyIntermediate:
		return 2
	case ProficiencyAdvanced:
		return 3
	case ProficiencyExpert:
		return 4
	}
	return 0
}

// MatchType 技能要求类型
type MatchType string

const (
	MatchTypeRequired  MatchType = "required"
	MatchTypePreferred MatchType = "preferred"
)

// AgentSkillInfo 坐席持有的一项技能
type AgentSkillInfo struct {
	SkillID        string      `json:"skill_id"`
	Proficiency    Proficiency `json:"proficiency"`
	IsActive       bool        `json:"is_active"`
	TasksCompleted int         `json:"tasks_completed"`
}

// AgentProfile 坐席档案快照。引擎只读，不回写任何字段。
type AgentProfile struct {
	AgentID            string           `json:"agent_id"`
	Availability       Availability     `json:"availability"`
	MaxConcurrentTasks int              `json:"max_concurrent_tasks"`
	CurrentTaskCount   int              `json:"current_task_count"`
	Skills             []AgentSkillInfo `json:"skills"`
	PrimaryLanguages   []string         `json:"primary_languages"`
	SecondaryLanguages []string         `json:"secondary_languages"`
	TeamID             string           `json:"team_id,omitempty"`
}

// SkillRequirement 单项技能要求
type SkillRequirement struct {
	SkillID            string      `json:"skill_id"`
	MatchType          MatchType   `json:"match_type"`
	MinimumProficiency Proficiency `json:"minimum_proficiency"`
	Weight             float64     `json:"weight"`
}

// TaskSkillRequirements 一次路由请求的完整要求。
// 规则命中后可能被规则的 skill_requirements 覆盖。
type TaskSkillRequirements struct {
	RequiredSkills     []SkillRequirement `json:"required_skills"`
	PreferredSkills    []SkillRequirement `json:"preferred_skills,omitempty"`
	PreferredLanguages []string           `json:"preferred_languages,omitempty"`
	RequiredLanguage   string             `json:"required_language,omitempty"`
	ExcludeAgentIDs    []string           `json:"exclude_agent_ids,omitempty"`
	PreferAgentIDs     []string           `json:"prefer_agent_ids,omitempty"`
	Priority           int                `json:"priority"` // 0-100
	TeamID             string             `json:"team_id,omitempty"`
}

// Strategy 候选排序策略
type Strategy string

const (
	StrategyBestMatch     Strategy = "best_match"
	StrategyLeastOccupied Strategy = "least_occupied"
	StrategySkillsFirst   Strategy = "skills_first"
	StrategyRoundRobin    Strategy = "round_robin"
)

// FallbackBehavior 无人可派时的处理方式
type FallbackBehavior string

const (
	FallbackQueue    FallbackBehavior = "queue"
	FallbackEscalate FallbackBehavior = "escalate"
	FallbackReject   FallbackBehavior = "reject"
)

// RoutingContext 规则匹配上下文，如 {"isVIP":true,"channel":"web"}
type RoutingContext map[string]any

// Rule 路由规则（已解析形态，存储形态见 internal/repository）
type Rule struct {
	RuleID            uint                   `json:"rule_id"`
	Name              string                 `json:"name"`
	IsActive          bool                   `json:"is_active"`
	Priority          int                    `json:"priority"`
	Conditions        map[string]any         `json:"conditions,omitempty"`
	Strategy          Strategy               `json:"strategy,omitempty"`
	SkillRequirements *TaskSkillRequirements `json:"skill_requirements,omitempty"`
	FallbackBehavior  FallbackBehavior       `json:"fallback_behavior,omitempty"`
	FallbackRuleIDs   []uint                 `json:"fallback_rule_ids,omitempty"`
	MaxQueueTime      int                    `json:"max_queue_time,omitempty"` // 秒，仅作元数据，引擎不主动超时
	QueuePriority     int                    `json:"queue_priority,omitempty"`
}

// MatchedSkill 候选分数中的单项技能得分
type MatchedSkill struct {
	SkillID string  `json:"skill_id"`
	Score   float64 `json:"score"`
}

// CandidateScore 单个候选坐席的评分结果
type CandidateScore struct {
	AgentID            string         `json:"agent_id"`
	SkillScore         float64        `json:"skill_score"`
	WorkloadScore      float64        `json:"workload_score"`
	PreferenceScore    float64        `json:"preference_score"`
	TotalScore         float64        `json:"total_score"`
	MatchedSkills      []MatchedSkill `json:"matched_skills"`
	CurrentTaskCount   int            `json:"current_task_count"`
	MaxConcurrentTasks int            `json:"max_concurrent_tasks"`
}

// Outcome 路由结果类型
type Outcome string

const (
	OutcomeRouted    Outcome = "routed"
	OutcomeQueued    Outcome = "queued"
	OutcomeRejected  Outcome = "rejected"
	OutcomeEscalated Outcome = "escalated"
)

// RoutingDecision 一次路由调用的完整结果，返回后不再修改
type RoutingDecision struct {
	Outcome           Outcome           `json:"outcome"`
	TaskID            string            `json:"task_id,omitempty"`
	SelectedAgentID   string            `json:"selected_agent_id,omitempty"`
	CandidateAgents   []*CandidateScore `json:"candidate_agents,omitempty"`
	AppliedRuleID     uint              `json:"applied_rule_id,omitempty"`
	AppliedRuleName   string            `json:"applied_rule_name,omitempty"`
	QueueID           string            `json:"queue_id,omitempty"`
	QueuePosition     int               `json:"queue_position,omitempty"`
	EstimatedWaitTime int               `json:"estimated_wait_time,omitempty"` // 秒
	WaitTimeMs        int64             `json:"wait_time_ms,omitempty"`        // 排队任务被派发时的实际等待
}

// MatchResult CheckAgentMatch 的诊断结果
type MatchResult struct {
	Matches       bool     `json:"matches"`
	MissingSkills []string `json:"missing_skills"`
}

// AgentDirectory 坐席目录（外部协作方），引擎只读
type AgentDirectory interface {
	GetAgentByID(agentID string) (*AgentProfile, error)
	GetAvailableAgents(teamID string) ([]*AgentProfile, error)
	GetAgentsBySkill(skillID string, minProficiency Proficiency) ([]*AgentProfile, error)
}

// RuleDirectory 规则目录（外部协作方）
type RuleDirectory interface {
	GetActiveRules() ([]*Rule, error)
}
