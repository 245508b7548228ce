package repository

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/careroute/backend/internal/model"
	"github.com/careroute/backend/internal/pkg/routing"
)

// ruleRoutingBlock 规则 routing 列的 JSON 结构
type ruleRoutingBlock struct {
	Strategy          string                         `json:"strategy,omitempty"`
	SkillRequirements *routing.TaskSkillRequirements `json:"skill_requirements,omitempty"`
	FallbackBehavior  string                         `json:"fallback_behavior,omitempty"`
	FallbackRuleIDs   []uint                         `json:"fallback_rule_ids,omitempty"`
	MaxQueueTime      int                            `json:"max_queue_time,omitempty"`
	QueuePriority     int                            `json:"queue_priority,omitempty"`
}

// agentDirectory AgentRepository 到路由引擎坐席目录的适配
type agentDirectory struct {
	repo AgentRepository
}

// NewAgentDirectory 把坐席存储包装成引擎可用的只读目录
func NewAgentDirectory(repo AgentRepository) routing.AgentDirectory {
	return &agentDirectory{repo: repo}
}

func (d *agentDirectory) GetAgentByID(agentID string) (*routing.AgentProfile, error) {
	agent, err := d.repo.GetByAgentID(agentID)
	if err != nil {
		if err == ErrNotFound {
			return nil, fmt.Errorf("%w: %s", routing.ErrAgentNotFound, agentID)
		}
		return nil, err
	}
	return toProfile(agent), nil
}

func (d *agentDirectory) GetAvailableAgents(teamID string) ([]*routing.AgentProfile, error) {
	agents, err := d.repo.GetAvailable(teamID)
	if err != nil {
		return nil, err
	}
	return toProfiles(agents), nil
}

func (d *agentDirectory) GetAgentsBySkill(skillID string, minProficiency routing.Proficiency) ([]*routing.AgentProfile, error) {
	minRank := minProficiency.Rank()
	if minRank == 0 {
		minRank = routing.ProficiencyBasic.Rank()
	}
	agents, err := d.repo.GetBySkill(skillID, minRank)
	if err != nil {
		return nil, err
	}
	return toProfiles(agents), nil
}

// ruleDirectory RuleRepository 到路由引擎规则目录的适配。
// 存量规则 JSON 非法属于配置错误，直接向上抛错，不做静默跳过。
type ruleDirectory struct {
	repo RuleRepository
}

// NewRuleDirectory 把规则存储包装成引擎可用的规则目录
func NewRuleDirectory(repo RuleRepository) routing.RuleDirectory {
	return &ruleDirectory{repo: repo}
}

func (d *ruleDirectory) GetActiveRules() ([]*routing.Rule, error) {
	records, err := d.repo.GetActive()
	if err != nil {
		return nil, err
	}

	rules := make([]*routing.Rule, 0, len(records))
	for i := range records {
		rule, err := ParseRuleModel(&records[i])
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// ParseRuleModel 把存储形态的规则解析为引擎形态。
// RuleService 在写入前也用它做校验，保证非法规则不会入库。
func ParseRuleModel(record *model.RoutingRule) (*routing.Rule, error) {
	rule := &routing.Rule{
		RuleID:   record.ID,
		Name:     record.Name,
		IsActive: record.IsActive,
		Priority: record.Priority,
	}

	if record.Conditions != "" {
		if err := json.Unmarshal([]byte(record.Conditions), &rule.Conditions); err != nil {
			return nil, fmt.Errorf("rule %d: invalid conditions: %w", record.ID, err)
		}
	}

	if record.Routing != "" {
		var block ruleRoutingBlock
		if err := json.Unmarshal([]byte(record.Routing), &block); err != nil {
			return nil, fmt.Errorf("rule %d: invalid routing block: %w", record.ID, err)
		}
		// 未显式声明时保持空值，让引擎默认策略生效
		if block.Strategy != "" {
			strategy, err := routing.ParseStrategy(block.Strategy)
			if err != nil {
				return nil, fmt.Errorf("rule %d: %w", record.ID, err)
			}
			rule.Strategy = strategy
		}
		if block.FallbackBehavior != "" {
			fallback, err := routing.ParseFallback(block.FallbackBehavior)
			if err != nil {
				return nil, fmt.Errorf("rule %d: %w", record.ID, err)
			}
			rule.FallbackBehavior = fallback
		}
		rule.SkillRequirements = block.SkillRequirements
		rule.FallbackRuleIDs = block.FallbackRuleIDs
		rule.MaxQueueTime = block.MaxQueueTime
		rule.QueuePriority = block.QueuePriority
	}

	return rule, nil
}

func toProfile(agent *model.Agent) *routing.AgentProfile {
	skills := make([]routing.AgentSkillInfo, 0, len(agent.Skills))
	for _, skill := range agent.Skills {
		skills = append(skills, routing.AgentSkillInfo{
			SkillID:        skill.SkillID,
			Proficiency:    routing.Proficiency(skill.Proficiency),
			IsActive:       skill.IsActive,
			TasksCompleted: skill.TasksCompleted,
		})
	}
	return &routing.AgentProfile{
		AgentID:            agent.AgentID,
		Availability:       routing.Availability(agent.Availability),
		MaxConcurrentTasks: agent.MaxConcurrentTasks,
		CurrentTaskCount:   agent.CurrentTaskCount,
		Skills:             skills,
		PrimaryLanguages:   splitLanguages(agent.PrimaryLanguages),
		SecondaryLanguages: splitLanguages(agent.SecondaryLanguages),
		TeamID:             agent.TeamID,
	}
}

func toProfiles(agents []model.Agent) []*routing.AgentProfile {
	profiles := make([]*routing.AgentProfile, 0, len(agents))
	for i := range agents {
		profiles = append(profiles, toProfile(&agents[i]))
	}
	return profiles
}

func splitLanguages(joined string) []string {
	if joined == "" {
		return nil
	}
	parts := strings.Split(joined, ",")
	languages := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			languages = append(languages, trimmed)
		}
	}
	return languages
}
