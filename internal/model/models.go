package model

import (
	"time"
)

// Agent 坐席档案。档案由外部管理端维护，路由引擎只读，
// current_task_count 的变更由路由结果的应用方（RoutingService）负责写回。
type Agent struct {
	ID                 uint         `json:"id" gorm:"primaryKey"`
	AgentID            string       `json:"agent_id" gorm:"size:64;uniqueIndex;not null"`
	Name               string       `json:"name" gorm:"size:255"`
	Availability       string       `json:"availability" gorm:"size:20;default:available"` // available, busy, away
	MaxConcurrentTasks int          `json:"max_concurrent_tasks" gorm:"default:5"`
	CurrentTaskCount   int          `json:"current_task_count" gorm:"default:0"`
	PrimaryLanguages   string       `json:"primary_languages" gorm:"size:255"`   // 逗号分隔，如 "zh,en"
	SecondaryLanguages string       `json:"secondary_languages" gorm:"size:255"` // 逗号分隔
	TeamID             string       `json:"team_id" gorm:"size:64;index"`
	Skills             []AgentSkill `json:"skills,omitempty" gorm:"foreignKey:AgentID;references:AgentID"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`
}

// AgentSkill 坐席技能记录。同一 (agent_id, skill_id) 最多一条生效记录。
type AgentSkill struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	AgentID        string    `json:"agent_id" gorm:"size:64;uniqueIndex:idx_agent_skill;not null"`
	SkillID        string    `json:"skill_id" gorm:"size:64;uniqueIndex:idx_agent_skill;not null"`
	Proficiency    string    `json:"proficiency" gorm:"size:20;default:basic"` // basic, intermediate, advanced, expert
	IsActive       bool      `json:"is_active"`
	TasksCompleted int       `json:"tasks_completed" gorm:"default:0"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// RoutingRule 路由规则。conditions 与 routing 两个块存为 JSON 文本，
// 写入时由 RuleService 校验（未知策略、非法 JSON 在保存前报错）。
type RoutingRule struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Name       string    `json:"name" gorm:"size:255;not null"`
	IsActive   bool      `json:"is_active" gorm:"index"`
	Priority   int       `json:"priority" gorm:"default:0"`
	Conditions string    `json:"conditions" gorm:"type:text"` // JSON 对象，如 {"isVIP":true,"channels":["web","phone"]}
	Routing    string    `json:"routing" gorm:"type:text"`    // JSON 对象，见 repository 的 ruleRoutingBlock
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
