package repository

import (
	"errors"

	"github.com/careroute/backend/internal/model"
)

// ErrNotFound 记录不存在错误
var ErrNotFound = errors.New("record not found")

type AgentRepository interface {
	Create(agent *model.Agent) error
	List() ([]model.Agent, error)
	GetByAgentID(agentID string) (*model.Agent, error)
	GetAvailable(teamID string) ([]model.Agent, error)
	GetBySkill(skillID string, minProficiencyRank int) ([]model.Agent, error)
	Save(agent *model.Agent) error
	SetAvailability(agentID string, availability string) error
	IncrementTaskCount(agentID string, delta int) error
	Delete(agentID string) error

	UpsertSkill(skill *model.AgentSkill) error
	GetSkills(agentID string) ([]model.AgentSkill, error)
	IncrementTasksCompleted(agentID string, skillID string) error
}

type RuleRepository interface {
	Create(rule *model.RoutingRule) error
	List() ([]model.RoutingRule, error)
	GetActive() ([]model.RoutingRule, error)
	Get(id uint) (*model.RoutingRule, error)
	Save(rule *model.RoutingRule) error
	Delete(id uint) error
}
