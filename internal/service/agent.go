package service

import (
	"context"
	"fmt"

	"github.com/careroute/backend/internal/eventbus"
	"github.com/careroute/backend/internal/model"
	"github.com/careroute/backend/internal/repository"
	"k8s.io/klog/v2"
)

var validAvailabilities = map[string]bool{
	"available": true,
	"busy":      true,
	"away":      true,
}

// AgentService 坐席目录的管理面。坐席状态变为可用时发布事件，
// 由订阅方触发队列分发。
type AgentService struct {
	repo repository.AgentRepository
	bus  *eventbus.Bus
}

func NewAgentService(repo repository.AgentRepository, bus *eventbus.Bus) *AgentService {
	return &AgentService{repo: repo, bus: bus}
}

func (s *AgentService) Create(agent *model.Agent) error {
	if agent.AgentID == "" {
		return fmt.Errorf("agent_id 不能为空")
	}
	if agent.Availability == "" {
		agent.Availability = "available"
	}
	if !validAvailabilities[agent.Availability] {
		return fmt.Errorf("无效的可用状态: %s", agent.Availability)
	}
	if agent.MaxConcurrentTasks <= 0 {
		agent.MaxConcurrentTasks = 5
	}
	return s.repo.Create(agent)
}

func (s *AgentService) List() ([]model.Agent, error) {
	return s.repo.List()
}

func (s *AgentService) GetByAgentID(agentID string) (*model.Agent, error) {
	return s.repo.GetByAgentID(agentID)
}

func (s *AgentService) Save(agent *model.Agent) error {
	if !validAvailabilities[agent.Availability] {
		return fmt.Errorf("无效的可用状态: %s", agent.Availability)
	}
	return s.repo.Save(agent)
}

func (s *AgentService) Delete(agentID string) error {
	return s.repo.Delete(agentID)
}

// SetAvailability 变更坐席状态，转为 available 时发布事件
func (s *AgentService) SetAvailability(ctx context.Context, agentID string, availability string) error {
	if !validAvailabilities[availability] {
		return fmt.Errorf("无效的可用状态: %s", availability)
	}
	if err := s.repo.SetAvailability(agentID, availability); err != nil {
		return err
	}

	if availability != "available" {
		return nil
	}

	agent, err := s.repo.GetByAgentID(agentID)
	if err != nil {
		return err
	}
	if err := s.bus.Publish(ctx, eventbus.AgentEvent{
		Type:    eventbus.AgentEventAvailable,
		AgentID: agentID,
		TeamID:  agent.TeamID,
	}); err != nil {
		klog.Errorf("[agent.SetAvailability] 事件发布失败: %v", err)
	}
	return nil
}

// UpsertSkill 新增或更新坐席技能，熟练度非法时报错
func (s *AgentService) UpsertSkill(skill *model.AgentSkill) error {
	if skill.AgentID == "" || skill.SkillID == "" {
		return fmt.Errorf("agent_id 与 skill_id 不能为空")
	}
	if skill.Proficiency == "" {
		skill.Proficiency = "basic"
	}
	if _, err := s.repo.GetByAgentID(skill.AgentID); err != nil {
		return err
	}
	return s.repo.UpsertSkill(skill)
}

func (s *AgentService) GetSkills(agentID string) ([]model.AgentSkill, error) {
	return s.repo.GetSkills(agentID)
}
