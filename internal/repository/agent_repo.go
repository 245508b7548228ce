package repository

import (
	"errors"
	"fmt"

	"github.com/careroute/backend/internal/model"
	"gorm.io/gorm"
)

// proficiencyRanks 熟练度与序号的对照，用于最低熟练度过滤
var proficiencyRanks = map[string]int{
	"basic":        1,
	"intermediate": 2,
	"advanced":     3,
	"expert":       4,
}

type agentRepository struct {
	db *gorm.DB
}

func NewAgentRepository(db *gorm.DB) AgentRepository {
	return &agentRepository{db: db}
}

func (r *agentRepository) Create(agent *model.Agent) error {
	return r.db.Create(agent).Error
}

func (r *agentRepository) List() ([]model.Agent, error) {
	var agents []model.Agent
	err := r.db.Preload("Skills").Order("agent_id").Find(&agents).Error
	return agents, err
}

func (r *agentRepository) GetByAgentID(agentID string) (*model.Agent, error) {
	var agent model.Agent
	err := r.db.Preload("Skills").Where("agent_id = ?", agentID).First(&agent).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &agent, nil
}

// GetAvailable 可用坐席，teamID 为空时跨团队返回
func (r *agentRepository) GetAvailable(teamID string) ([]model.Agent, error) {
	query := r.db.Preload("Skills").Where("availability = ?", "available")
	if teamID != "" {
		query = query.Where("team_id = ?", teamID)
	}
	var agents []model.Agent
	err := query.Order("agent_id").Find(&agents).Error
	return agents, err
}

// GetBySkill 持有指定技能（生效记录）且熟练度不低于 minProficiencyRank 的坐席
func (r *agentRepository) GetBySkill(skillID string, minProficiencyRank int) ([]model.Agent, error) {
	var skills []model.AgentSkill
	err := r.db.Where("skill_id = ? AND is_active = ?", skillID, true).Find(&skills).Error
	if err != nil {
		return nil, err
	}

	agentIDs := make([]string, 0, len(skills))
	for _, skill := range skills {
		if proficiencyRanks[skill.Proficiency] >= minProficiencyRank {
			agentIDs = append(agentIDs, skill.AgentID)
		}
	}
	if len(agentIDs) == 0 {
		return []model.Agent{}, nil
	}

	var agents []model.Agent
	err = r.db.Preload("Skills").Where("agent_id IN ?", agentIDs).Order("agent_id").Find(&agents).Error
	return agents, err
}

func (r *agentRepository) Save(agent *model.Agent) error {
	return r.db.Save(agent).Error
}

func (r *agentRepository) SetAvailability(agentID string, availability string) error {
	result := r.db.Model(&model.Agent{}).
		Where("agent_id = ?", agentID).
		Update("availability", availability)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementTaskCount 路由结果落库：delta 为 +1（派发）或 -1（完成）
func (r *agentRepository) IncrementTaskCount(agentID string, delta int) error {
	result := r.db.Model(&model.Agent{}).
		Where("agent_id = ?", agentID).
		Update("current_task_count", gorm.Expr("current_task_count + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	// 不允许出现负计数
	return r.db.Model(&model.Agent{}).
		Where("agent_id = ? AND current_task_count < 0", agentID).
		Update("current_task_count", 0).Error
}

func (r *agentRepository) Delete(agentID string) error {
	agent, err := r.GetByAgentID(agentID)
	if err != nil {
		return err
	}
	if err := r.db.Where("agent_id = ?", agentID).Delete(&model.AgentSkill{}).Error; err != nil {
		return err
	}
	return r.db.Delete(&model.Agent{}, agent.ID).Error
}

// UpsertSkill 同一 (agent_id, skill_id) 只保留一条记录
func (r *agentRepository) UpsertSkill(skill *model.AgentSkill) error {
	if _, ok := proficiencyRanks[skill.Proficiency]; !ok {
		return fmt.Errorf("invalid proficiency: %s", skill.Proficiency)
	}

	var existing model.AgentSkill
	err := r.db.Where("agent_id = ? AND skill_id = ?", skill.AgentID, skill.SkillID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(skill).Error
	}
	if err != nil {
		return err
	}

	existing.Proficiency = skill.Proficiency
	existing.IsActive = skill.IsActive
	return r.db.Save(&existing).Error
}

func (r *agentRepository) GetSkills(agentID string) ([]model.AgentSkill, error) {
	var skills []model.AgentSkill
	err := r.db.Where("agent_id = ?", agentID).Order("skill_id").Find(&skills).Error
	return skills, err
}

func (r *agentRepository) IncrementTasksCompleted(agentID string, skillID string) error {
	return r.db.Model(&model.AgentSkill{}).
		Where("agent_id = ? AND skill_id = ?", agentID, skillID).
		Update("tasks_completed", gorm.Expr("tasks_completed + 1")).Error
}
