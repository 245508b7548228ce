package service

import (
	"github.com/careroute/backend/internal/model"
	"github.com/careroute/backend/internal/repository"
)

// RuleService 路由规则管理。规则在写入前完整解析一遍，
// 非法 JSON 或未知策略名在这里报错，不会进入路由调用路径。
type RuleService struct {
	repo repository.RuleRepository
}

func NewRuleService(repo repository.RuleRepository) *RuleService {
	return &RuleService{repo: repo}
}

func (s *RuleService) Create(rule *model.RoutingRule) error {
	if _, err := repository.ParseRuleModel(rule); err != nil {
		return err
	}
	return s.repo.Create(rule)
}

func (s *RuleService) List() ([]model.RoutingRule, error) {
	return s.repo.List()
}

func (s *RuleService) Get(id uint) (*model.RoutingRule, error) {
	return s.repo.Get(id)
}

func (s *RuleService) Save(rule *model.RoutingRule) error {
	if _, err := repository.ParseRuleModel(rule); err != nil {
		return err
	}
	return s.repo.Save(rule)
}

func (s *RuleService) Delete(id uint) error {
	return s.repo.Delete(id)
}
