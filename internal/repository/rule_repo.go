package repository

import (
	"errors"

	"github.com/careroute/backend/internal/model"
	"gorm.io/gorm"
)

type ruleRepository struct {
	db *gorm.DB
}

func NewRuleRepository(db *gorm.DB) RuleRepository {
	return &ruleRepository{db: db}
}

func (r *ruleRepository) Create(rule *model.RoutingRule) error {
	return r.db.Create(rule).Error
}

func (r *ruleRepository) List() ([]model.RoutingRule, error) {
	var rules []model.RoutingRule
	err := r.db.Order("priority desc, id asc").Find(&rules).Error
	return rules, err
}

// GetActive 激活规则，优先级降序、同优先级按 id 升序（规则平局的稳定顺序）
func (r *ruleRepository) GetActive() ([]model.RoutingRule, error) {
	var rules []model.RoutingRule
	err := r.db.Where("is_active = ?", true).Order("priority desc, id asc").Find(&rules).Error
	return rules, err
}

func (r *ruleRepository) Get(id uint) (*model.RoutingRule, error) {
	var rule model.RoutingRule
	err := r.db.First(&rule, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *ruleRepository) Save(rule *model.RoutingRule) error {
	return r.db.Save(rule).Error
}

func (r *ruleRepository) Delete(id uint) error {
	return r.db.Delete(&model.RoutingRule{}, id).Error
}
