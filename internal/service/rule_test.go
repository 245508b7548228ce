package service

import (
	"testing"

	"github.com/careroute/backend/internal/model"
	"github.com/careroute/backend/internal/repository"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestRuleService(t *testing.T) *RuleService {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.RoutingRule{}))
	return NewRuleService(repository.NewRuleRepository(db))
}

func TestRuleServiceCreateValidates(t *testing.T) {
	svc := newTestRuleService(t)

	// 非法策略在写入前报错，不进入路由路径
	err := svc.Create(&model.RoutingRule{
		Name:    "坏规则",
		Routing: `{"strategy":"coin_flip"}`,
	})
	require.Error(t, err)

	rules, listErr := svc.List()
	require.NoError(t, listErr)
	require.Empty(t, rules)

	require.NoError(t, svc.Create(&model.RoutingRule{
		Name:       "VIP客户优先",
		IsActive:   true,
		Priority:   100,
		Conditions: `{"isVIP":true}`,
		Routing:    `{"strategy":"skills_first","fallback_behavior":"queue","queue_priority":90}`,
	}))

	rules, listErr = svc.List()
	require.NoError(t, listErr)
	require.Len(t, rules, 1)
}
