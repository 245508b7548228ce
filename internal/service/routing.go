package service

import (
	"context"

	"github.com/careroute/backend/config"
	"github.com/careroute/backend/internal/eventbus"
	"github.com/careroute/backend/internal/pkg/routing"
	"github.com/careroute/backend/internal/repository"
	"github.com/panjf2000/ants/v2"
	"k8s.io/klog/v2"
)

// RoutingService 路由服务。引擎只产出决策，不回写坐席状态；
// 这里负责把 routed 决策落库（current_task_count +1）并发布事件。
// 队列分发的事件触发走 ants 工作池，避免阻塞可用状态变更的调用方。
type RoutingService struct {
	cfg       *config.Config
	engine    *routing.Engine
	agentRepo repository.AgentRepository
	bus       *eventbus.Bus
	pool      *ants.Pool
}

// NewRoutingService 创建路由服务。配置里的策略/兜底行为非法时在这里报错。
func NewRoutingService(cfg *config.Config, agentRepo repository.AgentRepository, ruleRepo repository.RuleRepository, bus *eventbus.Bus) (*RoutingService, error) {
	engineCfg := routing.EngineConfig{
		Scoring: routing.ScoringConfig{
			SkillWeight:            cfg.Routing.SkillWeight,
			WorkloadWeight:         cfg.Routing.WorkloadWeight,
			PreferenceWeight:       cfg.Routing.PreferenceWeight,
			PreferredAgentBonus:    cfg.Routing.PreferredAgentBonus,
			PrimaryLanguageBonus:   cfg.Routing.PrimaryLanguageBonus,
			SecondaryLanguageBonus: cfg.Routing.SecondaryLanguageBonus,
		},
		DefaultStrategy:      cfg.Routing.DefaultStrategy,
		DefaultFallback:      cfg.Routing.DefaultFallback,
		AvgHandleSeconds:     cfg.Routing.AvgHandleSeconds,
		CapacityReserveRatio: cfg.Routing.CapacityReserveRatio,
		MaxHierarchyDepth:    cfg.Routing.MaxHierarchyDepth,
	}

	engine, err := routing.NewEngine(
		repository.NewAgentDirectory(agentRepo),
		repository.NewRuleDirectory(ruleRepo),
		engineCfg,
	)
	if err != nil {
		return nil, err
	}

	// 单 worker 串行处理队列分发，天然避免两次分发争抢同一坐席容量
	pool, err := ants.NewPool(1, ants.WithNonblocking(false))
	if err != nil {
		return nil, err
	}

	return &RoutingService{
		cfg:       cfg,
		engine:    engine,
		agentRepo: agentRepo,
		bus:       bus,
		pool:      pool,
	}, nil
}

// Route 路由一个任务，并把 routed 决策应用到坐席计数
func (s *RoutingService) Route(ctx context.Context, taskID string, req *routing.TaskSkillRequirements, rctx routing.RoutingContext) (*routing.RoutingDecision, error) {
	decision, err := s.engine.Route(taskID, req, rctx)
	if err != nil {
		return nil, err
	}
	if decision.Outcome == routing.OutcomeRouted {
		if err := s.agentRepo.IncrementTaskCount(decision.SelectedAgentID, 1); err != nil {
			return nil, err
		}
	}
	return decision, nil
}

// CheckAgentMatch 诊断：指定坐席缺哪些必选技能
func (s *RoutingService) CheckAgentMatch(agentID string, req *routing.TaskSkillRequirements) (*routing.MatchResult, error) {
	return s.engine.CheckAgentMatch(agentID, req)
}

// ProcessQueueForAgent 为指定坐席分发排队任务，并落库坐席计数
func (s *RoutingService) ProcessQueueForAgent(agentID string) ([]*routing.RoutingDecision, error) {
	decisions, err := s.engine.ProcessQueueForAgent(agentID)
	if err != nil {
		return nil, err
	}
	return decisions, s.applyDecisions(decisions)
}

// RebalanceQueues 对全部可用坐席执行队列分发
func (s *RoutingService) RebalanceQueues() ([]*routing.RoutingDecision, error) {
	decisions, err := s.engine.RebalanceQueues()
	if err != nil {
		return nil, err
	}
	return decisions, s.applyDecisions(decisions)
}

// ProcessQueueAsync 事件触发的队列分发入口，提交到工作池后立即返回
func (s *RoutingService) ProcessQueueAsync(agentID string) {
	err := s.pool.Submit(func() {
		if _, err := s.ProcessQueueForAgent(agentID); err != nil {
			klog.Errorf("[routing.ProcessQueueAsync] 坐席 %s 队列分发失败: %v", agentID, err)
		}
	})
	if err != nil {
		klog.Errorf("[routing.ProcessQueueAsync] 提交任务失败: %v", err)
	}
}

// CompleteTask 坐席完成一个任务：计数 -1、技能完成数 +1，发布容量释放事件
func (s *RoutingService) CompleteTask(ctx context.Context, agentID string, skillID string) error {
	if err := s.agentRepo.IncrementTaskCount(agentID, -1); err != nil {
		return err
	}
	if skillID != "" {
		if err := s.agentRepo.IncrementTasksCompleted(agentID, skillID); err != nil {
			klog.Errorf("[routing.CompleteTask] 更新技能完成数失败: %v", err)
		}
	}

	agent, err := s.agentRepo.GetByAgentID(agentID)
	if err != nil {
		return err
	}
	return s.bus.Publish(ctx, eventbus.AgentEvent{
		Type:    eventbus.AgentEventCapacityFreed,
		AgentID: agentID,
		TeamID:  agent.TeamID,
	})
}

// RegisterSkillHierarchy 注册技能层级
func (s *RoutingService) RegisterSkillHierarchy(skillID string, impliedSkillIDs []string) {
	s.engine.RegisterSkillHierarchy(skillID, impliedSkillIDs)
}

// ResetRoundRobinState 清零轮询游标
func (s *RoutingService) ResetRoundRobinState() {
	s.engine.ResetRoundRobinState()
}

// GetQueueIds 非空队列键
func (s *RoutingService) GetQueueIds() []string {
	return s.engine.Queue().GetQueueIds()
}

// GetQueuedTasks 队列内容快照
func (s *RoutingService) GetQueuedTasks(queueKey string) []*routing.QueueEntry {
	return s.engine.Queue().GetQueuedTasks(queueKey)
}

// RemoveQueuedTask 把任务移出队列（外部取消/超时时调用）
func (s *RoutingService) RemoveQueuedTask(taskID string) error {
	return s.engine.Queue().RemoveTask(taskID)
}

// Shutdown 释放工作池
func (s *RoutingService) Shutdown() {
	s.pool.Release()
}

func (s *RoutingService) applyDecisions(decisions []*routing.RoutingDecision) error {
	for _, decision := range decisions {
		if decision.Outcome != routing.OutcomeRouted {
			continue
		}
		if err := s.agentRepo.IncrementTaskCount(decision.SelectedAgentID, 1); err != nil {
			return err
		}
	}
	return nil
}
