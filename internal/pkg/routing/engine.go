package routing

import (
	"fmt"

	"k8s.io/klog/v2"
)

// EngineConfig 引擎构造参数。非法的策略名/兜底行为在 NewEngine 时报错，
// 不会等到路由调用才暴露。
type EngineConfig struct {
	Scoring          ScoringConfig
	DefaultStrategy  string
	DefaultFallback  string
	AvgHandleSeconds int
	// 队列分发保留容量比例，见 ProcessQueueForAgent
	CapacityReserveRatio float64
	// 技能层级解析最大深度
	MaxHierarchyDepth int
}

// DefaultEngineConfig 默认引擎参数
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Scoring:              DefaultScoringConfig(),
		DefaultStrategy:      string(StrategyBestMatch),
		DefaultFallback:      string(FallbackReject),
		AvgHandleSeconds:     120,
		CapacityReserveRatio: 0.8,
		MaxHierarchyDepth:    defaultMaxDepth,
	}
}

// Engine 技能路由引擎。坐席目录与规则目录都是只读依赖，
// routed 结果对 current_task_count 的影响由调用方落库。
type Engine struct {
	agents    AgentDirectory
	rules     RuleDirectory
	hierarchy *HierarchyResolver
	scorer    *Scorer
	selector  *Selector
	evaluator *RuleEvaluator
	queue     *Queue

	defaultStrategy Strategy
	defaultFallback FallbackBehavior
	reserveRatio    float64
}

// NewEngine 创建引擎
func NewEngine(agents AgentDirectory, rules RuleDirectory, cfg EngineConfig) (*Engine, error) {
	strategy, err := ParseStrategy(cfg.DefaultStrategy)
	if err != nil {
		return nil, err
	}
	fallback, err := ParseFallback(cfg.DefaultFallback)
	if err != nil {
		return nil, err
	}
	reserveRatio := cfg.CapacityReserveRatio
	if reserveRatio <= 0 || reserveRatio > 1 {
		reserveRatio = 0.8
	}

	hierarchy := NewHierarchyResolver(cfg.MaxHierarchyDepth)
	return &Engine{
		agents:          agents,
		rules:           rules,
		hierarchy:       hierarchy,
		scorer:          NewScorer(hierarchy, cfg.Scoring),
		selector:        NewSelector(cfg.Scoring),
		evaluator:       NewRuleEvaluator(),
		queue:           NewQueue(cfg.AvgHandleSeconds),
		defaultStrategy: strategy,
		defaultFallback: fallback,
		reserveRatio:    reserveRatio,
	}, nil
}

// Route 单次路由：规则求值 → 候选获取 → 过滤评分 → 策略选择 → 兜底。
// 目录查询失败向上抛错；无人可派不是错误，返回 queued/escalated/rejected。
func (e *Engine) Route(taskID string, req *TaskSkillRequirements, ctx RoutingContext) (*RoutingDecision, error) {
	if req == nil {
		req = &TaskSkillRequirements{}
	}

	decision := &RoutingDecision{TaskID: taskID}
	strategy := e.defaultStrategy
	fallback := e.defaultFallback
	queuePriority := req.Priority

	// 1. 规则求值：命中规则覆盖要求与策略，并接管兜底行为
	activeRules, err := e.rules.GetActiveRules()
	if err != nil {
		return nil, fmt.Errorf("load active rules: %w", err)
	}
	if rule := e.evaluator.Evaluate(activeRules, ctx); rule != nil {
		decision.AppliedRuleID = rule.RuleID
		decision.AppliedRuleName = rule.Name
		req = MergeRequirements(req, rule.SkillRequirements)
		if rule.Strategy != "" {
			strategy = rule.Strategy
		}
		if rule.FallbackBehavior != "" {
			fallback = rule.FallbackBehavior
		}
		if rule.QueuePriority != 0 {
			queuePriority = rule.QueuePriority
		}
		klog.V(6).Infof("[engine.Route] 任务 %s 命中规则 %d(%s)", taskID, rule.RuleID, rule.Name)
	}

	// 2. 候选获取
	agents, err := e.agents.GetAvailableAgents(req.TeamID)
	if err != nil {
		return nil, fmt.Errorf("load available agents: %w", err)
	}

	// 3. 过滤 + 评分
	candidates := make([]*CandidateScore, 0, len(agents))
	for _, agent := range agents {
		if score, ok := e.scorer.Score(agent, req); ok {
			candidates = append(candidates, score)
		}
	}

	// 4. 策略选择
	if selected := e.selector.Select(strategy, candidates, req.TeamID); selected != nil {
		decision.Outcome = OutcomeRouted
		decision.SelectedAgentID = selected.AgentID
		decision.CandidateAgents = candidates
		return decision, nil
	}

	// 5. 兜底
	switch fallback {
	case FallbackQueue:
		queueID, position := e.queue.Enqueue(taskID, req, queuePriority)
		decision.Outcome = OutcomeQueued
		decision.QueueID = queueID
		decision.QueuePosition = position
		decision.EstimatedWaitTime = e.queue.GetEstimatedWaitTime(req.TeamID)
		klog.V(6).Infof("[engine.Route] 任务 %s 入队，位置 %d", taskID, position)
	case FallbackEscalate:
		decision.Outcome = OutcomeEscalated
	default:
		decision.Outcome = OutcomeRejected
	}
	return decision, nil
}

// CheckAgentMatch 诊断接口：只做技能匹配（层级解析后），
// 忽略可用状态与容量，报告缺失的必选技能。
func (e *Engine) CheckAgentMatch(agentID string, req *TaskSkillRequirements) (*MatchResult, error) {
	agent, err := e.agents.GetAgentByID(agentID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		req = &TaskSkillRequirements{}
	}

	missing := e.scorer.MissingRequiredSkills(agent, req)
	return &MatchResult{
		Matches:       len(missing) == 0,
		MissingSkills: missing,
	}, nil
}

// RegisterSkillHierarchy 注册技能层级：持有 implied 中任一技能即可满足 skillID
func (e *Engine) RegisterSkillHierarchy(skillID string, impliedSkillIDs []string) {
	e.hierarchy.Register(skillID, impliedSkillIDs)
}

// ResetRoundRobinState 清零所有团队的轮询游标
func (e *Engine) ResetRoundRobinState() {
	e.selector.ResetRoundRobin()
}

// Queue 暴露等待队列，供队列巡检接口使用
func (e *Engine) Queue() *Queue {
	return e.queue
}
