package routing

import (
	"fmt"
	"sort"
	"sync"
)

// defaultTeamKey 未指定团队时的队列键与轮询键
const defaultTeamKey = "default"

// ParseStrategy 解析策略名，未知策略在构造期报错
func ParseStrategy(name string) (Strategy, error) {
	switch Strategy(name) {
	case StrategyBestMatch, StrategyLeastOccupied, StrategySkillsFirst, StrategyRoundRobin:
		return Strategy(name), nil
	case "":
		return StrategyBestMatch, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownStrategy, name)
}

// ParseFallback 解析兜底行为名
func ParseFallback(name string) (FallbackBehavior, error) {
	switch FallbackBehavior(name) {
	case FallbackQueue, FallbackEscalate, FallbackReject:
		return FallbackBehavior(name), nil
	case "":
		return FallbackReject, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownFallback, name)
}

// Selector 策略选择器。只有 round_robin 携带可变状态（按团队的轮询游标），
// 游标修改由互斥锁串行化。
type Selector struct {
	cfg     ScoringConfig
	mu      sync.Mutex
	cursors map[string]int // teamKey -> 轮询游标
}

// NewSelector 创建选择器
func NewSelector(cfg ScoringConfig) *Selector {
	return &Selector{
		cfg:     cfg,
		cursors: make(map[string]int),
	}
}

// Select 按策略从已过滤的候选中选出一个坐席，并回填 TotalScore。
// 候选为空时返回 nil。选择不改变 4.1 的过滤规则，只决定排序。
func (s *Selector) Select(strategy Strategy, candidates []*CandidateScore, teamID string) *CandidateScore {
	if len(candidates) == 0 {
		return nil
	}

	switch strategy {
	case StrategyLeastOccupied:
		for _, c := range candidates {
			c.TotalScore = c.WorkloadScore
		}
		sort.SliceStable(candidates, func(i, j int) bool {
			if candidates[i].WorkloadScore != candidates[j].WorkloadScore {
				return candidates[i].WorkloadScore > candidates[j].WorkloadScore
			}
			return candidates[i].SkillScore > candidates[j].SkillScore
		})
		return candidates[0]

	case StrategySkillsFirst:
		for _, c := range candidates {
			c.TotalScore = c.SkillScore
		}
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].SkillScore > candidates[j].SkillScore
		})
		return candidates[0]

	case StrategyRoundRobin:
		return s.nextRoundRobin(candidates, teamID)

	default: // best_match
		for _, c := range candidates {
			c.TotalScore = c.SkillScore*s.cfg.SkillWeight +
				c.WorkloadScore*s.cfg.WorkloadWeight +
				c.PreferenceScore*s.cfg.PreferenceWeight
		}
		sort.SliceStable(candidates, func(i, j int) bool {
			if candidates[i].TotalScore != candidates[j].TotalScore {
				return candidates[i].TotalScore > candidates[j].TotalScore
			}
			return candidates[i].CurrentTaskCount < candidates[j].CurrentTaskCount
		})
		return candidates[0]
	}
}

// nextRoundRobin 轮询：候选按 agentId 稳定排序，游标推进并回绕
func (s *Selector) nextRoundRobin(candidates []*CandidateScore, teamID string) *CandidateScore {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].AgentID < candidates[j].AgentID
	})

	key := teamID
	if key == "" {
		key = defaultTeamKey
	}

	s.mu.Lock()
	cursor := s.cursors[key]
	s.cursors[key] = cursor + 1
	s.mu.Unlock()

	selected := candidates[cursor%len(candidates)]
	selected.TotalScore = selected.SkillScore
	return selected
}

// ResetRoundRobin 清零所有轮询游标
func (s *Selector) ResetRoundRobin() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cursors = make(map[string]int)
}
