package routing

import (
	"reflect"
	"sort"
	"sync"
)

// ConditionMatcher 单个条件键的匹配函数。
// ruleValue 是规则里声明的值，contextValue 是本次路由上下文里的值。
type ConditionMatcher func(ruleValue, contextValue any) bool

// RuleEvaluator 规则求值器。条件匹配通过按键注册的 matcher 完成，
// 新增条件类型注册 matcher 即可，不需要改判断分支。
type RuleEvaluator struct {
	mu       sync.RWMutex
	matchers map[string]ConditionMatcher
}

// NewRuleEvaluator 创建求值器
func NewRuleEvaluator() *RuleEvaluator {
	return &RuleEvaluator{
		matchers: make(map[string]ConditionMatcher),
	}
}

// RegisterMatcher 为指定条件键注册匹配函数，覆盖默认行为
func (e *RuleEvaluator) RegisterMatcher(conditionKey string, matcher ConditionMatcher) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.matchers[conditionKey] = matcher
}

// Evaluate 在激活规则中选出条件全部命中且优先级最高的一条。
// 优先级相同取 ruleId 较小者（即注册顺序），保证结果稳定。无命中返回 nil。
func (e *RuleEvaluator) Evaluate(rules []*Rule, ctx RoutingContext) *Rule {
	sorted := make([]*Rule, 0, len(rules))
	for _, rule := range rules {
		if rule != nil && rule.IsActive {
			sorted = append(sorted, rule)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Priority != sorted[j].Priority {
			return sorted[i].Priority > sorted[j].Priority
		}
		return sorted[i].RuleID < sorted[j].RuleID
	})

	for _, rule := range sorted {
		if e.conditionsMatch(rule.Conditions, ctx) {
			return rule
		}
	}
	return nil
}

// conditionsMatch 子集匹配：规则声明的每个条件键都必须在上下文中命中
func (e *RuleEvaluator) conditionsMatch(conditions map[string]any, ctx RoutingContext) bool {
	for key, ruleValue := range conditions {
		contextValue, exists := ctx[key]
		if !exists {
			return false
		}

		e.mu.RLock()
		matcher, registered := e.matchers[key]
		e.mu.RUnlock()

		if !registered {
			matcher = equalsOrContains
		}
		if !matcher(ruleValue, contextValue) {
			return false
		}
	}
	return true
}

// equalsOrContains 默认匹配：规则值为列表时做成员判断，否则做相等判断
func equalsOrContains(ruleValue, contextValue any) bool {
	switch values := ruleValue.(type) {
	case []any:
		for _, v := range values {
			if valueEquals(v, contextValue) {
				return true
			}
		}
		return false
	case []string:
		for _, v := range values {
			if valueEquals(v, contextValue) {
				return true
			}
		}
		return false
	}
	return valueEquals(ruleValue, contextValue)
}

// valueEquals 宽松相等：JSON 反序列化会把数字统一成 float64，这里拉平后比较
func valueEquals(a, b any) bool {
	if na, ok := asFloat(a); ok {
		if nb, okb := asFloat(b); okb {
			return na == nb
		}
		return false
	}
	return reflect.DeepEqual(a, b)
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	}
	return 0, false
}

// MergeRequirements 规则命中后合并技能要求：规则提供的字段覆盖调用方输入，
// 未提供的字段保留调用方原值。返回新对象，不修改入参。
func MergeRequirements(base *TaskSkillRequirements, override *TaskSkillRequirements) *TaskSkillRequirements {
	if base == nil {
		base = &TaskSkillRequirements{}
	}
	merged := *base
	if override == nil {
		return &merged
	}

	if len(override.RequiredSkills) > 0 {
		merged.RequiredSkills = override.RequiredSkills
	}
	if len(override.PreferredSkills) > 0 {
		merged.PreferredSkills = override.PreferredSkills
	}
	if len(override.PreferredLanguages) > 0 {
		merged.PreferredLanguages = override.PreferredLanguages
	}
	if override.RequiredLanguage != "" {
		merged.RequiredLanguage = override.RequiredLanguage
	}
	if len(override.ExcludeAgentIDs) > 0 {
		merged.ExcludeAgentIDs = override.ExcludeAgentIDs
	}
	if len(override.PreferAgentIDs) > 0 {
		merged.PreferAgentIDs = override.PreferAgentIDs
	}
	if override.Priority != 0 {
		merged.Priority = override.Priority
	}
	if override.TeamID != "" {
		merged.TeamID = override.TeamID
	}
	return &merged
}
