package routing

import (
	"sync"
)

// defaultMaxDepth 层级解析默认最大深度
const defaultMaxDepth = 8

// HierarchyResolver 技能层级注册表。
// Register(A, [B]) 之后，持有 B 的坐席即可满足对 A 的要求。
type HierarchyResolver struct {
	mu       sync.RWMutex
	implied  map[string][]string // skillID -> 可替代它的技能
	maxDepth int
}

// NewHierarchyResolver 创建层级注册表
func NewHierarchyResolver(maxDepth int) *HierarchyResolver {
	if maxDepth <= 0 {
		maxDepth = defaultMaxDepth
	}
	return &HierarchyResolver{
		implied:  make(map[string][]string),
		maxDepth: maxDepth,
	}
}

// Register 注册层级关系，重复注册覆盖旧值
func (h *HierarchyResolver) Register(skillID string, impliedSkillIDs []string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ids := make([]string, len(impliedSkillIDs))
	copy(ids, impliedSkillIDs)
	h.implied[skillID] = ids
}

// Resolve 返回能满足 skillID 要求的技能集合（含自身及传递闭包）。
// 深度受 maxDepth 限制，visited 集合防环。
func (h *HierarchyResolver) Resolve(skillID string) []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	visited := map[string]bool{skillID: true}
	result := []string{skillID}
	frontier := []string{skillID}

	for depth := 0; depth < h.maxDepth && len(frontier) > 0; depth++ {
		next := make([]string, 0)
		for _, id := range frontier {
			for _, implied := range h.implied[id] {
				if visited[implied] {
					continue
				}
				visited[implied] = true
				result = append(result, implied)
				next = append(next, implied)
			}
		}
		frontier = next
	}

	return result
}

// Reset 清空所有层级关系
func (h *HierarchyResolver) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.implied = make(map[string][]string)
}
