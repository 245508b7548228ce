package routing

import (
	"math"
	"sort"
	"time"

	"k8s.io/klog/v2"
)

// ProcessQueueForAgent 坐席恢复可用或释放容量时调用：按优先级扫描该坐席
// 团队的队列，跳过（原位保留）不匹配的任务，派发匹配任务直到剩余容量耗尽。
// 容量按 floor(maxConcurrentTasks × 保留比例) − currentTaskCount 计算，
// 不把坐席排满。坐席不可用时返回空结果。
func (e *Engine) ProcessQueueForAgent(agentID string) ([]*RoutingDecision, error) {
	agent, err := e.agents.GetAgentByID(agentID)
	if err != nil {
		return nil, err
	}

	decisions := make([]*RoutingDecision, 0)
	if agent.Availability != AvailabilityAvailable {
		return decisions, nil
	}

	capacity := int(math.Floor(float64(agent.MaxConcurrentTasks)*e.reserveRatio)) - agent.CurrentTaskCount
	if capacity <= 0 {
		return decisions, nil
	}

	// 本地副本跟踪派发进度，引擎不回写目录
	working := *agent
	key := queueKey(agent.TeamID)

	for capacity > 0 {
		entry := e.queue.TakeMatching(key, func(candidate *QueueEntry) bool {
			_, ok := e.scorer.Score(&working, candidate.Requirements)
			return ok
		})
		if entry == nil {
			break
		}

		score, _ := e.scorer.Score(&working, entry.Requirements)
		decisions = append(decisions, &RoutingDecision{
			Outcome:         OutcomeRouted,
			TaskID:          entry.TaskID,
			SelectedAgentID: agent.AgentID,
			CandidateAgents: []*CandidateScore{score},
			QueueID:         entry.QueueID,
			WaitTimeMs:      time.Since(entry.EnqueuedAt).Milliseconds(),
		})

		working.CurrentTaskCount++
		capacity--
	}

	if len(decisions) > 0 {
		klog.V(6).Infof("[engine.ProcessQueueForAgent] 坐席 %s 派发了 %d 个排队任务", agentID, len(decisions))
	}
	return decisions, nil
}

// RebalanceQueues 对所有可用坐席依次执行队列分发（按 agentId 升序，
// 顺序执行，队列互斥锁保证同一任务不会被派给两个坐席），返回全部派发结果。
func (e *Engine) RebalanceQueues() ([]*RoutingDecision, error) {
	agents, err := e.agents.GetAvailableAgents("")
	if err != nil {
		return nil, err
	}

	sort.Slice(agents, func(i, j int) bool {
		return agents[i].AgentID < agents[j].AgentID
	})

	all := make([]*RoutingDecision, 0)
	for _, agent := range agents {
		decisions, err := e.ProcessQueueForAgent(agent.AgentID)
		if err != nil {
			return nil, err
		}
		all = append(all, decisions...)
	}
	return all, nil
}
