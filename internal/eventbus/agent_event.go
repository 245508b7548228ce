package eventbus

import "context"

type AgentEventType string

const (
	// AgentEventAvailable 坐席状态变为可用
	AgentEventAvailable AgentEventType = "AgentAvailable"
	// AgentEventCapacityFreed 坐席完成任务释放了容量
	AgentEventCapacityFreed AgentEventType = "AgentCapacityFreed"
)

type AgentEvent struct {
	Type    AgentEventType
	AgentID string
	TeamID  string
}

type AgentEventHandler = func(ctx context.Context, event AgentEvent) error
