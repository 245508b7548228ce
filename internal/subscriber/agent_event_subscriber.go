package subscriber

import (
	"context"

	"github.com/careroute/backend/internal/eventbus"
	"k8s.io/klog/v2"
)

// AgentEventSubscriber 监听坐席可用/容量事件，触发该坐席的队列分发
type AgentEventSubscriber struct {
	routing queueProcessor
}

type queueProcessor interface {
	ProcessQueueAsync(agentID string)
}

func NewAgentEventSubscriber(routing queueProcessor) *AgentEventSubscriber {
	return &AgentEventSubscriber{routing: routing}
}

func (s *AgentEventSubscriber) Register(bus *eventbus.Bus) {
	if bus == nil {
		return
	}
	bus.Subscribe(eventbus.AgentEventAvailable, s.handleAgentEvent)
	bus.Subscribe(eventbus.AgentEventCapacityFreed, s.handleAgentEvent)
}

func (s *AgentEventSubscriber) handleAgentEvent(ctx context.Context, event eventbus.AgentEvent) error {
	if event.AgentID == "" {
		return nil
	}
	klog.V(6).Infof("[subscriber.handleAgentEvent] 收到事件 %s, 坐席 %s", event.Type, event.AgentID)
	s.routing.ProcessQueueAsync(event.AgentID)
	return nil
}
