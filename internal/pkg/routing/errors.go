package routing

import "errors"

var (
	// ErrAgentNotFound 坐席不存在
	ErrAgentNotFound = errors.New("agent not found")

	// ErrUnknownStrategy 未知策略名，构造时报错
	ErrUnknownStrategy = errors.New("unknown routing strategy")

	// ErrUnknownFallback 未知兜底行为
	ErrUnknownFallback = errors.New("unknown fallback behavior")

	// ErrTaskNotQueued 任务不在任何队列中
	ErrTaskNotQueued = errors.New("task not queued")
)
