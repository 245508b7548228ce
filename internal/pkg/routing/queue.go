package routing

import (
	"container/heap"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// QueueEntry 排队中的任务
type QueueEntry struct {
	QueueID      string                 `json:"queue_id"`
	TaskID       string                 `json:"task_id"`
	Requirements *TaskSkillRequirements `json:"requirements"`
	Priority     int                    `json:"priority"`
	EnqueuedAt   time.Time              `json:"enqueued_at"`

	seq   uint64 // 同优先级按入队顺序出队
	index int    // 堆内下标
}

// entryHeap 优先级大顶堆，同优先级 FIFO
type entryHeap []*QueueEntry

func (h entryHeap) Len() int { return len(h) }

func (h entryHeap) Less(i, j int) bool {
	if h[i].Priority != h[j].Priority {
		return h[i].Priority > h[j].Priority
	}
	return h[i].seq < h[j].seq
}

func (h entryHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *entryHeap) Push(x any) {
	entry := x.(*QueueEntry)
	entry.index = len(*h)
	*h = append(*h, entry)
}

func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	entry := old[n-1]
	old[n-1] = nil
	entry.index = -1
	*h = old[:n-1]
	return entry
}

// Queue 按团队分段的路由等待队列。所有操作由单个互斥锁串行化，
// 两次调用不会取走同一个任务。
type Queue struct {
	mu               sync.Mutex
	queues           map[string]*entryHeap // queueKey(teamID) -> 堆
	byTask           map[string]string     // taskID -> queueKey
	seq              uint64
	avgHandleSeconds int
}

// NewQueue 创建队列，avgHandleSeconds 用于等待时间估算
func NewQueue(avgHandleSeconds int) *Queue {
	if avgHandleSeconds <= 0 {
		avgHandleSeconds = 120
	}
	return &Queue{
		queues:           make(map[string]*entryHeap),
		byTask:           make(map[string]string),
		avgHandleSeconds: avgHandleSeconds,
	}
}

func queueKey(teamID string) string {
	if teamID == "" {
		return defaultTeamKey
	}
	return teamID
}

// Enqueue 入队，返回队列条目ID与当前位置（1 起）
func (q *Queue) Enqueue(taskID string, req *TaskSkillRequirements, priority int) (string, int) {
	q.mu.Lock()
	defer q.mu.Unlock()

	key := queueKey(teamIDOf(req))
	h, ok := q.queues[key]
	if !ok {
		h = &entryHeap{}
		q.queues[key] = h
	}

	q.seq++
	entry := &QueueEntry{
		QueueID:      uuid.NewString(),
		TaskID:       taskID,
		Requirements: req,
		Priority:     priority,
		EnqueuedAt:   time.Now(),
		seq:          q.seq,
	}
	heap.Push(h, entry)
	q.byTask[taskID] = key

	return entry.QueueID, q.positionLocked(h, entry)
}

// Dequeue 取走并返回最高优先级的任务ID，队列为空返回空串
func (q *Queue) Dequeue(key string) string {
	q.mu.Lock()
	defer q.mu.Unlock()

	h, ok := q.queues[queueKey(key)]
	if !ok || h.Len() == 0 {
		return ""
	}
	entry := heap.Pop(h).(*QueueEntry)
	delete(q.byTask, entry.TaskID)
	return entry.TaskID
}

// GetPosition 任务在其队列中的位置（1 起），不在队列返回 0
func (q *Queue) GetPosition(taskID string) int {
	q.mu.Lock()
	defer q.mu.Unlock()

	key, ok := q.byTask[taskID]
	if !ok {
		return 0
	}
	h := q.queues[key]
	for _, entry := range *h {
		if entry.TaskID == taskID {
			return q.positionLocked(h, entry)
		}
	}
	return 0
}

// GetEstimatedWaitTime 队列预估等待秒数 = 平均处理时长 × 队列长度
func (q *Queue) GetEstimatedWaitTime(key string) int {
	q.mu.Lock()
	defer q.mu.Unlock()

	h, ok := q.queues[queueKey(key)]
	if !ok {
		return 0
	}
	return h.Len() * q.avgHandleSeconds
}

// GetQueuedTasks 返回队列内容快照，优先级降序，同优先级按入队顺序
func (q *Queue) GetQueuedTasks(key string) []*QueueEntry {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.snapshotLocked(queueKey(key))
}

// RemoveTask 按任务ID从其所在队列移除
func (q *Queue) RemoveTask(taskID string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.removeLocked(taskID)
}

// GetQueueIds 所有非空队列的键
func (q *Queue) GetQueueIds() []string {
	q.mu.Lock()
	defer q.mu.Unlock()

	keys := make([]string, 0, len(q.queues))
	for key, h := range q.queues {
		if h.Len() > 0 {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

// Len 指定队列长度
func (q *Queue) Len(key string) int {
	q.mu.Lock()
	defer q.mu.Unlock()

	h, ok := q.queues[queueKey(key)]
	if !ok {
		return 0
	}
	return h.Len()
}

// TakeMatching 按优先级顺序扫描队列，取走第一个令 match 返回 true 的任务，
// 其余条目原位保留。整个扫描在锁内完成，供队列分发器使用。
func (q *Queue) TakeMatching(key string, match func(*QueueEntry) bool) *QueueEntry {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, entry := range q.snapshotLocked(queueKey(key)) {
		if match(entry) {
			q.removeLocked(entry.TaskID)
			return entry
		}
	}
	return nil
}

func (q *Queue) snapshotLocked(key string) []*QueueEntry {
	h, ok := q.queues[key]
	if !ok {
		return []*QueueEntry{}
	}
	entries := make([]*QueueEntry, len(*h))
	copy(entries, *h)
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Priority != entries[j].Priority {
			return entries[i].Priority > entries[j].Priority
		}
		return entries[i].seq < entries[j].seq
	})
	return entries
}

func (q *Queue) removeLocked(taskID string) error {
	key, ok := q.byTask[taskID]
	if !ok {
		return ErrTaskNotQueued
	}
	h := q.queues[key]
	for _, entry := range *h {
		if entry.TaskID == taskID {
			heap.Remove(h, entry.index)
			delete(q.byTask, taskID)
			return nil
		}
	}
	return ErrTaskNotQueued
}

// positionLocked 位置 = 排在它前面的条目数 + 1
func (q *Queue) positionLocked(h *entryHeap, target *QueueEntry) int {
	ahead := 0
	for _, entry := range *h {
		if entry == target {
			continue
		}
		if entry.Priority > target.Priority ||
			(entry.Priority == target.Priority && entry.seq < target.seq) {
			ahead++
		}
	}
	return ahead + 1
}

func teamIDOf(req *TaskSkillRequirements) string {
	if req == nil {
		return ""
	}
	return req.TeamID
}
