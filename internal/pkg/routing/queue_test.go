package routing

import (
	"fmt"
	"testing"
)

func TestQueue_EnqueueDequeueRoundTrip(t *testing.T) {
	q := NewQueue(120)

	queueID, position := q.Enqueue("task-1", &TaskSkillRequirements{}, 50)
	if queueID == "" {
		t.Fatalf("expected queue id")
	}
	if position != 1 {
		t.Fatalf("expected position 1, got %d", position)
	}

	if got := q.Dequeue(""); got != "task-1" {
		t.Fatalf("expected task-1, got %q", got)
	}
	if got := q.Dequeue(""); got != "" {
		t.Fatalf("expected empty queue, got %q", got)
	}
}

func TestQueue_PriorityOrder(t *testing.T) {
	q := NewQueue(120)

	q.Enqueue("low", &TaskSkillRequirements{}, 25)
	q.Enqueue("high", &TaskSkillRequirements{}, 75)
	q.Enqueue("medium", &TaskSkillRequirements{}, 50)

	for _, want := range []string{"high", "medium", "low"} {
		if got := q.Dequeue(""); got != want {
			t.Fatalf("expected %s, got %s", want, got)
		}
	}
}

func TestQueue_FIFOWithinSamePriority(t *testing.T) {
	q := NewQueue(120)

	for i := 0; i < 5; i++ {
		q.Enqueue(fmt.Sprintf("task-%d", i), &TaskSkillRequirements{}, 50)
	}
	for i := 0; i < 5; i++ {
		want := fmt.Sprintf("task-%d", i)
		if got := q.Dequeue(""); got != want {
			t.Fatalf("expected %s, got %s", want, got)
		}
	}
}

func TestQueue_GetPosition(t *testing.T) {
	q := NewQueue(120)

	q.Enqueue("low", &TaskSkillRequirements{}, 10)
	q.Enqueue("high", &TaskSkillRequirements{}, 90)

	if got := q.GetPosition("high"); got != 1 {
		t.Fatalf("expected high at position 1, got %d", got)
	}
	if got := q.GetPosition("low"); got != 2 {
		t.Fatalf("expected low at position 2, got %d", got)
	}
	if got := q.GetPosition("missing"); got != 0 {
		t.Fatalf("expected 0 for missing task, got %d", got)
	}
}

func TestQueue_EstimatedWaitTime(t *testing.T) {
	q := NewQueue(120)

	if got := q.GetEstimatedWaitTime(""); got != 0 {
		t.Fatalf("empty queue should estimate 0, got %d", got)
	}

	q.Enqueue("a", &TaskSkillRequirements{}, 10)
	q.Enqueue("b", &TaskSkillRequirements{}, 10)
	if got := q.GetEstimatedWaitTime(""); got != 240 {
		t.Fatalf("expected 240 seconds, got %d", got)
	}
}

func TestQueue_TeamSegmentation(t *testing.T) {
	q := NewQueue(120)

	q.Enqueue("default-task", &TaskSkillRequirements{}, 10)
	q.Enqueue("team-task", &TaskSkillRequirements{TeamID: "team-1"}, 10)

	keys := q.GetQueueIds()
	if len(keys) != 2 || keys[0] != "default" || keys[1] != "team-1" {
		t.Fatalf("unexpected queue keys: %v", keys)
	}

	if got := q.Dequeue("team-1"); got != "team-task" {
		t.Fatalf("expected team-task, got %s", got)
	}
	// 空队列不再出现在键列表里
	keys = q.GetQueueIds()
	if len(keys) != 1 || keys[0] != "default" {
		t.Fatalf("expected only default, got %v", keys)
	}
}

func TestQueue_GetQueuedTasksSorted(t *testing.T) {
	q := NewQueue(120)

	q.Enqueue("b", &TaskSkillRequirements{}, 50)
	q.Enqueue("a", &TaskSkillRequirements{}, 80)
	q.Enqueue("c", &TaskSkillRequirements{}, 50)

	entries := q.GetQueuedTasks("")
	got := []string{entries[0].TaskID, entries[1].TaskID, entries[2].TaskID}
	want := []string{"a", "b", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestQueue_RemoveTask(t *testing.T) {
	q := NewQueue(120)

	q.Enqueue("a", &TaskSkillRequirements{}, 10)
	q.Enqueue("b", &TaskSkillRequirements{TeamID: "team-1"}, 10)

	if err := q.RemoveTask("b"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := q.RemoveTask("b"); err != ErrTaskNotQueued {
		t.Fatalf("expected ErrTaskNotQueued, got %v", err)
	}
	if got := q.Len("team-1"); got != 0 {
		t.Fatalf("expected empty team queue, got %d", got)
	}
}

func TestQueue_TakeMatchingSkipsInPlace(t *testing.T) {
	q := NewQueue(120)

	q.Enqueue("skip-me", &TaskSkillRequirements{}, 90)
	q.Enqueue("take-me", &TaskSkillRequirements{}, 50)

	entry := q.TakeMatching("", func(e *QueueEntry) bool {
		return e.TaskID == "take-me"
	})
	if entry == nil || entry.TaskID != "take-me" {
		t.Fatalf("expected take-me, got %v", entry)
	}

	// 被跳过的任务原位保留
	if got := q.GetPosition("skip-me"); got != 1 {
		t.Fatalf("skipped task should remain at position 1, got %d", got)
	}

	if entry := q.TakeMatching("", func(e *QueueEntry) bool { return false }); entry != nil {
		t.Fatalf("expected nil when nothing matches")
	}
}
