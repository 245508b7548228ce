package routing

import (
	"errors"
	"testing"
)

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Strategy
		wantErr bool
	}{
		{name: "empty defaults to best_match", input: "", want: StrategyBestMatch},
		{name: "best_match", input: "best_match", want: StrategyBestMatch},
		{name: "least_occupied", input: "least_occupied", want: StrategyLeastOccupied},
		{name: "skills_first", input: "skills_first", want: StrategySkillsFirst},
		{name: "round_robin", input: "round_robin", want: StrategyRoundRobin},
		{name: "unknown strategy fails", input: "random", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStrategy(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownStrategy) {
					t.Fatalf("expected ErrUnknownStrategy, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func candidate(agentID string, skill, workload, preference float64, current, max int) *CandidateScore {
	return &CandidateScore{
		AgentID:            agentID,
		SkillScore:         skill,
		WorkloadScore:      workload,
		PreferenceScore:    preference,
		CurrentTaskCount:   current,
		MaxConcurrentTasks: max,
	}
}

func TestSelector_BestMatch(t *testing.T) {
	selector := NewSelector(DefaultScoringConfig())

	selected := selector.Select(StrategyBestMatch, []*CandidateScore{
		candidate("a", 50, 100, 0, 0, 3),
		candidate("b", 100, 50, 0, 1, 3),
	}, "")
	// a: 50 + 50 = 100, b: 100 + 25 = 125
	if selected.AgentID != "b" {
		t.Fatalf("expected b, got %s", selected.AgentID)
	}
	if selected.TotalScore != 125 {
		t.Fatalf("expected total 125, got %v", selected.TotalScore)
	}
}

func TestSelector_BestMatchTieBreakByTaskCount(t *testing.T) {
	selector := NewSelector(DefaultScoringConfig())

	selected := selector.Select(StrategyBestMatch, []*CandidateScore{
		candidate("a", 50, 50, 0, 2, 5),
		candidate("b", 50, 50, 0, 1, 5),
	}, "")
	if selected.AgentID != "b" {
		t.Fatalf("tie should go to lower task count, got %s", selected.AgentID)
	}
}

func TestSelector_LeastOccupied(t *testing.T) {
	selector := NewSelector(DefaultScoringConfig())

	selected := selector.Select(StrategyLeastOccupied, []*CandidateScore{
		candidate("a", 200, 40, 0, 3, 5),
		candidate("b", 50, 80, 0, 1, 5),
	}, "")
	if selected.AgentID != "b" {
		t.Fatalf("expected least occupied b, got %s", selected.AgentID)
	}
}

func TestSelector_LeastOccupiedTieBreakBySkill(t *testing.T) {
	selector := NewSelector(DefaultScoringConfig())

	selected := selector.Select(StrategyLeastOccupied, []*CandidateScore{
		candidate("a", 50, 80, 0, 1, 5),
		candidate("b", 90, 80, 0, 1, 5),
	}, "")
	if selected.AgentID != "b" {
		t.Fatalf("workload tie should go to higher skill, got %s", selected.AgentID)
	}
}

func TestSelector_SkillsFirst(t *testing.T) {
	selector := NewSelector(DefaultScoringConfig())

	selected := selector.Select(StrategySkillsFirst, []*CandidateScore{
		candidate("a", 90, 10, 0, 4, 5),
		candidate("b", 60, 100, 50, 0, 5),
	}, "")
	if selected.AgentID != "a" {
		t.Fatalf("skills_first should ignore workload, got %s", selected.AgentID)
	}
}

func TestSelector_RoundRobinFairness(t *testing.T) {
	selector := NewSelector(DefaultScoringConfig())

	agentIDs := []string{"a", "b", "c"}
	counts := make(map[string]int)
	const rounds = 4

	for i := 0; i < len(agentIDs)*rounds; i++ {
		candidates := []*CandidateScore{
			candidate("c", 50, 50, 0, 0, 3),
			candidate("a", 50, 50, 0, 0, 3),
			candidate("b", 50, 50, 0, 0, 3),
		}
		selected := selector.Select(StrategyRoundRobin, candidates, "team-1")
		counts[selected.AgentID]++
	}

	for _, id := range agentIDs {
		if counts[id] != rounds {
			t.Fatalf("expected %d picks for %s, got %d", rounds, id, counts[id])
		}
	}
}

func TestSelector_RoundRobinResetRestartsSequence(t *testing.T) {
	selector := NewSelector(DefaultScoringConfig())
	candidates := func() []*CandidateScore {
		return []*CandidateScore{
			candidate("b", 0, 0, 0, 0, 3),
			candidate("a", 0, 0, 0, 0, 3),
		}
	}

	first := selector.Select(StrategyRoundRobin, candidates(), "").AgentID
	selector.Select(StrategyRoundRobin, candidates(), "")

	selector.ResetRoundRobin()
	restarted := selector.Select(StrategyRoundRobin, candidates(), "").AgentID
	if restarted != first {
		t.Fatalf("reset should restart from %s, got %s", first, restarted)
	}
}

func TestSelector_RoundRobinSeparateTeamCursors(t *testing.T) {
	selector := NewSelector(DefaultScoringConfig())
	candidates := func() []*CandidateScore {
		return []*CandidateScore{
			candidate("a", 0, 0, 0, 0, 3),
			candidate("b", 0, 0, 0, 0, 3),
		}
	}

	first := selector.Select(StrategyRoundRobin, candidates(), "team-1").AgentID
	other := selector.Select(StrategyRoundRobin, candidates(), "team-2").AgentID
	if first != other {
		t.Fatalf("separate teams should start from the same cursor: %s vs %s", first, other)
	}
}

func TestSelector_EmptyCandidates(t *testing.T) {
	selector := NewSelector(DefaultScoringConfig())
	if selected := selector.Select(StrategyBestMatch, nil, ""); selected != nil {
		t.Fatalf("expected nil for empty candidates")
	}
}
