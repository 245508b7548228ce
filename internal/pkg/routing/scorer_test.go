package routing

import (
	"testing"
)

func testAgent(agentID string) *AgentProfile {
	return &AgentProfile{
		AgentID:            agentID,
		Availability:       AvailabilityAvailable,
		MaxConcurrentTasks: 3,
		CurrentTaskCount:   0,
		Skills: []AgentSkillInfo{
			{SkillID: "implants", Proficiency: ProficiencyAdvanced, IsActive: true},
		},
		PrimaryLanguages:   []string{"zh"},
		SecondaryLanguages: []string{"en"},
	}
}

func implantsRequirements() *TaskSkillRequirements {
	return &TaskSkillRequirements{
		RequiredSkills: []SkillRequirement{
			{SkillID: "implants", MatchType: MatchTypeRequired, MinimumProficiency: ProficiencyIntermediate, Weight: 50},
		},
	}
}

func newTestScorer() *Scorer {
	return NewScorer(NewHierarchyResolver(0), DefaultScoringConfig())
}

func TestScorer_Filters(t *testing.T) {
	scorer := newTestScorer()

	tests := []struct {
		name   string
		mutate func(*AgentProfile, *TaskSkillRequirements)
	}{
		{
			name: "busy agent excluded",
			mutate: func(a *AgentProfile, r *TaskSkillRequirements) {
				a.Availability = AvailabilityBusy
			},
		},
		{
			name: "away agent excluded",
			mutate: func(a *AgentProfile, r *TaskSkillRequirements) {
				a.Availability = AvailabilityAway
			},
		},
		{
			name: "at-capacity agent excluded",
			mutate: func(a *AgentProfile, r *TaskSkillRequirements) {
				a.CurrentTaskCount = a.MaxConcurrentTasks
			},
		},
		{
			name: "explicitly excluded agent",
			mutate: func(a *AgentProfile, r *TaskSkillRequirements) {
				r.ExcludeAgentIDs = []string{a.AgentID}
			},
		},
		{
			name: "required language missing",
			mutate: func(a *AgentProfile, r *TaskSkillRequirements) {
				r.RequiredLanguage = "fr"
			},
		},
		{
			name: "missing required skill",
			mutate: func(a *AgentProfile, r *TaskSkillRequirements) {
				r.RequiredSkills[0].SkillID = "orthodontics"
			},
		},
		{
			name: "proficiency below minimum",
			mutate: func(a *AgentProfile, r *TaskSkillRequirements) {
				r.RequiredSkills[0].MinimumProficiency = ProficiencyExpert
			},
		},
		{
			name: "inactive skill does not count",
			mutate: func(a *AgentProfile, r *TaskSkillRequirements) {
				a.Skills[0].IsActive = false
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agent := testAgent("agent-1")
			req := implantsRequirements()
			tt.mutate(agent, req)

			if _, ok := scorer.Score(agent, req); ok {
				t.Fatalf("expected agent to be filtered out")
			}
		})
	}
}

func TestScorer_RequiredLanguageSecondaryAccepted(t *testing.T) {
	scorer := newTestScorer()
	agent := testAgent("agent-1")
	req := implantsRequirements()
	req.RequiredLanguage = "en" // 辅语言同样满足硬性语言要求

	if _, ok := scorer.Score(agent, req); !ok {
		t.Fatalf("expected secondary language to satisfy required language")
	}
}

func TestScorer_SkillScoreFloorAndBonus(t *testing.T) {
	scorer := newTestScorer()

	tests := []struct {
		name        string
		proficiency Proficiency
		wantScore   float64
	}{
		{name: "exactly at minimum scores weight", proficiency: ProficiencyIntermediate, wantScore: 50},
		{name: "one rank above gets bonus", proficiency: ProficiencyAdvanced, wantScore: 75},
		{name: "expert gets larger bonus", proficiency: ProficiencyExpert, wantScore: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agent := testAgent("agent-1")
			agent.Skills[0].Proficiency = tt.proficiency

			score, ok := scorer.Score(agent, implantsRequirements())
			if !ok {
				t.Fatalf("expected agent to qualify")
			}
			if score.SkillScore != tt.wantScore {
				t.Fatalf("expected skill score %v, got %v", tt.wantScore, score.SkillScore)
			}
		})
	}
}

func TestScorer_HigherProficiencyStrictlyHigher(t *testing.T) {
	scorer := newTestScorer()

	lower := testAgent("agent-low")
	lower.Skills[0].Proficiency = ProficiencyIntermediate
	higher := testAgent("agent-high")
	higher.Skills[0].Proficiency = ProficiencyAdvanced

	lowScore, _ := scorer.Score(lower, implantsRequirements())
	highScore, _ := scorer.Score(higher, implantsRequirements())
	if highScore.SkillScore <= lowScore.SkillScore {
		t.Fatalf("expected strictly higher skill score: %v vs %v", highScore.SkillScore, lowScore.SkillScore)
	}
}

func TestScorer_PreferredSkillMissingNotFatal(t *testing.T) {
	scorer := newTestScorer()
	agent := testAgent("agent-1")
	req := implantsRequirements()
	req.RequiredSkills = append(req.RequiredSkills, SkillRequirement{
		SkillID: "orthodontics", MatchType: MatchTypePreferred, MinimumProficiency: ProficiencyBasic, Weight: 20,
	})

	score, ok := scorer.Score(agent, req)
	if !ok {
		t.Fatalf("missing preferred skill should not exclude the agent")
	}
	if len(score.MatchedSkills) != 1 {
		t.Fatalf("expected 1 matched skill, got %d", len(score.MatchedSkills))
	}
}

func TestScorer_WorkloadScore(t *testing.T) {
	scorer := newTestScorer()

	idle := testAgent("idle")
	busy := testAgent("busy")
	busy.CurrentTaskCount = 2

	idleScore, _ := scorer.Score(idle, implantsRequirements())
	busyScore, _ := scorer.Score(busy, implantsRequirements())

	if idleScore.WorkloadScore != 100 {
		t.Fatalf("idle agent should score 100, got %v", idleScore.WorkloadScore)
	}
	if busyScore.WorkloadScore >= idleScore.WorkloadScore {
		t.Fatalf("busier agent must score lower")
	}
}

func TestScorer_PreferenceScore(t *testing.T) {
	scorer := newTestScorer()
	agent := testAgent("agent-1")
	req := implantsRequirements()
	req.PreferAgentIDs = []string{"agent-1"}
	req.PreferredLanguages = []string{"zh", "en", "fr"}

	score, ok := scorer.Score(agent, req)
	if !ok {
		t.Fatalf("expected agent to qualify")
	}
	// 25（指定坐席） + 10（主语言 zh） + 5（辅语言 en），fr 未命中
	if score.PreferenceScore != 40 {
		t.Fatalf("expected preference score 40, got %v", score.PreferenceScore)
	}
}

func TestScorer_HierarchySatisfiesRequirement(t *testing.T) {
	hierarchy := NewHierarchyResolver(0)
	hierarchy.Register("implants", []string{"oral-surgery"})
	scorer := NewScorer(hierarchy, DefaultScoringConfig())

	agent := testAgent("agent-1")
	agent.Skills = []AgentSkillInfo{
		{SkillID: "oral-surgery", Proficiency: ProficiencyAdvanced, IsActive: true},
	}

	if _, ok := scorer.Score(agent, implantsRequirements()); !ok {
		t.Fatalf("agent holding implied skill should satisfy the requirement")
	}
}

func TestScorer_MissingRequiredSkills(t *testing.T) {
	scorer := newTestScorer()
	agent := testAgent("agent-1")
	agent.Availability = AvailabilityAway // 诊断不看可用状态

	req := implantsRequirements()
	req.RequiredSkills = append(req.RequiredSkills, SkillRequirement{
		SkillID: "orthodontics", MatchType: MatchTypeRequired, MinimumProficiency: ProficiencyBasic, Weight: 10,
	})

	missing := scorer.MissingRequiredSkills(agent, req)
	if len(missing) != 1 || missing[0] != "orthodontics" {
		t.Fatalf("expected [orthodontics], got %v", missing)
	}
}
