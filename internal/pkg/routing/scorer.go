package routing

// ScoringConfig 评分权重与加分项
type ScoringConfig struct {
	SkillWeight      float64 // best_match 技能分权重
	WorkloadWeight   float64 // best_match 负载分权重
	PreferenceWeight float64 // best_match 偏好分权重

	PreferredAgentBonus    float64
	PrimaryLanguageBonus   float64
	SecondaryLanguageBonus float64
}

// DefaultScoringConfig 默认评分参数
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		SkillWeight:            1.0,
		WorkloadWeight:         0.5,
		PreferenceWeight:       1.0,
		PreferredAgentBonus:    25,
		PrimaryLanguageBonus:   10,
		SecondaryLanguageBonus: 5,
	}
}

// Scorer 候选评分器
type Scorer struct {
	hierarchy *HierarchyResolver
	cfg       ScoringConfig
}

// NewScorer 创建评分器
func NewScorer(hierarchy *HierarchyResolver, cfg ScoringConfig) *Scorer {
	return &Scorer{hierarchy: hierarchy, cfg: cfg}
}

// Score 过滤并评分单个坐席。被过滤（不可用、满载、被排除、语言不符、
// 缺少必选技能）时返回 nil, false。
func (s *Scorer) Score(agent *AgentProfile, req *TaskSkillRequirements) (*CandidateScore, bool) {
	if agent.Availability != AvailabilityAvailable {
		return nil, false
	}
	if agent.CurrentTaskCount >= agent.MaxConcurrentTasks {
		return nil, false
	}
	for _, excluded := range req.ExcludeAgentIDs {
		if agent.AgentID == excluded {
			return nil, false
		}
	}
	if req.RequiredLanguage != "" && !hasLanguage(agent, req.RequiredLanguage) {
		return nil, false
	}

	score := &CandidateScore{
		AgentID:            agent.AgentID,
		MatchedSkills:      make([]MatchedSkill, 0),
		CurrentTaskCount:   agent.CurrentTaskCount,
		MaxConcurrentTasks: agent.MaxConcurrentTasks,
	}

	// 必选技能：缺失即整体淘汰（matchType=preferred 的仅忽略该项）
	for _, requirement := range req.RequiredSkills {
		skillScore, ok := s.scoreRequirement(agent, requirement)
		if !ok {
			if requirement.MatchType == MatchTypeRequired {
				return nil, false
			}
			continue
		}
		score.SkillScore += skillScore
		score.MatchedSkills = append(score.MatchedSkills, MatchedSkill{SkillID: requirement.SkillID, Score: skillScore})
	}

	// 偏好技能：命中加分，缺失不淘汰
	for _, requirement := range req.PreferredSkills {
		skillScore, ok := s.scoreRequirement(agent, requirement)
		if !ok {
			continue
		}
		score.SkillScore += skillScore
		score.MatchedSkills = append(score.MatchedSkills, MatchedSkill{SkillID: requirement.SkillID, Score: skillScore})
	}

	score.WorkloadScore = workloadScore(agent)
	score.PreferenceScore = s.preferenceScore(agent, req)
	return score, true
}

// scoreRequirement 计算单项技能得分。
// 得分 = weight × (坐席熟练度序号 / 最低要求序号)：恰好达标得 weight，
// 每高出一级按比例加分，永远不低于 weight。
func (s *Scorer) scoreRequirement(agent *AgentProfile, requirement SkillRequirement) (float64, bool) {
	accepted := s.hierarchy.Resolve(requirement.SkillID)
	minRank := requirement.MinimumProficiency.Rank()
	if minRank == 0 {
		minRank = ProficiencyBasic.Rank()
	}

	best := 0
	for _, skill := range agent.Skills {
		if !skill.IsActive {
			continue
		}
		for _, acceptedID := range accepted {
			if skill.SkillID == acceptedID {
				if rank := skill.Proficiency.Rank(); rank > best {
					best = rank
				}
			}
		}
	}

	if best < minRank {
		return 0, false
	}
	return requirement.Weight * float64(best) / float64(minRank), true
}

// workloadScore 负载分：空闲度 × 100，越闲越高
func workloadScore(agent *AgentProfile) float64 {
	if agent.MaxConcurrentTasks <= 0 {
		return 0
	}
	ratio := float64(agent.CurrentTaskCount) / float64(agent.MaxConcurrentTasks)
	return (1 - ratio) * 100
}

// preferenceScore 偏好分：指定坐席加分 + 偏好语言加分（主语言高于辅语言）
func (s *Scorer) preferenceScore(agent *AgentProfile, req *TaskSkillRequirements) float64 {
	score := 0.0
	for _, preferred := range req.PreferAgentIDs {
		if agent.AgentID == preferred {
			score += s.cfg.PreferredAgentBonus
			break
		}
	}
	for _, lang := range req.PreferredLanguages {
		if containsString(agent.PrimaryLanguages, lang) {
			score += s.cfg.PrimaryLanguageBonus
		} else if containsString(agent.SecondaryLanguages, lang) {
			score += s.cfg.SecondaryLanguageBonus
		}
	}
	return score
}

// MissingRequiredSkills 返回坐席缺失的必选技能（层级解析后），供诊断使用。
// 不考虑可用状态与容量。
func (s *Scorer) MissingRequiredSkills(agent *AgentProfile, req *TaskSkillRequirements) []string {
	missing := make([]string, 0)
	for _, requirement := range req.RequiredSkills {
		if requirement.MatchType != MatchTypeRequired {
			continue
		}
		if _, ok := s.scoreRequirement(agent, requirement); !ok {
			missing = append(missing, requirement.SkillID)
		}
	}
	return missing
}

func hasLanguage(agent *AgentProfile, lang string) bool {
	return containsString(agent.PrimaryLanguages, lang) || containsString(agent.SecondaryLanguages, lang)
}

func containsString(list []string, target string) bool {
	for _, item := range list {
		if item == target {
			return true
		}
	}
	return false
}
