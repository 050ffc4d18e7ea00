package catalog

import (
	"fmt"
	"log"
	"sort"
	"strings"

	"interviewcoach/models"

	"github.com/samber/lo"
)

type userPerformance struct {
	completedProblems []string
	attemptedProblems []string
	strongCategories  []models.ProblemCategory
	weakCategories    []models.ProblemCategory
	averageTime       float64 // seconds
	successRate       float64
}

// Recommend scores candidate problems against the user's attempt history and
// returns the top five, highest confidence first. When targetDifficulty is
// empty it is derived from the overall success rate.
func (s *Service) Recommend(userID string, history []models.AttemptRecord, targetDifficulty models.ProblemDifficulty) []*models.ProblemRecommendation {
	log.Printf("[INFO] Generating recommendations for user %s from %d attempts", userID, len(history))

	perf := s.analyzePerformance(history)

	if targetDifficulty == "" {
		targetDifficulty = targetDifficultyFor(perf.successRate)
	}

	candidates := s.Search(models.ProblemFilter{
		Difficulties: []models.ProblemDifficulty{targetDifficulty},
		ExcludeIDs:   perf.completedProblems,
		Limit:        20,
	})

	recommendations := lo.Map(candidates, func(p *models.Problem, _ int) *models.ProblemRecommendation {
		return &models.ProblemRecommendation{
			Problem:         p,
			ConfidenceScore: recommendationScore(p, perf),
			Reasoning:       recommendationReasoning(p, perf),
			EstimatedTime:   estimateSolveTime(p, perf),
		}
	})

	sort.Slice(recommendations, func(i, j int) bool {
		return recommendations[i].ConfidenceScore > recommendations[j].ConfidenceScore
	})

	if len(recommendations) > 5 {
		recommendations = recommendations[:5]
	}
	return recommendations
}

func (s *Service) analyzePerformance(history []models.AttemptRecord) userPerformance {
	perf := userPerformance{}
	if len(history) == 0 {
		return perf
	}

	type categoryStats struct {
		attempts  int
		successes int
	}
	byCategory := make(map[models.ProblemCategory]*categoryStats)

	successes := 0
	totalTime := 0
	for _, attempt := range history {
		perf.attemptedProblems = append(perf.attemptedProblems, attempt.ProblemID)
		if attempt.SolutionCorrect {
			perf.completedProblems = append(perf.completedProblems, attempt.ProblemID)
			successes++
		}
		totalTime += attempt.TimeTaken

		problem, ok := s.problems[attempt.ProblemID]
		if !ok {
			continue
		}
		stats := byCategory[problem.Category]
		if stats == nil {
			stats = &categoryStats{}
			byCategory[problem.Category] = stats
		}
		stats.attempts++
		if attempt.SolutionCorrect {
			stats.successes++
		}
	}

	perf.successRate = float64(successes) / float64(len(history))
	perf.averageTime = float64(totalTime) / float64(len(history))

	for category, stats := range byCategory {
		rate := float64(stats.successes) / float64(stats.attempts)
		if rate > 0.7 {
			perf.strongCategories = append(perf.strongCategories, category)
		} else if rate < 0.3 {
			perf.weakCategories = append(perf.weakCategories, category)
		}
	}

	return perf
}

func targetDifficultyFor(successRate float64) models.ProblemDifficulty {
	switch {
	case successRate > 0.85:
		return models.DifficultyHard
	case successRate > 0.65:
		return models.DifficultyMedium
	default:
		return models.DifficultyEasy
	}
}

func recommendationScore(problem *models.Problem, perf userPerformance) float64 {
	score := 0.5

	score += problem.Frequency * 0.3

	if lo.Contains(perf.weakCategories, problem.Category) {
		score += 0.2 // practice weak areas
	} else if lo.Contains(perf.strongCategories, problem.Category) {
		score += 0.1 // reinforce strengths
	}

	score += float64(len(problem.CompanyTags)) * 0.05

	if problem.AcceptanceRate > 0.5 {
		score += 0.1 // more approachable problems
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}

func estimateSolveTime(problem *models.Problem, perf userPerformance) int {
	base := 30
	switch problem.Difficulty {
	case models.DifficultyEasy:
		base = 15
	case models.DifficultyMedium:
		base = 30
	case models.DifficultyHard:
		base = 45
	}

	if perf.averageTime > 2400 {
		base = int(float64(base) * 1.3)
	} else if perf.averageTime > 0 && perf.averageTime < 1200 {
		base = int(float64(base) * 0.8)
	}
	return base
}

func recommendationReasoning(problem *models.Problem, perf userPerformance) string {
	var reasons []string

	switch {
	case problem.Difficulty == models.DifficultyEasy && perf.successRate < 0.5:
		reasons = append(reasons, "Good for building confidence with fundamental concepts")
	case problem.Difficulty == models.DifficultyMedium && perf.successRate > 0.6:
		reasons = append(reasons, "Ready to tackle more challenging problems")
	case problem.Difficulty == models.DifficultyHard && perf.successRate > 0.8:
		reasons = append(reasons, "Advanced problem to test mastery")
	}

	if lo.Contains(perf.weakCategories, problem.Category) {
		reasons = append(reasons, fmt.Sprintf("Practice opportunity for %s problems", problem.Category))
	}

	if problem.Frequency > 0.8 {
		reasons = append(reasons, "Frequently asked in technical interviews")
	}

	if len(problem.CompanyTags) > 0 {
		companies := problem.CompanyTags
		if len(companies) > 2 {
			companies = companies[:2]
		}
		reasons = append(reasons, fmt.Sprintf("Popular at %s", strings.Join(companies, ", ")))
	}

	if len(reasons) == 0 {
		return "Well-rounded problem for skill development"
	}
	return strings.Join(reasons, ". ")
}
