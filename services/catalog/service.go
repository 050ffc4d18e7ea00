package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"interviewcoach/models"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
)

var ErrProblemNotFound = errors.New("problem not found")

// Service is the in-memory problem catalog with secondary indexes by
// category, difficulty and company tag. Indexes are rebuilt as a whole on
// every mutation so callers never observe a partially indexed catalog.
type Service struct {
	problems map[string]*models.Problem

	categoryIndex   map[models.ProblemCategory][]string
	difficultyIndex map[models.ProblemDifficulty][]string
	companyIndex    map[string][]string
}

func NewService() *Service {
	s := &Service{
		problems:        make(map[string]*models.Problem),
		categoryIndex:   make(map[models.ProblemCategory][]string),
		difficultyIndex: make(map[models.ProblemDifficulty][]string),
		companyIndex:    make(map[string][]string),
	}

	for _, p := range defaultProblems() {
		s.problems[p.ID] = p
	}
	s.buildIndexes()

	log.Printf("[INFO] Problem catalog initialized with %d problems", len(s.problems))
	return s
}

// LoadFromDirectory loads one problem per JSON file, replacing any problem
// that shares an id with a loaded one. Unreadable files are skipped.
func (s *Service) LoadFromDirectory(dir string) error {
	entries, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return fmt.Errorf("failed to list problem files: %w", err)
	}

	loaded := 0
	for _, path := range entries {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("[ERROR] Failed to read problem file %s: %v", path, err)
			continue
		}

		var problem models.Problem
		if err := json.Unmarshal(data, &problem); err != nil {
			log.Printf("[ERROR] Failed to parse problem file %s: %v", path, err)
			continue
		}

		if problem.ID == "" {
			log.Printf("[ERROR] Problem file %s has no id, skipping", path)
			continue
		}

		s.problems[problem.ID] = &problem
		loaded++
	}

	s.buildIndexes()
	log.Printf("[INFO] Loaded %d problems from %s", loaded, dir)
	return nil
}

func (s *Service) Get(id string) (*models.Problem, error) {
	problem, ok := s.problems[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProblemNotFound, id)
	}
	return problem, nil
}

// Search intersects candidate sets per filter dimension, removes exclusions,
// sorts by frequency descending with difficulty ascending as the tie-break,
// and truncates to the filter limit when one is set.
func (s *Service) Search(filter models.ProblemFilter) []*models.Problem {
	candidates := make(map[string]struct{}, len(s.problems))
	for id := range s.problems {
		candidates[id] = struct{}{}
	}

	if len(filter.Difficulties) > 0 {
		ids := make(map[string]struct{})
		for _, difficulty := range filter.Difficulties {
			for _, id := range s.difficultyIndex[difficulty] {
				ids[id] = struct{}{}
			}
		}
		candidates = intersect(candidates, ids)
	}

	if len(filter.Categories) > 0 {
		ids := make(map[string]struct{})
		for _, category := range filter.Categories {
			for _, id := range s.categoryIndex[category] {
				ids[id] = struct{}{}
			}
		}
		candidates = intersect(candidates, ids)
	}

	if len(filter.CompanyTags) > 0 {
		ids := make(map[string]struct{})
		for _, company := range filter.CompanyTags {
			for _, id := range s.companyIndex[strings.ToLower(company)] {
				ids[id] = struct{}{}
			}
		}
		candidates = intersect(candidates, ids)
	}

	if filter.MinFrequency > 0 {
		for id := range candidates {
			if s.problems[id].Frequency < filter.MinFrequency {
				delete(candidates, id)
			}
		}
	}

	for _, id := range filter.ExcludeIDs {
		delete(candidates, id)
	}

	if len(filter.Tags) > 0 {
		for id := range candidates {
			if len(lo.Intersect(s.problems[id].Tags, filter.Tags)) == 0 {
				delete(candidates, id)
			}
		}
	}

	results := lo.MapToSlice(candidates, func(id string, _ struct{}) *models.Problem {
		return s.problems[id]
	})

	sort.Slice(results, func(i, j int) bool {
		if results[i].Frequency != results[j].Frequency {
			return results[i].Frequency > results[j].Frequency
		}
		return results[i].Difficulty.Rank() < results[j].Difficulty.Rank()
	})

	if filter.Limit > 0 && len(results) > filter.Limit {
		results = results[:filter.Limit]
	}

	return results
}

// SearchText matches a free-text query against problem titles, descriptions
// and tags with typo tolerance.
func (s *Service) SearchText(query string, limit int) []*models.Problem {
	terms := strings.Fields(strings.ToLower(strings.TrimSpace(query)))
	if len(terms) == 0 {
		return nil
	}

	matches := lo.Filter(lo.Values(s.problems), func(p *models.Problem, _ int) bool {
		return problemMatchesTerms(p, terms)
	})

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Frequency != matches[j].Frequency {
			return matches[i].Frequency > matches[j].Frequency
		}
		return matches[i].Difficulty.Rank() < matches[j].Difficulty.Rank()
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

func problemMatchesTerms(p *models.Problem, terms []string) bool {
	haystack := strings.ToLower(p.Title + " " + p.Description + " " + strings.Join(p.Tags, " "))
	words := strings.FieldsFunc(haystack, func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	})

	for _, term := range terms {
		if strings.Contains(haystack, term) {
			return true
		}
		for _, word := range words {
			if rank := fuzzy.RankMatch(term, word); rank >= 0 && rank <= 2 {
				return true
			}
		}
	}
	return false
}

func (s *Service) Add(problem *models.Problem) error {
	if problem == nil || problem.ID == "" {
		return fmt.Errorf("problem must have an id")
	}
	if problem.Title == "" {
		return fmt.Errorf("problem must have a title")
	}

	s.problems[problem.ID] = problem
	s.buildIndexes()

	log.Printf("[INFO] Added problem: %s", problem.Title)
	return nil
}

func (s *Service) Update(id string, req *models.UpdateProblemRequest) (*models.Problem, error) {
	problem, ok := s.problems[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProblemNotFound, id)
	}

	if req.Title != nil {
		problem.Title = *req.Title
	}
	if req.Description != nil {
		problem.Description = *req.Description
	}
	if req.Difficulty != nil {
		problem.Difficulty = *req.Difficulty
	}
	if req.Category != nil {
		problem.Category = *req.Category
	}
	if req.Frequency != nil {
		problem.Frequency = *req.Frequency
	}
	if req.AcceptanceRate != nil {
		problem.AcceptanceRate = *req.AcceptanceRate
	}
	if req.Hints != nil {
		problem.Hints = req.Hints
	}
	if req.CompanyTags != nil {
		problem.CompanyTags = req.CompanyTags
	}
	if req.Tags != nil {
		problem.Tags = req.Tags
	}

	s.buildIndexes()

	log.Printf("[INFO] Updated problem: %s", id)
	return problem, nil
}

func (s *Service) Statistics() *models.CatalogStatistics {
	stats := &models.CatalogStatistics{
		TotalProblems:          len(s.problems),
		DifficultyDistribution: make(map[models.ProblemDifficulty]int),
		CategoryDistribution:   make(map[models.ProblemCategory]int),
		CompaniesCovered:       len(s.companyIndex),
	}

	for difficulty, ids := range s.difficultyIndex {
		stats.DifficultyDistribution[difficulty] = len(ids)
	}
	for category, ids := range s.categoryIndex {
		stats.CategoryDistribution[category] = len(ids)
	}

	if len(s.problems) > 0 {
		total := lo.SumBy(lo.Values(s.problems), func(p *models.Problem) float64 {
			return p.Frequency
		})
		stats.AverageFrequency = total / float64(len(s.problems))
	}

	return stats
}

// All returns every problem in the catalog, frequency-ordered.
func (s *Service) All() []*models.Problem {
	return s.Search(models.ProblemFilter{})
}

func (s *Service) buildIndexes() {
	s.categoryIndex = make(map[models.ProblemCategory][]string)
	s.difficultyIndex = make(map[models.ProblemDifficulty][]string)
	s.companyIndex = make(map[string][]string)

	for id, problem := range s.problems {
		s.categoryIndex[problem.Category] = append(s.categoryIndex[problem.Category], id)
		for _, sub := range problem.Subcategories {
			s.categoryIndex[sub] = append(s.categoryIndex[sub], id)
		}

		s.difficultyIndex[problem.Difficulty] = append(s.difficultyIndex[problem.Difficulty], id)

		for _, company := range problem.CompanyTags {
			key := strings.ToLower(company)
			s.companyIndex[key] = append(s.companyIndex[key], id)
		}
	}
}

func intersect(a, b map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{})
	for id := range a {
		if _, ok := b[id]; ok {
			out[id] = struct{}{}
		}
	}
	return out
}
