package catalog

import (
	"errors"
	"testing"

	"interviewcoach/models"
)

func TestGet(t *testing.T) {
	service := NewService()

	problem, err := service.Get("two-sum")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if problem.Title != "Two Sum" {
		t.Errorf("Title = %q, want Two Sum", problem.Title)
	}

	if _, err := service.Get("missing"); !errors.Is(err, ErrProblemNotFound) {
		t.Errorf("error = %v, want ErrProblemNotFound", err)
	}
}

func TestSearchByDifficulty(t *testing.T) {
	service := NewService()

	results := service.Search(models.ProblemFilter{
		Difficulties: []models.ProblemDifficulty{models.DifficultyEasy},
	})

	if len(results) != 2 {
		t.Fatalf("results count = %d, want 2", len(results))
	}
	// Frequency descending: two-sum (0.95) before valid-parentheses (0.88).
	if results[0].ID != "two-sum" || results[1].ID != "valid-parentheses" {
		t.Errorf("order = [%s %s], want [two-sum valid-parentheses]", results[0].ID, results[1].ID)
	}
	for _, p := range results {
		if p.Difficulty != models.DifficultyEasy {
			t.Errorf("problem %s has difficulty %s, want easy", p.ID, p.Difficulty)
		}
	}
}

func TestSearchIntersectsDimensions(t *testing.T) {
	service := NewService()

	results := service.Search(models.ProblemFilter{
		Difficulties: []models.ProblemDifficulty{models.DifficultyMedium},
		CompanyTags:  []string{"Google"},
	})

	if len(results) != 1 || results[0].ID != "longest-substring-without-repeating" {
		t.Fatalf("results = %v, want just longest-substring-without-repeating", ids(results))
	}
}

func TestSearchExcludesAndLimits(t *testing.T) {
	service := NewService()

	results := service.Search(models.ProblemFilter{
		ExcludeIDs: []string{"two-sum"},
		Limit:      2,
	})

	if len(results) != 2 {
		t.Fatalf("results count = %d, want 2", len(results))
	}
	for _, p := range results {
		if p.ID == "two-sum" {
			t.Error("excluded problem appeared in results")
		}
	}
	// Highest remaining frequencies come first.
	if results[0].ID != "valid-parentheses" {
		t.Errorf("first result = %s, want valid-parentheses", results[0].ID)
	}
}

func TestSearchMinFrequency(t *testing.T) {
	service := NewService()

	results := service.Search(models.ProblemFilter{MinFrequency: 0.8})

	if len(results) != 3 {
		t.Fatalf("results count = %d, want 3", len(results))
	}
	for _, p := range results {
		if p.Frequency < 0.8 {
			t.Errorf("problem %s frequency %v below the floor", p.ID, p.Frequency)
		}
	}
}

func TestSearchDifficultyTieBreak(t *testing.T) {
	service := NewService()
	service.Add(&models.Problem{
		ID:         "hard-tie",
		Title:      "Hard Tie",
		Difficulty: models.DifficultyHard,
		Category:   models.CategoryGraph,
		Frequency:  0.95,
	})

	results := service.Search(models.ProblemFilter{MinFrequency: 0.95})
	if len(results) != 2 {
		t.Fatalf("results count = %d, want 2", len(results))
	}
	// Equal frequency: easier problem sorts first.
	if results[0].ID != "two-sum" || results[1].ID != "hard-tie" {
		t.Errorf("order = [%s %s], want [two-sum hard-tie]", results[0].ID, results[1].ID)
	}
}

func TestSearchText(t *testing.T) {
	service := NewService()

	tests := []struct {
		name       string
		query      string
		expectedID string
	}{
		{name: "title word", query: "parentheses", expectedID: "valid-parentheses"},
		{name: "typo tolerance", query: "parenthese", expectedID: "valid-parentheses"},
		{name: "description word", query: "median", expectedID: "median-of-two-sorted-arrays"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := service.SearchText(tt.query, 5)
			if len(results) == 0 {
				t.Fatalf("SearchText(%q) returned no results", tt.query)
			}
			if !containsID(results, tt.expectedID) {
				t.Errorf("SearchText(%q) = %v, want it to include %s", tt.query, ids(results), tt.expectedID)
			}
		})
	}

	if results := service.SearchText("   ", 5); results != nil {
		t.Errorf("blank query returned %v, want nil", ids(results))
	}
}

func TestAddValidation(t *testing.T) {
	service := NewService()

	if err := service.Add(&models.Problem{Title: "No ID"}); err == nil {
		t.Error("expected error for problem without id")
	}
	if err := service.Add(&models.Problem{ID: "no-title"}); err == nil {
		t.Error("expected error for problem without title")
	}

	problem := &models.Problem{
		ID:         "three-sum",
		Title:      "Three Sum",
		Difficulty: models.DifficultyMedium,
		Category:   models.CategoryArray,
		Frequency:  0.7,
	}
	if err := service.Add(problem); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}

	// Secondary indexes pick the new problem up immediately.
	results := service.Search(models.ProblemFilter{
		Categories: []models.ProblemCategory{models.CategoryArray},
	})
	if !containsID(results, "three-sum") {
		t.Errorf("category search = %v, want it to include three-sum", ids(results))
	}
}

func TestUpdate(t *testing.T) {
	service := NewService()

	newTitle := "Two Sum II"
	newDifficulty := models.DifficultyMedium
	updated, err := service.Update("two-sum", &models.UpdateProblemRequest{
		Title:      &newTitle,
		Difficulty: &newDifficulty,
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Title != "Two Sum II" {
		t.Errorf("Title = %q, want Two Sum II", updated.Title)
	}
	// Untouched fields survive the patch.
	if updated.Category != models.CategoryArray {
		t.Errorf("Category = %s, want array", updated.Category)
	}

	// The difficulty index reflects the change.
	results := service.Search(models.ProblemFilter{
		Difficulties: []models.ProblemDifficulty{models.DifficultyMedium},
	})
	if !containsID(results, "two-sum") {
		t.Errorf("medium search = %v, want it to include two-sum", ids(results))
	}

	if _, err := service.Update("missing", &models.UpdateProblemRequest{}); !errors.Is(err, ErrProblemNotFound) {
		t.Errorf("error = %v, want ErrProblemNotFound", err)
	}
}

func TestStatistics(t *testing.T) {
	service := NewService()

	stats := service.Statistics()
	if stats.TotalProblems != 5 {
		t.Errorf("TotalProblems = %d, want 5", stats.TotalProblems)
	}
	if stats.DifficultyDistribution[models.DifficultyEasy] != 2 {
		t.Errorf("easy count = %d, want 2", stats.DifficultyDistribution[models.DifficultyEasy])
	}
	if stats.DifficultyDistribution[models.DifficultyHard] != 1 {
		t.Errorf("hard count = %d, want 1", stats.DifficultyDistribution[models.DifficultyHard])
	}
	if stats.CompaniesCovered != 4 {
		t.Errorf("CompaniesCovered = %d, want 4", stats.CompaniesCovered)
	}
	if stats.AverageFrequency <= 0 {
		t.Errorf("AverageFrequency = %v, want positive", stats.AverageFrequency)
	}
}

func ids(problems []*models.Problem) []string {
	out := make([]string, 0, len(problems))
	for _, p := range problems {
		out = append(out, p.ID)
	}
	return out
}

func containsID(problems []*models.Problem, id string) bool {
	for _, p := range problems {
		if p.ID == id {
			return true
		}
	}
	return false
}
