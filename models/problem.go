package models

type ProblemDifficulty string

const (
	DifficultyEasy   ProblemDifficulty = "easy"
	DifficultyMedium ProblemDifficulty = "medium"
	DifficultyHard   ProblemDifficulty = "hard"
)

// Rank orders difficulties for sorting: easy < medium < hard.
func (d ProblemDifficulty) Rank() int {
	switch d {
	case DifficultyEasy:
		return 0
	case DifficultyMedium:
		return 1
	case DifficultyHard:
		return 2
	default:
		return 3
	}
}

type ProblemCategory string

const (
	CategoryArray              ProblemCategory = "array"
	CategoryString             ProblemCategory = "string"
	CategoryLinkedList         ProblemCategory = "linked_list"
	CategoryStack              ProblemCategory = "stack"
	CategoryQueue              ProblemCategory = "queue"
	CategoryTree               ProblemCategory = "tree"
	CategoryGraph              ProblemCategory = "graph"
	CategoryDynamicProgramming ProblemCategory = "dynamic_programming"
	CategoryGreedy             ProblemCategory = "greedy"
	CategoryBacktracking       ProblemCategory = "backtracking"
	CategoryBinarySearch       ProblemCategory = "binary_search"
	CategoryTwoPointers        ProblemCategory = "two_pointers"
	CategorySlidingWindow      ProblemCategory = "sliding_window"
	CategoryHashTable          ProblemCategory = "hash_table"
	CategoryHeap               ProblemCategory = "heap"
	CategoryTrie               ProblemCategory = "trie"
	CategoryMath               ProblemCategory = "math"
	CategoryBitManipulation    ProblemCategory = "bit_manipulation"
)

type ProblemExample struct {
	Input       string `json:"input"`
	Output      string `json:"output"`
	Explanation string `json:"explanation,omitempty"`
}

type Problem struct {
	ID            string            `json:"id"`
	Title         string            `json:"title"`
	Slug          string            `json:"slug,omitempty"`
	Difficulty    ProblemDifficulty `json:"difficulty"`
	Category      ProblemCategory   `json:"category"`
	Subcategories []ProblemCategory `json:"subcategories,omitempty"`

	Description string           `json:"description"`
	Examples    []ProblemExample `json:"examples,omitempty"`
	Constraints []string         `json:"constraints,omitempty"`

	CompanyTags []string `json:"company_tags,omitempty"`
	Frequency   float64  `json:"frequency,omitempty"` // 0.0 to 1.0

	Hints           []string `json:"hints,omitempty"`
	Approaches      []string `json:"approaches,omitempty"`
	TimeComplexity  string   `json:"time_complexity,omitempty"`
	SpaceComplexity string   `json:"space_complexity,omitempty"`

	Tags           []string `json:"tags,omitempty"`
	AcceptanceRate float64  `json:"acceptance_rate,omitempty"`
}

// ProblemFilter is a pure query value; zero criteria match everything.
type ProblemFilter struct {
	Difficulties []ProblemDifficulty `json:"difficulties,omitempty"`
	Categories   []ProblemCategory   `json:"categories,omitempty"`
	CompanyTags  []string            `json:"company_tags,omitempty"`
	MinFrequency float64             `json:"min_frequency,omitempty"`
	ExcludeIDs   []string            `json:"exclude_ids,omitempty"`
	Tags         []string            `json:"tags,omitempty"`
	Limit        int                 `json:"limit,omitempty"`
}

type UpdateProblemRequest struct {
	Title          *string            `json:"title,omitempty"`
	Description    *string            `json:"description,omitempty"`
	Difficulty     *ProblemDifficulty `json:"difficulty,omitempty"`
	Category       *ProblemCategory   `json:"category,omitempty"`
	Frequency      *float64           `json:"frequency,omitempty"`
	AcceptanceRate *float64           `json:"acceptance_rate,omitempty"`
	Hints          []string           `json:"hints,omitempty"`
	CompanyTags    []string           `json:"company_tags,omitempty"`
	Tags           []string           `json:"tags,omitempty"`
}

type ProblemRecommendation struct {
	Problem         *Problem `json:"problem"`
	ConfidenceScore float64  `json:"confidence_score"`
	Reasoning       string   `json:"reasoning"`
	EstimatedTime   int      `json:"estimated_time"` // minutes
}

// AttemptRecord is one historical problem attempt used as recommendation input.
type AttemptRecord struct {
	ProblemID       string `json:"problem_id"`
	SolutionCorrect bool   `json:"solution_correct"`
	TimeTaken       int    `json:"time_taken"` // seconds
}

type CatalogStatistics struct {
	TotalProblems          int                       `json:"total_problems"`
	DifficultyDistribution map[ProblemDifficulty]int `json:"difficulty_distribution"`
	CategoryDistribution   map[ProblemCategory]int   `json:"category_distribution"`
	CompaniesCovered       int                       `json:"companies_covered"`
	AverageFrequency       float64                   `json:"average_frequency"`
}
