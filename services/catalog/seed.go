package catalog

import "interviewcoach/models"

// defaultProblems seeds the catalog so the service is usable before any
// bulk load has happened.
func defaultProblems() []*models.Problem {
	return []*models.Problem{
		{
			ID:            "two-sum",
			Title:         "Two Sum",
			Slug:          "two-sum",
			Difficulty:    models.DifficultyEasy,
			Category:      models.CategoryArray,
			Subcategories: []models.ProblemCategory{models.CategoryHashTable},
			Description:   "Given an array of integers nums and an integer target, return indices of the two numbers such that they add up to target.",
			Examples: []models.ProblemExample{
				{
					Input:       "nums = [2,7,11,15], target = 9",
					Output:      "[0,1]",
					Explanation: "Because nums[0] + nums[1] == 9, we return [0, 1].",
				},
			},
			Constraints: []string{
				"2 <= nums.length <= 10^4",
				"-10^9 <= nums[i] <= 10^9",
				"Only one valid answer exists.",
			},
			CompanyTags: []string{"google", "amazon", "microsoft"},
			Frequency:   0.95,
			Hints: []string{
				"Think about using a hash map to store numbers you've seen.",
				"For each number, check if its complement exists in the hash map.",
			},
			Approaches:      []string{"Brute Force O(n²)", "Hash Map O(n)"},
			TimeComplexity:  "O(n)",
			SpaceComplexity: "O(n)",
			AcceptanceRate:  0.51,
			Tags:            []string{"fundamentals", "interview-favorite"},
		},
		{
			ID:          "add-two-numbers",
			Title:       "Add Two Numbers",
			Slug:        "add-two-numbers",
			Difficulty:  models.DifficultyMedium,
			Category:    models.CategoryLinkedList,
			Description: "You are given two non-empty linked lists representing two non-negative integers. Add the two numbers and return the sum as a linked list.",
			CompanyTags: []string{"amazon", "microsoft"},
			Frequency:   0.78,
			Hints: []string{
				"Handle carry-over between digits carefully.",
				"Consider edge cases where lists have different lengths.",
			},
			TimeComplexity:  "O(max(m,n))",
			SpaceComplexity: "O(max(m,n))",
			AcceptanceRate:  0.38,
		},
		{
			ID:            "longest-substring-without-repeating",
			Title:         "Longest Substring Without Repeating Characters",
			Slug:          "longest-substring-without-repeating-characters",
			Difficulty:    models.DifficultyMedium,
			Category:      models.CategoryString,
			Subcategories: []models.ProblemCategory{models.CategorySlidingWindow, models.CategoryHashTable},
			Description:   "Given a string s, find the length of the longest substring without repeating characters.",
			CompanyTags:   []string{"amazon", "google", "facebook"},
			Frequency:     0.82,
			Hints: []string{
				"Use sliding window technique.",
				"Keep track of character positions in a hash map.",
			},
			TimeComplexity:  "O(n)",
			SpaceComplexity: "O(min(m,n))",
			AcceptanceRate:  0.33,
		},
		{
			ID:            "median-of-two-sorted-arrays",
			Title:         "Median of Two Sorted Arrays",
			Slug:          "median-of-two-sorted-arrays",
			Difficulty:    models.DifficultyHard,
			Category:      models.CategoryBinarySearch,
			Subcategories: []models.ProblemCategory{models.CategoryArray},
			Description:   "Given two sorted arrays nums1 and nums2 of size m and n respectively, return the median of the two sorted arrays.",
			CompanyTags:   []string{"google", "amazon"},
			Frequency:     0.65,
			Hints: []string{
				"Think about binary search to find the partition.",
				"The time complexity should be O(log(min(m,n))).",
			},
			TimeComplexity:  "O(log(min(m,n)))",
			SpaceComplexity: "O(1)",
			AcceptanceRate:  0.35,
		},
		{
			ID:            "valid-parentheses",
			Title:         "Valid Parentheses",
			Slug:          "valid-parentheses",
			Difficulty:    models.DifficultyEasy,
			Category:      models.CategoryStack,
			Subcategories: []models.ProblemCategory{models.CategoryString},
			Description:   "Given a string s containing just the characters '(', ')', '{', '}', '[' and ']', determine if the input string is valid.",
			CompanyTags:   []string{"amazon", "google", "microsoft"},
			Frequency:     0.88,
			Hints: []string{
				"Use a stack to keep track of opening brackets.",
				"When you encounter a closing bracket, check if it matches the most recent opening bracket.",
			},
			TimeComplexity:  "O(n)",
			SpaceComplexity: "O(n)",
			AcceptanceRate:  0.41,
		},
	}
}
