package metrics

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/cardscan-io/cardscan/internal/models"
)

// FieldMatch is the comparison result for a single card field.
type FieldMatch struct {
	Expected string
	Actual   string
	Score    float64 // 0.0 to 1.0
	Method   string  // "exact", "substring", "fuzzy_high", "fuzzy_medium", "no_match", "actual_missing", "expected_missing", "both_missing"
	Notes    string
}

// CardComparison holds field-level comparison results for one card.
type CardComparison struct {
	Fields          map[string]FieldMatch
	FieldsMatched   int
	FieldsMissing   int
	FieldsIncorrect int
	OverallScore    float64
}

// fieldWeights biases the overall score towards the fields users care about
// most on a scanned card. Weights sum to 1.0.
var fieldWeights = map[string]float64{
	"first_name":   0.15,
	"last_name":    0.15,
	"company_name": 0.15,
	"position":     0.10,
	"email":        0.15,
	"mobile":       0.10,
	"telephone":    0.05,
	"website":      0.05,
	"address":      0.05,
	"department":   0.025,
	"extension":    0.025,
}

// CompareCards compares an extracted card against ground truth field by
// field. List fields are compared as their joined, order-preserving form.
func CompareCards(expected, actual *models.BusinessCard) *CardComparison {
	comparison := &CardComparison{
		Fields: make(map[string]FieldMatch),
	}

	pairs := []struct {
		name     string
		expected string
		actual   string
	}{
		{"first_name", expected.FirstName, actual.FirstName},
		{"last_name", expected.LastName, actual.LastName},
		{"company_name", expected.CompanyName, actual.CompanyName},
		{"position", expected.Position, actual.Position},
		{"department", expected.Department, actual.Department},
		{"email", joinValues(expected.Email), joinValues(actual.Email)},
		{"mobile", joinValues(expected.Mobile), joinValues(actual.Mobile)},
		{"telephone", joinValues(expected.Telephone), joinValues(actual.Telephone)},
		{"website", joinValues(expected.Website), joinValues(actual.Website)},
		{"address", expected.Address, actual.Address},
		{"extension", expected.Extension, actual.Extension},
	}

	totalScore := 0.0
	for _, pair := range pairs {
		match := compareField(pair.expected, pair.actual)
		comparison.Fields[pair.name] = match
		totalScore += match.Score * fieldWeights[pair.name]

		switch match.Method {
		case "exact", "substring", "fuzzy_high":
			comparison.FieldsMatched++
		case "actual_missing":
			comparison.FieldsMissing++
		case "fuzzy_medium", "no_match":
			comparison.FieldsIncorrect++
		}
	}
	comparison.OverallScore = totalScore

	return comparison
}

// compareField scores one expected/actual pair with fuzzy matching.
func compareField(expected, actual string) FieldMatch {
	match := FieldMatch{
		Expected: expected,
		Actual:   actual,
	}

	expNorm := normalizeForComparison(expected)
	actNorm := normalizeForComparison(actual)

	if expected == "" && actual == "" {
		match.Score = 1.0
		match.Method = "both_missing"
		match.Notes = "Field absent on both sides"
		return match
	}

	if expected == "" {
		match.Score = 0.0
		match.Method = "expected_missing"
		match.Notes = "Extraction produced a value with no ground truth"
		return match
	}

	if actual == "" {
		match.Score = 0.0
		match.Method = "actual_missing"
		match.Notes = "Extraction missed this field"
		return match
	}

	if expNorm == actNorm {
		match.Score = 1.0
		match.Method = "exact"
		match.Notes = "Exact match"
		return match
	}

	if strings.Contains(actNorm, expNorm) || strings.Contains(expNorm, actNorm) {
		match.Score = 0.8
		match.Method = "substring"
		match.Notes = "Partial match (substring found)"
		return match
	}

	similarity := calculateSimilarity(expNorm, actNorm)
	match.Score = similarity
	if similarity > 0.7 {
		match.Method = "fuzzy_high"
		match.Notes = fmt.Sprintf("High similarity (%.2f)", similarity)
	} else if similarity > 0.4 {
		match.Method = "fuzzy_medium"
		match.Notes = fmt.Sprintf("Medium similarity (%.2f)", similarity)
	} else {
		match.Method = "no_match"
		match.Notes = fmt.Sprintf("Low similarity (%.2f)", similarity)
	}

	return match
}

func joinValues(values []string) string {
	return strings.Join(values, "; ")
}

var punctuationRE = regexp.MustCompile(`[^\w\s+@.]`)

// normalizeForComparison lowercases and strips punctuation that OCR and the
// LLM render inconsistently. "+", "@" and "." survive so phone numbers,
// emails and URLs keep their shape.
func normalizeForComparison(text string) string {
	text = strings.ToLower(text)
	text = punctuationRE.ReplaceAllString(text, "")
	text = strings.Join(strings.Fields(text), " ")
	return strings.TrimSpace(text)
}

// calculateSimilarity converts Levenshtein distance to a 0.0 to 1.0 ratio.
func calculateSimilarity(s1, s2 string) float64 {
	if s1 == s2 {
		return 1.0
	}
	if len(s1) == 0 || len(s2) == 0 {
		return 0.0
	}

	distance := levenshteinDistance(s1, s2)
	maxLen := len(s1)
	if len(s2) > maxLen {
		maxLen = len(s2)
	}

	return 1.0 - (float64(distance) / float64(maxLen))
}

func levenshteinDistance(s1, s2 string) int {
	if s1 == s2 {
		return 0
	}
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	rows := len(s1) + 1
	cols := len(s2) + 1
	matrix := make([][]int, rows)
	for i := range matrix {
		matrix[i] = make([]int, cols)
	}

	for i := 0; i < rows; i++ {
		matrix[i][0] = i
	}
	for j := 0; j < cols; j++ {
		matrix[0][j] = j
	}

	for i := 1; i < rows; i++ {
		for j := 1; j < cols; j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}
			matrix[i][j] = min3(
				matrix[i-1][j]+1,
				matrix[i][j-1]+1,
				matrix[i-1][j-1]+cost,
			)
		}
	}

	return matrix[rows-1][cols-1]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
