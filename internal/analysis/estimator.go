// File path: internal/analysis/estimator.go
package analysis

import (
	"math"
	"strings"
)

// Base hours by application type. Unknown types fall back to the web figure.
var baseHoursByType = map[string]float64{
	"web":     200,
	"mobile":  300,
	"both":    400,
	"desktop": 250,
	"api":     150,
}

// Each keyword found in the document adds its bonus to the base estimate.
var hourBonuses = map[string]float64{
	"database":         40,
	"user management":  30,
	"authentication":   25,
	"payment":          50,
	"integration":      35,
	"api":              30,
	"reporting":        25,
	"dashboard":        35,
	"admin":            20,
	"security":         30,
	"compliance":       40,
	"mobile":           50,
	"real-time":        40,
	"notification":     15,
	"search":           20,
	"analytics":        30,
	"blockchain":       100,
	"ai":               60,
	"machine learning": 80,
}

var highComplexityKeywords = []string{
	"enterprise", "complex", "integration", "scalable", "real-time",
	"blockchain", "ai", "machine learning", "microservices", "distributed",
}

var mediumComplexityKeywords = []string{
	"dashboard", "reporting", "user management", "authentication",
	"payment", "api", "mobile", "responsive",
}

// EstimateHours derives an effort estimate from the document text and
// application type: base hours plus keyword bonuses, scaled by document
// length (capped at 3x base+bonus) and rounded to one decimal.
func EstimateHours(text, applicationType string) float64 {
	base, ok := baseHoursByType[strings.ToLower(applicationType)]
	if !ok {
		base = baseHoursByType["web"]
	}
	lower := strings.ToLower(text)
	hours := base
	for keyword, bonus := range hourBonuses {
		if strings.Contains(lower, keyword) {
			hours += bonus
		}
	}
	factor := math.Min(float64(len(text))/10000, 2.0)
	hours *= 1 + factor
	return math.Round(hours*10) / 10
}

// EstimateCost prices the estimated hours at the mean rate of the table,
// rounded to cents.
func EstimateCost(hours float64, rates RateTable) float64 {
	return math.Round(hours*rates.Mean(0)*100) / 100
}

// AssessComplexity classifies the project as Low, Medium or High based on
// complexity keyword counts and the effort estimate.
func AssessComplexity(text string, hours float64) string {
	lower := strings.ToLower(text)
	high := 0
	for _, kw := range highComplexityKeywords {
		if strings.Contains(lower, kw) {
			high++
		}
	}
	medium := 0
	for _, kw := range mediumComplexityKeywords {
		if strings.Contains(lower, kw) {
			medium++
		}
	}
	switch {
	case high >= 3 || hours > 400:
		return "High"
	case medium >= 3 || hours > 200:
		return "Medium"
	default:
		return "Low"
	}
}
