// Package grades holds the institutional grade-point scale and the GPA
// arithmetic derived from it. The scale is versioned with the schema; it is
// not runtime configuration.
package grades

import "math"

// gradePoints maps letter grades to point values. Tokens outside this table
// (and null grades) carry no points and are excluded from GPA entirely.
var gradePoints = map[string]float64{
	"A":  4.0,
	"A-": 3.7,
	"B+": 3.3,
	"B":  3.0,
	"B-": 2.7,
	"C+": 2.3,
	"C":  2.0,
	"C-": 1.7,
	"D+": 1.3,
	"D":  1.0,
	"F":  0.0,
}

// Points returns the point value for a letter grade and whether the grade
// is on the scale.
func Points(letter string) (float64, bool) {
	points, ok := gradePoints[letter]
	return points, ok
}

// CreditGrade pairs one enrollment's letter grade with its credit weight.
// A nil grade means no grade recorded.
type CreditGrade struct {
	Grade   *string
	Credits int
}

// GPA computes the credit-weighted grade point average over the gradeable
// entries: sum(points*credits)/sum(credits). It returns nil when no entry
// carries a grade on the scale; an undefined GPA is not zero.
func GPA(entries []CreditGrade) *float64 {
	var totalPoints, totalCredits float64
	for _, entry := range entries {
		if entry.Grade == nil {
			continue
		}
		points, ok := Points(*entry.Grade)
		if !ok {
			continue
		}
		totalPoints += points * float64(entry.Credits)
		totalCredits += float64(entry.Credits)
	}
	if totalCredits == 0 {
		return nil
	}
	gpa := totalPoints / totalCredits
	return &gpa
}

// Round2 rounds to two decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// termOrder positions terms within one calendar year following the academic
// calendar: Fall of year N precedes Spring of year N+1.
var termOrder = map[string]int{
	"Fall":   0,
	"Winter": 1,
	"Spring": 2,
	"Summer": 3,
}

// TermRank orders terms within a year for transcript sorting. Unknown terms
// sort last.
func TermRank(term string) int {
	if rank, ok := termOrder[term]; ok {
		return rank
	}
	return len(termOrder)
}
