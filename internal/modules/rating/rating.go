// Package rating maps numeric ESG scores to letter grades.
package rating

// Classify returns the letter grade for a composite ESG score.
// Thresholds, highest first: 90 A+, 80 A, 70 B+, 60 B, 50 C, else D.
func Classify(score float64) string {
	switch {
	case score >= 90:
		return "A+"
	case score >= 80:
		return "A"
	case score >= 70:
		return "B+"
	case score >= 60:
		return "B"
	case score >= 50:
		return "C"
	default:
		return "D"
	}
}
