package rating

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyBoundaries(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{100, "A+"},
		{90, "A+"},
		{89.99, "A"},
		{80, "A"},
		{79, "B+"},
		{70, "B+"},
		{69.5, "B"},
		{60, "B"},
		{59, "C"},
		{50, "C"},
		{49, "D"},
		{0, "D"},
		{-10, "D"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.score), "score %v", tt.score)
	}
}

func TestClassifyMonotonic(t *testing.T) {
	order := map[string]int{"D": 0, "C": 1, "B": 2, "B+": 3, "A": 4, "A+": 5}

	prev := "D"
	for s := 0.0; s <= 100; s += 0.5 {
		grade := order[Classify(s)]
		assert.GreaterOrEqual(t, grade, order[prev], "grade must not decrease at score %v", s)
		prev = Classify(s)
	}
}
