package utils

import (
	"math"
	"testing"
)

func TestSuccessRate(t *testing.T) {
	tests := []struct {
		name      string
		completed int64
		accepted  int64
		expected  float64
	}{
		{"zero denominator", 5, 0, 0},
		{"zero over zero", 0, 0, 0},
		{"all completed", 10, 10, 100},
		{"half completed", 5, 10, 50},
		{"none completed", 0, 8, 0},
		{"one third", 1, 3, 100.0 / 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SuccessRate(tt.completed, tt.accepted)
			if math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("SuccessRate(%d, %d) = %v, expected %v",
					tt.completed, tt.accepted, result, tt.expected)
			}
		})
	}
}

func TestRatingMean(t *testing.T) {
	tests := []struct {
		name     string
		ratings  []int
		expected float64
	}{
		{"no reviews", nil, 0},
		{"empty slice", []int{}, 0},
		{"single rating", []int{4}, 4},
		{"uniform ratings", []int{5, 5, 5}, 5},
		{"mixed ratings", []int{5, 4, 5, 2}, 4},
		{"non-integer mean", []int{5, 4}, 4.5},
		{"all ones", []int{1, 1, 1, 1}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := RatingMean(tt.ratings)
			if math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("RatingMean(%v) = %v, expected %v", tt.ratings, result, tt.expected)
			}
		})
	}
}
