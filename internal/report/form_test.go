package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/emiliopalmerini/herdstats/internal/domain"
)

func TestClampRange(t *testing.T) {
	tests := []struct {
		name     string
		from, to int
		want     domain.Range
	}{
		{name: "within bounds", from: 2, to: 5, want: domain.Range{From: 2, To: 5}},
		{name: "upper bound clamped", from: 3, to: 40, want: domain.Range{From: 3, To: 15}},
		{name: "lower bound clamped", from: -2, to: 4, want: domain.Range{From: 1, To: 4}},
		{name: "both out of bounds", from: 0, to: 99, want: domain.Range{From: 1, To: 15}},
		{name: "inverted above bounds kept raw", from: 20, to: 16, want: domain.Range{From: 20, To: 16}},
		{name: "inverted below bounds kept raw", from: 0, to: -3, want: domain.Range{From: 0, To: -3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := clampRange(tt.from, tt.to, domain.MinLactation, domain.MaxLactation)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildForm_InvertedLactationSurvives(t *testing.T) {
	f := buildForm(KindYearly, Request{LactFrom: intp(20), LactTo: intp(16)}, testBreeds, nil)
	assert.Equal(t, &domain.Range{From: 20, To: 16}, f.Lactation)
}
