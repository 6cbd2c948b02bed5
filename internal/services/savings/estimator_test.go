package savings

import (
	"testing"

	"EnergyOptimizer/internal/domain/models"

	"github.com/stretchr/testify/assert"
)

func TestEstimate(t *testing.T) {
	e := NewEstimator()

	cases := []struct {
		name     string
		snapshot *models.StatusSnapshot
		want     string
	}{
		{"absent status", nil, "0.00"},
		{"above expectation", &models.StatusSnapshot{CurrentUsage: 10, ExpectedUsage: 8}, "0.30"},
		{"on expectation", &models.StatusSnapshot{CurrentUsage: 8, ExpectedUsage: 8}, "0.00"},
		{"below expectation", &models.StatusSnapshot{CurrentUsage: 7, ExpectedUsage: 8}, "-0.15"},
		{"fractional usage", &models.StatusSnapshot{CurrentUsage: 6.5, ExpectedUsage: 5.25}, "0.19"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, e.Estimate(c.snapshot))
		})
	}
}
