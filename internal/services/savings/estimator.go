package savings

import (
	"EnergyOptimizer/internal/domain/models"
	"EnergyOptimizer/pkg/util"
)

// Rate is the dollar value of one kWh above expectation.
const Rate = 0.15

// Estimator implements service.SavingsEstimator with the fixed Rate.
type Estimator struct{}

func NewEstimator() *Estimator { return &Estimator{} }

// Estimate computes (current - expected) * Rate with two decimals.
// Overshoot is positive savings; undershoot renders negative.
func (Estimator) Estimate(s *models.StatusSnapshot) string {
	if s == nil {
		return "0.00"
	}
	return util.FormatFixed((s.CurrentUsage-s.ExpectedUsage)*Rate, 2)
}
