package service

import "EnergyOptimizer/internal/domain/models"

// SavingsEstimator derives the savings figure shown on the dashboard.
type SavingsEstimator interface {
	// Estimate returns the amount with two decimals and no currency symbol.
	// A nil snapshot yields "0.00".
	Estimate(s *models.StatusSnapshot) string
}
