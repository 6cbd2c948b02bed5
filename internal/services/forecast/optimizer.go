// Package forecast produces stand-in status payloads for local runs. It
// models usage as a fixed daily profile rather than a trained model.
package forecast

import (
	"fmt"
	"math"
	"time"

	"EnergyOptimizer/internal/domain/models"
)

const (
	DefaultUsage   = 6.5
	HorizonHours   = 24
	OptimalFactor  = 0.8
	SavingsRate    = 0.15
	SpikeThreshold = 1.2

	peakStart = 17 // first peak hour
	peakEnd   = 20 // last peak hour
)

// Optimizer answers the same questions the status endpoint does.
type Optimizer struct {
	// Usage is the simulated meter reading in kWh.
	Usage float64
	Now   func() time.Time
}

func New(usage float64) *Optimizer {
	if usage < 0 {
		usage = DefaultUsage
	}
	return &Optimizer{Usage: usage, Now: time.Now}
}

// Expected is the profile usage for the hour of t: a base load of 5 kWh
// with a daily swing of 3.5 kWh, never negative.
func (o *Optimizer) Expected(t time.Time) float64 {
	h := float64(t.Hour()) + float64(t.Minute())/60
	return math.Max(0, 5+3.5*math.Sin(2*math.Pi*h/24))
}

// Predict returns hourly points starting at from.
func (o *Optimizer) Predict(from time.Time, hours int) []models.PredictionPoint {
	out := make([]models.PredictionPoint, 0, hours)
	for i := 0; i < hours; i++ {
		t := from.Add(time.Duration(i) * time.Hour)
		p := o.Expected(t)
		out = append(out, models.PredictionPoint{
			Time:      t.Format("15:04"),
			Predicted: p,
			Optimal:   p * OptimalFactor,
		})
	}
	return out
}

// Score is 100 minus the percentage overshoot, clamped to [0,100] and
// truncated.
func Score(current, expected float64) float64 {
	if expected <= 0 {
		return 0
	}
	over := math.Min(100, math.Max(0, (current-expected)/expected*100))
	return math.Trunc(100 - over)
}

func (o *Optimizer) Recommendations(now time.Time, current, expected float64) []models.Recommendation {
	recs := []models.Recommendation{}
	if current > expected*SpikeThreshold {
		recs = append(recs, models.Recommendation{
			Type:             "alert",
			Message:          "Unusual energy spike detected",
			PotentialSavings: fmt.Sprintf("%.2f$", (current-expected)*SavingsRate),
		})
	}
	if h := now.Hour(); h >= peakStart && h <= peakEnd {
		recs = append(recs, models.Recommendation{
			Type:             "shift",
			Message:          "Currently in peak hours. Consider shifting heavy appliance usage to off-peak hours",
			PotentialSavings: "0.45$ per kWh",
		})
	}
	return recs
}

func (o *Optimizer) Insights(now time.Time) models.StatusSnapshot {
	expected := o.Expected(now)
	return models.StatusSnapshot{
		CurrentUsage:    o.Usage,
		ExpectedUsage:   expected,
		EfficiencyScore: Score(o.Usage, expected),
		Recommendations: o.Recommendations(now, o.Usage, expected),
	}
}

// Status builds a full /api/current-status payload for the current time.
func (o *Optimizer) Status() models.StatusPayload {
	now := o.Now()
	return models.StatusPayload{
		Predictions:   o.Predict(now, HorizonHours),
		CurrentStatus: o.Insights(now),
	}
}
