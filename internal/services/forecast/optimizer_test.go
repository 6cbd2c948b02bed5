package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour int) time.Time {
	return time.Date(2024, 3, 4, hour, 0, 0, 0, time.UTC)
}

func TestExpectedProfile(t *testing.T) {
	o := New(DefaultUsage)
	assert.InDelta(t, 5.0, o.Expected(at(0)), 1e-9)
	assert.InDelta(t, 8.5, o.Expected(at(6)), 1e-9)
	assert.InDelta(t, 1.5, o.Expected(at(18)), 1e-9)
}

func TestPredict(t *testing.T) {
	o := New(DefaultUsage)
	pts := o.Predict(at(23), HorizonHours)

	require.Len(t, pts, 24)
	assert.Equal(t, "23:00", pts[0].Time)
	assert.Equal(t, "00:00", pts[1].Time)
	for _, p := range pts {
		assert.InDelta(t, p.Predicted*0.8, p.Optimal, 1e-9)
	}
}

func TestScore(t *testing.T) {
	assert.Equal(t, 100.0, Score(4, 5), "under expectation")
	assert.Equal(t, 75.0, Score(10, 8))
	assert.Equal(t, 0.0, Score(30, 5), "clamped")
	assert.Equal(t, 94.0, Score(5.26, 5), "truncated")
}

func TestRecommendations(t *testing.T) {
	o := New(DefaultUsage)

	recs := o.Recommendations(at(10), 10, 8)
	require.Len(t, recs, 1)
	assert.Equal(t, "alert", recs[0].Type)
	assert.Equal(t, "0.30$", recs[0].PotentialSavings)

	recs = o.Recommendations(at(18), 5, 5)
	require.Len(t, recs, 1)
	assert.Equal(t, "shift", recs[0].Type)
	assert.Equal(t, "0.45$ per kWh", recs[0].PotentialSavings)

	assert.Empty(t, o.Recommendations(at(21), 5, 5))
	assert.NotNil(t, o.Recommendations(at(21), 5, 5), "encodes as []")
}

func TestStatus(t *testing.T) {
	o := New(DefaultUsage)
	o.Now = func() time.Time { return at(18) }

	s := o.Status()
	assert.Len(t, s.Predictions, HorizonHours)
	assert.Equal(t, 6.5, s.CurrentStatus.CurrentUsage)
	assert.InDelta(t, 1.5, s.CurrentStatus.ExpectedUsage, 1e-9)
	assert.Equal(t, 0.0, s.CurrentStatus.EfficiencyScore)
	assert.Len(t, s.CurrentStatus.Recommendations, 2)
}
