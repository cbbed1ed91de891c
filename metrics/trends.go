package metrics

import "math"

// trendStableThreshold is the slope magnitude below which a trend is
// reported as stable rather than increasing/decreasing.
const trendStableThreshold = 0.01

// AnalyzeTrustTrends returns a synthetic time series for agent over
// the given period, since the Store retains no history (spec.md §4.3,
// "Trends"). The series oscillates gently around the agent's current
// average trust score so repeated calls for the same agent produce a
// stable, reproducible shape rather than literal noise.
func (e *Engine) AnalyzeTrustTrends(agent, period string, days int) Trend {
	base := e.AgentMetrics(agent).AverageTrustScore
	points := make([]TrendPoint, 0, days)
	for day := 0; day < days; day++ {
		wobble := 0.05 * math.Sin(float64(day)*0.3)
		points = append(points, TrendPoint{Day: day, Value: clampSigned(base + wobble)})
	}

	slope := 0.0
	if len(points) >= 2 {
		slope = (points[len(points)-1].Value - points[0].Value) / float64(len(points)-1)
	}

	direction := TrendStable
	switch {
	case slope > trendStableThreshold:
		direction = TrendIncreasing
	case slope < -trendStableThreshold:
		direction = TrendDecreasing
	}

	return Trend{AgentID: agent, Period: period, Points: points, Slope: slope, Direction: direction}
}

func clampSigned(v float64) float64 {
	switch {
	case v < -1:
		return -1
	case v > 1:
		return 1
	default:
		return v
	}
}
