package analytics

import "math"

type Direction string

const (
	DirectionUp     Direction = "up"
	DirectionDown   Direction = "down"
	DirectionStable Direction = "stable"
)

const (
	minTrendPoints = 7
	slopeThreshold = 0.1
	predictAhead   = 7
)

type Trend struct {
	Trend      Direction `json:"trend"`
	Growth     float64   `json:"growth"`
	Prediction float64   `json:"prediction"`
	Confidence float64   `json:"confidence"`
}

func stableTrend() Trend {
	return Trend{Trend: DirectionStable}
}

// EstimateTrend fits an ordinary least-squares line through the series
// (x = day index). Fewer than seven points yield a stable, zero-confidence result.
func EstimateTrend(ys []float64) Trend {
	n := len(ys)
	if n < minTrendPoints {
		return stableTrend()
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, y := range ys {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}
	fn := float64(n)
	slope := (fn*sumXY - sumX*sumY) / (fn*sumXX - sumX*sumX)
	intercept := (sumY - slope*sumX) / fn

	dir := DirectionStable
	switch {
	case slope > slopeThreshold:
		dir = DirectionUp
	case slope < -slopeThreshold:
		dir = DirectionDown
	}

	var firstWeek, lastWeek float64
	for _, y := range ys[:minTrendPoints] {
		firstWeek += y
	}
	for _, y := range ys[n-minTrendPoints:] {
		lastWeek += y
	}
	var growth float64
	if firstWeek > 0 {
		growth = (lastWeek - firstWeek) / firstWeek * 100
	}

	meanY := sumY / fn
	var ssTotal, ssRes float64
	for i, y := range ys {
		predicted := slope*float64(i) + intercept
		ssTotal += (y - meanY) * (y - meanY)
		ssRes += (y - predicted) * (y - predicted)
	}
	var confidence float64
	if ssTotal > 0 {
		confidence = math.Max(0, math.Min(1, 1-ssRes/ssTotal))
	}

	return Trend{
		Trend:      dir,
		Growth:     growth,
		Prediction: math.Max(0, slope*float64(n+predictAhead)+intercept),
		Confidence: confidence,
	}
}
