package geo

import (
	"math"
	"math/rand"
	"time"
)

const (
	// MaxJitterDegrees bounds the per-axis perturbation of synthesized stops.
	MaxJitterDegrees = 0.25

	stopSpacingKm = 250.0
)

// JitterSource yields uniform values in [0, 1). *rand.Rand satisfies it.
type JitterSource interface {
	Float64() float64
}

// NewJitterSource returns a time-seeded source for production use.
func NewJitterSource() JitterSource {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// IntermediateStops is min(days-2, floor(distance/250)), never negative.
func IntermediateStops(durationDays int, distanceKm float64) int {
	byDistance := int(math.Floor(distanceKm / stopSpacingKm))
	n := durationDays - 2
	if byDistance < n {
		n = byDistance
	}
	if n < 0 {
		return 0
	}
	return n
}

// SynthesizeRoute approximates a path from start to end. It is a visual aid
// only: stops are evenly spaced along the straight line and jittered, so the
// result makes no claim about real roads.
func SynthesizeRoute(start, end Point, stops int, src JitterSource) []Point {
	if stops < 0 {
		stops = 0
	}

	route := make([]Point, 0, stops+2)
	route = append(route, start)

	for i := 1; i <= stops; i++ {
		f := float64(i) / float64(stops+1)
		lat := start.Lat() + (end.Lat()-start.Lat())*f
		lng := start.Lng() + (end.Lng()-start.Lng())*f
		if src != nil {
			lat += (src.Float64() - 0.5) * 2 * MaxJitterDegrees
			lng += (src.Float64() - 0.5) * 2 * MaxJitterDegrees
		}
		route = append(route, Point{lat, lng})
	}

	return append(route, end)
}
