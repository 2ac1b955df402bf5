package geo

import (
	"fmt"
	"math"
	"time"
)

const (
	EarthRadiusKm = 6371.0

	// AverageRoadSpeedKmh is the assumed door-to-door driving speed.
	AverageRoadSpeedKmh = 50.0
)

// Point is a (lat, lng) pair. It serializes as a two-element JSON array.
type Point [2]float64

func NewPoint(lat, lng float64) Point { return Point{lat, lng} }

func (p Point) Lat() float64 { return p[0] }
func (p Point) Lng() float64 { return p[1] }

// Haversine returns the great-circle distance between a and b in kilometres.
func Haversine(a, b Point) float64 {
	dLat := toRad(b.Lat() - a.Lat())
	dLng := toRad(b.Lng() - a.Lng())

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Lat()))*math.Cos(toRad(b.Lat()))*math.Sin(dLng/2)*math.Sin(dLng/2)

	return EarthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// EstimateTravelTime converts a distance into a driving duration rounded to the minute.
func EstimateTravelTime(distanceKm float64) time.Duration {
	if distanceKm <= 0 || math.IsNaN(distanceKm) {
		return 0
	}
	minutes := math.Round(distanceKm / AverageRoadSpeedKmh * 60)
	return time.Duration(minutes) * time.Minute
}

// FormatTravelTime renders d as "Hh Mm", or "Mm" when under an hour.
func FormatTravelTime(d time.Duration) string {
	total := int(d.Round(time.Minute) / time.Minute)
	hours, minutes := total/60, total%60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
