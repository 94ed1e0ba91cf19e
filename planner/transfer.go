package planner

import (
	"time"

	"github.com/golang/geo/s2"
)

const earthRadiusMeters = 6371000

// EstimateTransfer estimates the ground-transfer time between two locations
// from their great-circle distance at the configured ground speed. The
// configured minimum buffer is the floor, and it is also the answer whenever
// either side lacks coordinates.
func EstimateTransfer(from, to LocationInfo, cfg Config) time.Duration {
	if !from.HasCoords() || !to.HasCoords() || cfg.TransferSpeedKmh <= 0 {
		return cfg.TransferBuffer
	}

	p1 := s2.LatLngFromDegrees(from.Lat, from.Lon)
	p2 := s2.LatLngFromDegrees(to.Lat, to.Lon)
	meters := p1.Distance(p2).Radians() * earthRadiusMeters

	est := time.Duration(meters / 1000 / cfg.TransferSpeedKmh * float64(time.Hour))
	if est < cfg.TransferBuffer {
		return cfg.TransferBuffer
	}
	return est
}
