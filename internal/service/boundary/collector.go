// Package boundary captures geofence boundaries point by point and turns the
// captured points into a closed GeoJSON ring.
package boundary

import "github.com/heartmarshall/geofence-console/internal/domain"

// Collector accumulates picks from the capture surface in order.
// It is owned by a single capture session and is not safe for concurrent use.
type Collector struct {
	points []domain.GeoPoint
}

// Add appends p. No deduplication, reordering or intersection checks.
func (c *Collector) Add(p domain.GeoPoint) {
	c.points = append(c.points, p)
}

// RemoveLast drops the most recently added point. No-op when empty.
func (c *Collector) RemoveLast() {
	if len(c.points) == 0 {
		return
	}
	c.points = c.points[:len(c.points)-1]
}

// Clear resets the collector to an empty sequence.
func (c *Collector) Clear() {
	c.points = nil
}

// Len returns the number of captured points.
func (c *Collector) Len() int {
	return len(c.points)
}

// Snapshot returns a copy of the captured points.
func (c *Collector) Snapshot() []domain.GeoPoint {
	out := make([]domain.GeoPoint, len(c.points))
	copy(out, c.points)
	return out
}
