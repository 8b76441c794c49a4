package geofence

import (
	"math"
	"slices"

	"github.com/paulmach/orb/geo"

	"github.com/heartmarshall/geofence-console/internal/domain"
)

// DefaultPalette is used when no palette is configured.
var DefaultPalette = []string{
	"#3B82F6", "#EF4444", "#10B981", "#F59E0B",
	"#8B5CF6", "#EC4899", "#14B8A6", "#F97316",
}

// DisplayGeofence is a geofence decorated for list and detail views.
// None of the extra fields are persisted.
type DisplayGeofence struct {
	domain.Geofence
	Color    string
	Vertices int
	AreaSqM  float64
}

// ActiveCounts partitions a collection for the summary counters.
type ActiveCounts struct {
	Active   int
	Inactive int
}

// Projector assigns display attributes to a fetched collection.
type Projector struct {
	palette []string
}

// NewProjector creates a Projector. An empty palette falls back to DefaultPalette.
func NewProjector(palette []string) *Projector {
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	return &Projector{palette: slices.Clone(palette)}
}

// Project colours geofences by position: palette[i mod len(palette)]. Colours
// follow fetch order, so they may change between refetches.
func (p *Projector) Project(geofences []domain.Geofence) []DisplayGeofence {
	out := make([]DisplayGeofence, len(geofences))
	for i, g := range geofences {
		out[i] = DisplayGeofence{
			Geofence: g,
			Color:    p.palette[i%len(p.palette)],
			Vertices: g.Boundary.Vertices(),
		}
		if !g.Boundary.IsZero() {
			out[i].AreaSqM = math.Abs(geo.Area(g.Boundary.Polygon()))
		}
	}
	return out
}

// GroupByActive counts active and inactive geofences.
func GroupByActive(geofences []domain.Geofence) ActiveCounts {
	var c ActiveCounts
	for _, g := range geofences {
		if g.Active {
			c.Active++
		} else {
			c.Inactive++
		}
	}
	return c
}
