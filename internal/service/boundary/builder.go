package boundary

import (
	"fmt"

	"github.com/paulmach/orb"

	"github.com/heartmarshall/geofence-console/internal/domain"
)

// Build validates points and closes them into a boundary ring.
//
// Points keep the order they were captured in and are converted to [lng, lat].
// The first point is repeated at the end. Winding order, self-intersection and
// zero-area shapes are not checked.
func Build(points []domain.GeoPoint) (domain.Boundary, error) {
	if len(points) < domain.MinBoundaryVertices {
		return domain.Boundary{}, &domain.ValidationError{Errors: []domain.FieldError{{
			Field:   "polygon",
			Message: fmt.Sprintf("at least %d points required, got %d", domain.MinBoundaryVertices, len(points)),
			Err:     domain.ErrInsufficientPoints,
		}}}
	}

	ring := make(orb.Ring, 0, len(points)+1)
	for _, p := range points {
		ring = append(ring, p.Point())
	}
	ring = append(ring, ring[0])

	return domain.NewBoundary(ring)
}
