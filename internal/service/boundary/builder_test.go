package boundary

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/heartmarshall/geofence-console/internal/domain"
)

func pts(latlng ...[2]float64) []domain.GeoPoint {
	out := make([]domain.GeoPoint, len(latlng))
	for i, p := range latlng {
		out[i] = domain.GeoPoint{Latitude: p[0], Longitude: p[1]}
	}
	return out
}

func TestBuild_Square(t *testing.T) {
	t.Parallel()

	b, err := Build(pts([2]float64{0, 0}, [2]float64{0, 1}, [2]float64{1, 1}, [2]float64{1, 0}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := [][2]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}
	got := b.Coordinates()
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("coordinates[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestBuild_InsufficientPoints(t *testing.T) {
	t.Parallel()

	for n := range 3 {
		points := make([]domain.GeoPoint, n)
		b, err := Build(points)
		if !errors.Is(err, domain.ErrInsufficientPoints) {
			t.Fatalf("n=%d: expected ErrInsufficientPoints, got %v", n, err)
		}
		var vErr *domain.ValidationError
		if !errors.As(err, &vErr) || vErr.Field("polygon") == "" {
			t.Fatalf("n=%d: expected polygon field error, got %v", n, err)
		}
		if !b.IsZero() {
			t.Fatalf("n=%d: expected no polygon", n)
		}
	}
}

func TestBuild_ClosureForRandomInputs(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(1, 2))
	for i := range 200 {
		n := 3 + r.IntN(20)
		points := make([]domain.GeoPoint, n)
		for j := range points {
			points[j] = domain.GeoPoint{
				Latitude:  r.Float64()*180 - 90,
				Longitude: r.Float64()*360 - 180,
			}
		}

		b, err := Build(points)
		if err != nil {
			t.Fatalf("case %d: unexpected error: %v", i, err)
		}
		coords := b.Coordinates()
		if len(coords) != n+1 {
			t.Fatalf("case %d: len = %d, want %d", i, len(coords), n+1)
		}
		if coords[0] != coords[n] {
			t.Fatalf("case %d: ring not closed: %v != %v", i, coords[0], coords[n])
		}
		for j, p := range points {
			if coords[j] != [2]float64{p.Longitude, p.Latitude} {
				t.Fatalf("case %d: coordinates[%d] = %v, want [lng lat] of %v", i, j, coords[j], p)
			}
		}
	}
}

func TestBuild_AcceptsDegenerateShapes(t *testing.T) {
	t.Parallel()

	// Collinear and self-intersecting inputs are accepted as-is.
	inputs := [][]domain.GeoPoint{
		pts([2]float64{0, 0}, [2]float64{0, 1}, [2]float64{0, 2}),
		pts([2]float64{0, 0}, [2]float64{1, 1}, [2]float64{0, 1}, [2]float64{1, 0}),
	}
	for i, in := range inputs {
		if _, err := Build(in); err != nil {
			t.Errorf("input %d: unexpected error: %v", i, err)
		}
	}
}
