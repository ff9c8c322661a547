package kernel

import (
	"errors"
	"fmt"
	"math"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const (
	// MinLatitude and MaxLatitude bound a valid latitude in decimal degrees.
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0

	// EarthRadiusKm is the mean Earth radius used by the haversine formula.
	EarthRadiusKm = 6371.0
)

// ErrGeoPointIsNotConstructed is returned when a zero GeoPoint is used.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint")

// GeoPoint is an immutable coordinate in decimal degrees.
// The zero value is invalid; use NewGeoPoint.
//
// Example:
//
//	accra, err := kernel.NewGeoPoint(5.6037, -0.1870)
//	if err != nil {
//	    // latitude or longitude out of range
//	}
//	fmt.Println(accra) // GeoPoint(5.603700,-0.187000)
type GeoPoint struct { //nolint:recvcheck //using for validation
	lat   float64
	lon   float64
	guard guard.ConstructorGuard
}

// NewGeoPoint validates both coordinates and returns the point.
// Both failures are reported at once when both coordinates are invalid.
func NewGeoPoint(lat, lon float64) (GeoPoint, error) {
	p := GeoPoint{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(p.setLatitude(lat), p.setLongitude(lon)); err != nil {
		return GeoPoint{}, err
	}

	return p, nil
}

// MustGeoPoint is NewGeoPoint for compile-time constants; it panics on invalid input.
func MustGeoPoint(lat, lon float64) GeoPoint {
	p, err := NewGeoPoint(lat, lon)
	if err != nil {
		panic(err)
	}
	return p
}

// Validate reports ErrGeoPointIsNotConstructed for a zero GeoPoint.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

func (p GeoPoint) Latitude() float64 {
	return p.lat
}

func (p GeoPoint) Longitude() float64 {
	return p.lon
}

func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%f,%f)", p.lat, p.lon)
}

// IsEqual compares coordinates exactly. Both points must be constructed.
func (p GeoPoint) IsEqual(other GeoPoint) (bool, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return p.lat == other.lat && p.lon == other.lon, nil
}

// DistanceTo returns the great-circle distance to other in kilometers.
// See Distance.
func (p GeoPoint) DistanceTo(other GeoPoint) (float64, error) {
	return Distance(p, other)
}

// Distance computes the great-circle distance between a and b with the haversine
// formula on a sphere of radius EarthRadiusKm, rounded to 2 decimal places.
//
// The result is symmetric, zero for identical points, and satisfies the triangle
// inequality up to the rounding step (0.01 km per term).
//
// Example:
//
//	a := kernel.MustGeoPoint(5.6037, -0.1870)
//	b := kernel.MustGeoPoint(5.5600, -0.2057)
//	d, _ := kernel.Distance(a, b) // 5.28
func Distance(a, b GeoPoint) (float64, error) {
	if err := errors.Join(a.Validate(), b.Validate()); err != nil {
		return 0, err
	}

	phi1 := toRadians(a.lat)
	phi2 := toRadians(b.lat)
	deltaPhi := toRadians(b.lat - a.lat)
	deltaLambda := toRadians(b.lon - a.lon)

	h := math.Sin(deltaPhi/2)*math.Sin(deltaPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(deltaLambda/2)*math.Sin(deltaLambda/2)
	// h can drift just above 1 for antipodal points.
	h = math.Min(1, h)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return RoundCents(EarthRadiusKm * c), nil
}

// setLatitude sets the latitude with validation.
// Pointer receiver is used only by the constructor, as with the other private setters.
func (p *GeoPoint) setLatitude(lat float64) error {
	if math.IsNaN(lat) || math.IsInf(lat, 0) {
		return errs.NewValueIsInvalidErrorWithCause("latitude", fmt.Errorf("%v is not a finite number", lat))
	}
	if lat < MinLatitude || lat > MaxLatitude {
		return errs.NewValueIsOutOfRangeError("latitude", lat, MinLatitude, MaxLatitude)
	}

	p.lat = lat
	return nil
}

func (p *GeoPoint) setLongitude(lon float64) error {
	if math.IsNaN(lon) || math.IsInf(lon, 0) {
		return errs.NewValueIsInvalidErrorWithCause("longitude", fmt.Errorf("%v is not a finite number", lon))
	}
	if lon < MinLongitude || lon > MaxLongitude {
		return errs.NewValueIsOutOfRangeError("longitude", lon, MinLongitude, MaxLongitude)
	}

	p.lon = lon
	return nil
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
