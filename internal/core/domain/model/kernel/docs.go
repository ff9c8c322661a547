// Package kernel provides the shared value objects of the dispatch domain.
//
// The package includes:
//   - UUID: identifier of requests and drivers; the nil UUID never validates
//   - GeoPoint: a validated latitude/longitude pair and the haversine Distance between two points
//   - VehicleClass: the closed set motorcycle | car | truck
//   - RoundCents: the 2-decimal rounding shared by prices and distances
//
// All values are immutable and safe for concurrent use. Zero values are invalid and are
// detected through guard.ConstructorGuard.
package kernel
