// Package services holds the stateless domain services of the dispatch engine.
//
// The package includes:
//   - Estimator: prices a route and estimates its duration per vehicle class
//   - DriverLocator: ranks a driver directory snapshot by distance to a pickup point
//
// Both services are pure: they read their inputs, never mutate them and keep no state
// between calls, so a single value can be shared by any number of goroutines.
package services
