// Package request implements the DeliveryRequest aggregate and its lifecycle state machine.
//
// The package includes:
//   - DeliveryRequest: the aggregate root (route, package, quote, status, driver)
//   - Status: the lifecycle graph pending -> accepted -> picked_up -> in_transit -> delivered,
//     with cancelled reachable from pending and accepted
//   - Quote: price and ETA fixed at creation
//   - StatusChanged: the event raised by every lifecycle change
//
// The aggregate validates transitions in memory only. Making a change stick under
// concurrency is the job of the store's conditional update, which is guarded on the
// State observed before the change.
package request
