// Package driver models the driver snapshot consumed by the locator and by assignment.
//
// Drivers are owned by an external directory. The engine reads them, ranks them and checks
// their availability at assignment time, but never writes them back.
package driver
