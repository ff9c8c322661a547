// Package errs provides the error taxonomy of the dispatch engine.
//
// Every failure returned by the engine belongs to one of four kinds:
//   - validation: ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError (see IsValidation)
//   - not found: ObjectNotFoundError
//   - conflict: ConflictError, an assignment or transition lost a race
//   - invalid transition: InvalidTransitionError, the edge is not in the lifecycle graph
//
// Each error type follows the same pattern:
//   - A sentinel error variable (e.g., ErrConflict)
//   - A struct type carrying the details
//   - Constructor functions
//   - Error() for formatting and Unwrap() returning the sentinel
//
// None of these errors is fatal to the engine and none of them is retried internally.
package errs
