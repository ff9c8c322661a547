package kernel

import (
	"fmt"
	"strings"

	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned when validating a zero (nil) UUID. It belongs to the
// validation family, so the HTTP layer reports it as a bad request.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("id")

// UUID identifies delivery requests and drivers. It wraps github.com/google/uuid so that
// the nil UUID can never pass validation: a request or driver id is always a real,
// non-nil identifier.
//
// The zero value of UUID is invalid. Build one with NewUUID, UUIDFromString,
// UUIDFromBytes or UUIDFromGoogle.
//
// UUID is an immutable value and safe for concurrent use. It is comparable, so it can be
// used as a map key, as the in-memory request store does.
//
// Example usage:
//
//	// A fresh id for a new delivery request
//	requestID := kernel.NewUUID()
//
//	// A driver id received from a client
//	driverID, err := kernel.UUIDFromString("550e8400-e29b-41d4-a716-446655440000")
//	if err != nil {
//	    return err
//	}
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a random (version 4) identifier. It is how new delivery requests get
// their id when the client does not supply one.
//
// Example:
//
//	id := kernel.NewUUID()
//	fmt.Println(id) // e.g. "550e8400-e29b-41d4-a716-446655440000"
func NewUUID() UUID {
	return UUID{
		id: uuid.New(),
	}
}

// UUIDFromString parses the textual form of a UUID. Every format accepted by uuid.Parse
// is allowed, including:
//   - "6ba7b810-9dad-11d1-80b4-00c04fd430c8"
//   - "{6ba7b810-9dad-11d1-80b4-00c04fd430c8}"
//   - "urn:uuid:6ba7b810-9dad-11d1-80b4-00c04fd430c8"
//
// Parameters:
//   - s: the textual UUID
//
// Returns:
//   - the parsed UUID
//   - errs.ValueIsInvalidError if s is not a UUID
//   - ErrUUIDIsNotConstructed if s is the nil UUID
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("invalid UUID format: %w", err))
	}
	return fromGoogle(id)
}

// UUIDFromBytes restores an identifier from its 16-byte form, typically read back from
// storage. The slice must be exactly 16 bytes long.
//
// Example:
//
//	id, err := kernel.UUIDFromBytes(row.DriverID[:])
//	if err != nil {
//	    return nil, fmt.Errorf("driver id of request %s: %w", row.ID, err)
//	}
//
// Returns:
//   - the restored UUID
//   - errs.ValueIsInvalidError if b has the wrong length
//   - ErrUUIDIsNotConstructed if b encodes the nil UUID
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("invalid UUID format: %w", err))
	}
	return fromGoogle(id)
}

// UUIDFromGoogle adopts an already parsed uuid.UUID, e.g. one bound by the HTTP layer.
func UUIDFromGoogle(id uuid.UUID) (UUID, error) {
	return fromGoogle(id)
}

func fromGoogle(id uuid.UUID) (UUID, error) {
	u := UUID{id: id}
	if err := u.Validate(); err != nil {
		return UUID{}, err
	}
	return u, nil
}

// String returns the canonical form "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx". It is what
// the HTTP API, log records and Kafka message keys carry.
func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns the underlying uuid.UUID, not a byte slice. Persistence adapters bind it
// directly as a query argument; use id.Bytes()[:] when raw bytes are needed.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual reports whether both identifiers hold the same value.
//
// Example:
//
//	if !assigned.IsEqual(driverID) {
//	    return errs.NewConflictError("request", requestID, "assigned to another driver")
//	}
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Compare orders identifiers by their canonical string form. It is used wherever a
// deterministic tie-break between entities is needed.
func (u UUID) Compare(other UUID) int {
	return strings.Compare(u.id.String(), other.id.String())
}

// Validate returns ErrUUIDIsNotConstructed for the zero (nil) UUID. Constructors of
// requests and drivers call it on every identifier they receive.
//
// Example:
//
//	func (r *DeliveryRequest) setID(id kernel.UUID) error {
//	    if err := id.Validate(); err != nil {
//	        return err
//	    }
//	    r.id = id
//	    return nil
//	}
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
