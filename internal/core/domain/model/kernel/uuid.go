package kernel

import (
	"vendorportal/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned when a zero UUID is validated.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID identifies aggregates and their children: orders, lines, tenders,
// bids, companies and import batches. The zero value is invalid.
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a random (version 4) identifier.
func NewUUID() UUID {
	return UUID{id: uuid.New()}
}

// UUIDFromString parses the textual forms accepted by google/uuid. A parse
// failure is a validation error so callers can surface it to the client.
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, errs.NewValueIsInvalidErrorWithCause("invalid UUID format", err)
	}
	return UUID{id: id}, nil
}

// UUIDFromBytes restores an identifier read from storage. The nil UUID is rejected.
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, errs.NewValueIsInvalidErrorWithCause("invalid UUID format", err)
	}
	restored := UUID{id: id}
	if err = restored.Validate(); err != nil {
		return UUID{}, err
	}
	return restored, nil
}

func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns a copy of the underlying google/uuid value for persistence.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate fails for the zero (nil) UUID.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
