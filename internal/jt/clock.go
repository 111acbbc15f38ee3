package jt

import (
	"time"

	"github.com/google/uuid"
)

// Clock supplies created_at/updated_at timestamps.
type Clock interface {
	Now() time.Time
}

// RealClock returns the wall-clock time in UTC.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now().UTC() }

// IDGenerator produces identifiers for new applications, stages, companies
// and contacts.
type IDGenerator interface {
	New() string
}

// UUIDGenerator produces random (v4) UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) New() string { return uuid.NewString() }
