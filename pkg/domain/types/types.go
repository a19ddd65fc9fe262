package types

import (
	"github.com/google/uuid"
)

// RunID identifies a single detection run
type RunID string

// String returns the string representation
func (id RunID) String() string {
	return string(id)
}

// NewRunID creates a new RunID
func NewRunID() RunID {
	return RunID(uuid.New().String())
}

// Direction tells on which side of the fences an unusual day falls
type Direction string

const (
	DirectionHigh Direction = "high"
	DirectionLow  Direction = "low"
)

// String returns the string representation
func (d Direction) String() string {
	return string(d)
}

// IsValid returns true for high and low
func (d Direction) IsValid() bool {
	return d == DirectionHigh || d == DirectionLow
}
