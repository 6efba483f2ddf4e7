package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	DetectionID ID
	RequestID   ID
)

func (id DetectionID) String() string { return ID(id).String() }
func (id RequestID) String() string   { return ID(id).String() }

// NewDetectionID creates a time-ordered detection identifier
func NewDetectionID() DetectionID { return DetectionID(NewID()) }

// NewRequestID creates a request identifier
func NewRequestID() RequestID { return RequestID(NewID()) }

// ParseDetectionID parses a string into DetectionID
func ParseDetectionID(s string) (DetectionID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("detection ID cannot be empty")
	}
	if _, err := uuid.Parse(s); err != nil {
		return "", fmt.Errorf("invalid detection ID %q: %w", s, err)
	}
	return DetectionID(s), nil
}
