package core

import (
	"testing"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 10000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}

	if len(ids) != numIDs {
		t.Errorf("Expected %d unique IDs, got %d", numIDs, len(ids))
	}
}

// TestIDIsEmpty tests ID emptiness check
func TestIDIsEmpty(t *testing.T) {
	if !ID("").IsEmpty() {
		t.Error("Expected empty ID to be empty")
	}
	if ID("not-empty").IsEmpty() {
		t.Error("Expected non-empty ID to not be empty")
	}
}

// TestParseDetectionID tests detection ID parsing
func TestParseDetectionID(t *testing.T) {
	valid := NewDetectionID().String()

	tests := []struct {
		input    string
		expected DetectionID
		hasError bool
	}{
		{valid, DetectionID(valid), false},
		{"  " + valid + " ", DetectionID(valid), false},
		{"", "", true},
		{"   ", "", true},
		{"not-a-uuid", "", true},
	}

	for _, test := range tests {
		result, err := ParseDetectionID(test.input)
		if test.hasError && err == nil {
			t.Errorf("Expected error for input '%s', but got none", test.input)
		}
		if !test.hasError && err != nil {
			t.Errorf("Unexpected error for input '%s': %v", test.input, err)
		}
		if result != test.expected {
			t.Errorf("Expected %s, got %s", test.expected, result)
		}
	}
}

// TestFingerprintStable tests that equal text yields equal fingerprints
func TestFingerprintStable(t *testing.T) {
	a := NewFingerprint("Name,Email\nJohn,j@x.com")
	b := NewFingerprint("Name,Email\nJohn,j@x.com")
	c := NewFingerprint("Name,Email\nJane,j@x.com")

	if a != b {
		t.Errorf("Expected identical fingerprints, got %s and %s", a, b)
	}
	if a == c {
		t.Error("Expected different text to produce different fingerprints")
	}
	if len(a.String()) != 64 {
		t.Errorf("Expected 64 hex characters, got %d", len(a.String()))
	}
	if len(a.Short()) != 12 {
		t.Errorf("Expected short fingerprint of 12 characters, got %d", len(a.Short()))
	}
}
