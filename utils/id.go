package utils

import "github.com/google/uuid"

// NewID mints a random identifier for a new document.
func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether s could ever name a document. Callers treat an
// invalid id the same as an unknown one.
func ValidID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
