package booking

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

// The reference format is REF + epoch millis + three random digits.
// Uniqueness is probabilistic, so only the shape is asserted.
func TestNewReferenceNoFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^REF\d{13}\d{3}$`)
	for i := 0; i < 100; i++ {
		ref := NewReferenceNo()
		assert.Regexp(t, pattern, ref)
	}
}
