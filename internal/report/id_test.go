package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewReportID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := newReportID()
		assert.Len(t, id, idLength)
		for _, r := range id {
			assert.True(t, strings.ContainsRune(idAlphabet, r), "unexpected rune %q", r)
		}
		seen[id] = true
	}
	// Collisions over 100 draws from 62^10 would indicate a broken generator.
	assert.Len(t, seen, 100)
}
