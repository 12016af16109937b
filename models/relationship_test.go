package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalPairOrdersLowerIDFirst(t *testing.T) {
	a, b := CanonicalPair("user-b", "user-a")
	assert.Equal(t, "user-a", a)
	assert.Equal(t, "user-b", b)

	// Already-ordered input is left alone
	a, b = CanonicalPair("user-a", "user-b")
	assert.Equal(t, "user-a", a)
	assert.Equal(t, "user-b", b)
}

func TestCanonicalPairSymmetric(t *testing.T) {
	a1, b1 := CanonicalPair("x", "y")
	a2, b2 := CanonicalPair("y", "x")
	assert.Equal(t, a1, a2)
	assert.Equal(t, b1, b2)
}
