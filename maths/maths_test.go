package maths

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEqualTo(t *testing.T) {
	eps := math.Pow(2, -32)

	assert.True(t, EqualTo(1, 1, eps))
	assert.True(t, EqualTo(1, 1+eps/2, eps))
	assert.False(t, EqualTo(1, 1+eps*4, eps))
	assert.True(t, EqualTo(math.NaN(), math.NaN(), eps))
	assert.False(t, EqualTo(math.NaN(), 0, eps))
	assert.True(t, EqualTo(math.Inf(1), math.Inf(1), eps))
	assert.False(t, EqualTo(math.Inf(1), math.Inf(-1), eps))
}

func TestOrdering(t *testing.T) {
	eps := 0.01

	assert.True(t, GreaterThan(1.1, 1, eps))
	assert.False(t, GreaterThan(1.005, 1, eps))
	assert.True(t, LessThan(1, 1.1, eps))
	assert.False(t, LessThan(1, 1.005, eps))
	assert.True(t, IsZero(0.001, eps))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 2.0, Clamp(5, 0, 2))
	assert.Equal(t, 0.0, Clamp(-1, 0, 2))
	assert.Equal(t, 1.5, Clamp(1.5, 0, 2))
	assert.False(t, IsFinite(math.Inf(-1)))
	assert.True(t, IsFinite(3))
}
