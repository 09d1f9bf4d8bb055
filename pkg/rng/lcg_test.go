package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLCGDeterministic(t *testing.T) {
	a := NewLCG(31413241)
	b := NewLCG(31413241)

	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Next(), b.Next())
	}
}

func TestLCGRangeBounds(t *testing.T) {
	gen := NewLCG(31413241)
	for i := 0; i < 1000; i++ {
		v := gen.Next()
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}

func TestLCGSkipMatchesSequentialDraws(t *testing.T) {
	skipped := NewLCG(31413241)
	skipped.Skip(5)

	sequential := NewLCG(31413241)
	for i := 0; i < 5; i++ {
		sequential.Next()
	}

	assert.Equal(t, sequential.Next(), skipped.Next())
}

func TestLCGDifferentSeedsDiverge(t *testing.T) {
	a := NewLCG(1)
	b := NewLCG(2)
	assert.NotEqual(t, a.Next(), b.Next())
}
