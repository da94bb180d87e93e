package random

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocked_SameSeedSameSequence(t *testing.T) {
	a := New(42)
	b := New(42)

	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
		assert.Equal(t, a.IntN(10), b.IntN(10))
	}
}

func TestLocked_Ranges(t *testing.T) {
	src := New(7)

	for i := 0; i < 1000; i++ {
		f := src.Float64()
		assert.GreaterOrEqual(t, f, 0.0)
		assert.Less(t, f, 1.0)

		n := src.IntN(5)
		assert.GreaterOrEqual(t, n, 0)
		assert.Less(t, n, 5)
	}
}

func TestLocked_ConcurrentUse(t *testing.T) {
	// Запускать с -race
	src := New(0)
	var wg sync.WaitGroup

	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				src.Float64()
				src.IntN(3)
			}
		}()
	}
	wg.Wait()
}

func TestSequence_Cycles(t *testing.T) {
	seq := NewSequence(0.1, 0.5, 0.99)

	assert.Equal(t, 0.1, seq.Float64())
	assert.Equal(t, 0.5, seq.Float64())
	assert.Equal(t, 0.99, seq.Float64())
	assert.Equal(t, 0.1, seq.Float64())
}

func TestSequence_IntN(t *testing.T) {
	seq := NewSequence(0.0, 0.5, 0.999999, 1.0)

	assert.Equal(t, 0, seq.IntN(4))
	assert.Equal(t, 2, seq.IntN(4))
	assert.Equal(t, 3, seq.IntN(4))
	assert.Equal(t, 3, seq.IntN(4))
}
