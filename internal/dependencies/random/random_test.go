package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCryptoRandomIntnInRange(t *testing.T) {
	r := New()
	for i := 0; i < 100; i++ {
		n := r.Intn(7)
		assert.GreaterOrEqual(t, n, 0)
		assert.Less(t, n, 7)
	}
	assert.Equal(t, 0, r.Intn(0))
}

func TestSeededRandomIsDeterministic(t *testing.T) {
	a := NewSeeded(42)
	b := NewSeeded(42)
	for i := 0; i < 50; i++ {
		assert.Equal(t, a.Intn(1000), b.Intn(1000))
	}
	assert.Equal(t, NewSeeded(7).String(12, "abc"), NewSeeded(7).String(12, "abc"))
}

func TestStringUsesAlphabet(t *testing.T) {
	s := New().String(32, "xy")
	assert.Len(t, s, 32)
	for _, c := range s {
		assert.Contains(t, "xy", string(c))
	}
	assert.Equal(t, "", New().String(0, "xy"))
}

func TestShuffleKeepsElements(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6}
	Shuffle(NewSeeded(3), items)
	assert.ElementsMatch(t, []int{1, 2, 3, 4, 5, 6}, items)
}
