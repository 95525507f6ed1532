package set

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type id int

func TestBits(t *testing.T) {
	s := MakeBits[id](10)

	assert.False(t, s.IsSet(3))
	assert.True(t, s.Add(3))
	assert.False(t, s.Add(3))

	s.Set(200)
	s.Set(64)
	s.Set(0)

	assert.True(t, s.IsSet(200))
	assert.False(t, s.IsSet(199))
	assert.False(t, s.IsSet(1000))
	assert.Equal(t, 4, s.Size())

	var got []id

	s.Range(func(k id) bool {
		got = append(got, k)
		return true
	})

	assert.Equal(t, []id{0, 3, 64, 200}, got)

	s.Clear(64)
	s.Clear(5000)
	assert.Equal(t, 3, s.Size())

	got = got[:0]

	s.Range(func(k id) bool {
		got = append(got, k)
		return len(got) < 2
	})

	assert.Equal(t, []id{0, 3}, got)

	s.Reset()
	assert.Equal(t, 0, s.Size())
}

func TestBitsNegativeKey(t *testing.T) {
	var s Bits[id]

	assert.Panics(t, func() { s.Set(-1) })
}
