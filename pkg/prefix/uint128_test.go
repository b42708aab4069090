package prefix

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUint128Shift(t *testing.T) {
	one := Uint128{Lo: 1}

	assert.Equal(t, Uint128{Lo: 2}, one.Lsh(1))
	assert.Equal(t, Uint128{Hi: 1}, one.Lsh(64))
	assert.Equal(t, Uint128{Hi: 1 << 63}, one.Lsh(127))
	assert.Equal(t, Uint128{}, one.Lsh(128))

	high := Uint128{Hi: 1 << 63}
	assert.Equal(t, Uint128{Hi: 1 << 62}, high.Rsh(1))
	assert.Equal(t, Uint128{Lo: 1 << 63}, high.Rsh(64))
	assert.Equal(t, one, high.Rsh(127))
	assert.Equal(t, Uint128{}, high.Rsh(128))
}

func TestUint128Compare(t *testing.T) {
	a := Uint128{Hi: 1, Lo: 0}
	b := Uint128{Hi: 0, Lo: ^uint64(0)}

	assert.Equal(t, 1, a.Compare(b))
	assert.Equal(t, -1, b.Compare(a))
	assert.Equal(t, 0, a.Compare(a))
}

func TestUint128Bitwise(t *testing.T) {
	a := Uint128{Hi: 0xf0f0, Lo: 0x0f0f}
	b := Uint128{Hi: 0xff00, Lo: 0x00ff}

	assert.Equal(t, Uint128{Hi: 0xf000, Lo: 0x000f}, a.And(b))
	assert.Equal(t, Uint128{Hi: 0xfff0, Lo: 0x0fff}, a.Or(b))
	assert.Equal(t, Uint128{}, a.And(a.Not()))
	assert.True(t, Uint128{}.IsZero())
	assert.False(t, a.IsZero())
}

func TestMask128(t *testing.T) {
	assert.Equal(t, Uint128{}, mask128(0))
	assert.Equal(t, Uint128{Hi: ^uint64(0)}, mask128(64))
	assert.Equal(t, Uint128{Hi: ^uint64(0), Lo: ^uint64(0)}, mask128(128))
	assert.Equal(t, Uint128{Hi: 0xffffffff00000000}, mask128(32))
}

func TestUint128LeadingOnes(t *testing.T) {
	assert.Equal(t, 0, Uint128{}.LeadingOnes())
	assert.Equal(t, 128, mask128(128).LeadingOnes())
	assert.Equal(t, 64, mask128(64).LeadingOnes())
	assert.Equal(t, 33, mask128(33).LeadingOnes())
}
