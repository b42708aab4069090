package prefix

import "math/bits"

// Uint128 represents a 128-bit unsigned integer as two 64-bit words.
type Uint128 struct {
	Hi, Lo uint64
}

func (x Uint128) And(y Uint128) Uint128 {
	return Uint128{Hi: x.Hi & y.Hi, Lo: x.Lo & y.Lo}
}

func (x Uint128) Or(y Uint128) Uint128 {
	return Uint128{Hi: x.Hi | y.Hi, Lo: x.Lo | y.Lo}
}

func (x Uint128) Not() Uint128 {
	return Uint128{Hi: ^x.Hi, Lo: ^x.Lo}
}

func (x Uint128) IsZero() bool {
	return x.Hi|x.Lo == 0
}

// Lsh shifts x left by k bits (0<=k<=128).
func (x Uint128) Lsh(k uint) Uint128 {
	if k >= 64 {
		return Uint128{Hi: x.Lo << (k - 64), Lo: 0}
	}
	if k == 0 {
		return x
	}
	return Uint128{Hi: x.Hi<<k | x.Lo>>(64-k), Lo: x.Lo << k}
}

// Rsh shifts x right by k bits (0<=k<=128).
func (x Uint128) Rsh(k uint) Uint128 {
	if k >= 64 {
		return Uint128{Hi: 0, Lo: x.Hi >> (k - 64)}
	}
	if k == 0 {
		return x
	}
	return Uint128{Hi: x.Hi >> k, Lo: x.Lo>>k | x.Hi<<(64-k)}
}

func (x Uint128) Compare(y Uint128) int {
	switch {
	case x.Hi < y.Hi:
		return -1
	case x.Hi > y.Hi:
		return 1
	case x.Lo < y.Lo:
		return -1
	case x.Lo > y.Lo:
		return 1
	}
	return 0
}

// LeadingOnes returns the number of leading one bits in x.
func (x Uint128) LeadingOnes() int {
	n := bits.LeadingZeros64(^x.Hi)
	if n == 64 {
		n += bits.LeadingZeros64(^x.Lo)
	}
	return n
}

// mask128 returns a Uint128 with the top n bits set.
func mask128(n uint8) Uint128 {
	return Uint128{Hi: ^uint64(0), Lo: ^uint64(0)}.Lsh(uint(128 - uint(n)))
}
