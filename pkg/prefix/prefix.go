package prefix

import (
	"encoding/binary"
	"net/netip"
	"strconv"
)

// Addr is the fixed-width unsigned integer form of one address family.
// Both families satisfy it so the aggregation engine can be written once
// and instantiated twice.
type Addr[A any] interface {
	comparable
	// Truncate clears every bit beyond the first n.
	Truncate(n uint8) A
	Compare(A) int
	Bits() uint8
	String() string
}

// V4 is an IPv4 address as a big-endian uint32.
type V4 uint32

func (a V4) Truncate(n uint8) V4 {
	if n >= 32 {
		return a
	}
	return a &^ (V4(1)<<(32-n) - 1)
}

func (a V4) Compare(b V4) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (a V4) Bits() uint8 { return 32 }

func (a V4) String() string {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(a))
	return netip.AddrFrom4(b).String()
}

// V6 is an IPv6 address as a 128-bit unsigned integer.
type V6 Uint128

func (a V6) Truncate(n uint8) V6 {
	if n >= 128 {
		return a
	}
	return V6(Uint128(a).And(mask128(n)))
}

func (a V6) Compare(b V6) int { return Uint128(a).Compare(Uint128(b)) }

func (a V6) Bits() uint8 { return 128 }

func (a V6) String() string {
	var b [16]byte
	binary.BigEndian.PutUint64(b[:8], a.Hi)
	binary.BigEndian.PutUint64(b[8:], a.Lo)
	return netip.AddrFrom16(b).String()
}

// V4FromAddr converts a parsed IPv4 address to its integer form.
func V4FromAddr(addr netip.Addr) V4 {
	b := addr.As4()
	return V4(binary.BigEndian.Uint32(b[:]))
}

// V6FromAddr converts a parsed IPv6 address to its integer form.
func V6FromAddr(addr netip.Addr) V6 {
	b := addr.As16()
	return V6(Uint128{
		Hi: binary.BigEndian.Uint64(b[:8]),
		Lo: binary.BigEndian.Uint64(b[8:]),
	})
}

// Prefix is a canonical (network, length) pair for one family.
type Prefix[A Addr[A]] struct {
	Addr A
	Len  uint8
}

// Masked returns p with every bit beyond p.Len cleared.
func (p Prefix[A]) Masked() Prefix[A] {
	return Prefix[A]{Addr: p.Addr.Truncate(p.Len), Len: p.Len}
}

// Contains reports whether o lies entirely inside p.
// Both prefixes must be in canonical form.
func (p Prefix[A]) Contains(o Prefix[A]) bool {
	return o.Len >= p.Len && o.Addr.Truncate(p.Len) == p.Addr
}

// IsSiblingOf reports whether p and o are the two halves of the same
// parent block: equal length above zero, networks identical except for
// the last prefix bit.
func (p Prefix[A]) IsSiblingOf(o Prefix[A]) bool {
	if p.Len != o.Len || p.Len == 0 || p.Addr == o.Addr {
		return false
	}
	return p.Addr.Truncate(p.Len-1) == o.Addr.Truncate(p.Len-1)
}

// Parent returns the one-bit-shorter block containing p.
// Must not be called on a zero-length prefix.
func (p Prefix[A]) Parent() Prefix[A] {
	return Prefix[A]{Addr: p.Addr.Truncate(p.Len - 1), Len: p.Len - 1}
}

// Compare orders prefixes by network address, ties broken by length.
func (p Prefix[A]) Compare(o Prefix[A]) int {
	if c := p.Addr.Compare(o.Addr); c != 0 {
		return c
	}
	switch {
	case p.Len < o.Len:
		return -1
	case p.Len > o.Len:
		return 1
	}
	return 0
}

func (p Prefix[A]) String() string {
	return p.Addr.String() + "/" + strconv.Itoa(int(p.Len))
}
