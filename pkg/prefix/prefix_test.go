package prefix

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func p4(t *testing.T, s string) Prefix[V4] {
	t.Helper()
	p, err := netip.ParsePrefix(s)
	require.NoError(t, err)
	return Prefix[V4]{Addr: V4FromAddr(p.Addr()), Len: uint8(p.Bits())}
}

func p6(t *testing.T, s string) Prefix[V6] {
	t.Helper()
	p, err := netip.ParsePrefix(s)
	require.NoError(t, err)
	return Prefix[V6]{Addr: V6FromAddr(p.Addr()), Len: uint8(p.Bits())}
}

func TestMasked(t *testing.T) {
	p := Prefix[V4]{Addr: V4FromAddr(netip.MustParseAddr("198.51.100.123")), Len: 24}
	assert.Equal(t, p4(t, "198.51.100.0/24"), p.Masked())

	v6 := Prefix[V6]{Addr: V6FromAddr(netip.MustParseAddr("2001:db8::23ab:f007")), Len: 64}
	assert.Equal(t, p6(t, "2001:db8::/64"), v6.Masked())

	zero := Prefix[V4]{Addr: V4FromAddr(netip.MustParseAddr("255.255.255.255")), Len: 0}
	assert.Equal(t, p4(t, "0.0.0.0/0"), zero.Masked())
}

func TestContains(t *testing.T) {
	outer := p4(t, "192.0.2.0/24")

	assert.True(t, outer.Contains(p4(t, "192.0.2.128/25")))
	assert.True(t, outer.Contains(outer))
	assert.False(t, outer.Contains(p4(t, "192.0.3.0/25")))
	// a longer prefix never contains a shorter one
	assert.False(t, p4(t, "192.0.2.0/25").Contains(outer))

	all := p4(t, "0.0.0.0/0")
	assert.True(t, all.Contains(outer))

	assert.True(t, p6(t, "2001:db8::/32").Contains(p6(t, "2001:db8:1::/48")))
	assert.False(t, p6(t, "2001:db8::/32").Contains(p6(t, "2001:db9::/48")))
}

func TestSiblings(t *testing.T) {
	left := p4(t, "192.0.2.0/25")
	right := p4(t, "192.0.2.128/25")

	assert.True(t, left.IsSiblingOf(right))
	assert.True(t, right.IsSiblingOf(left))
	assert.False(t, left.IsSiblingOf(left))

	// adjacent but misaligned: together they do not form 10.0.1.0/23
	assert.False(t, p4(t, "10.0.1.0/24").IsSiblingOf(p4(t, "10.0.2.0/24")))
	// equal networks with different lengths are nested, not siblings
	assert.False(t, p4(t, "192.0.2.0/24").IsSiblingOf(p4(t, "192.0.2.0/25")))

	assert.True(t, p6(t, "2001:db8::/33").IsSiblingOf(p6(t, "2001:db8:8000::/33")))
	assert.False(t, p6(t, "2001:db8::/33").IsSiblingOf(p6(t, "2001:db9::/33")))
}

func TestParent(t *testing.T) {
	assert.Equal(t, p4(t, "192.0.2.0/24"), p4(t, "192.0.2.128/25").Parent())
	assert.Equal(t, p4(t, "192.0.2.0/24"), p4(t, "192.0.2.0/25").Parent())
	assert.Equal(t, p6(t, "2001:db8::/32"), p6(t, "2001:db8:8000::/33").Parent())
}

func TestCompare(t *testing.T) {
	assert.Equal(t, -1, p4(t, "10.0.0.0/8").Compare(p4(t, "10.1.0.0/16")))
	assert.Equal(t, 1, p4(t, "10.1.0.0/16").Compare(p4(t, "10.0.0.0/8")))
	// same network: shorter prefix sorts first
	assert.Equal(t, -1, p4(t, "10.0.0.0/8").Compare(p4(t, "10.0.0.0/16")))
	assert.Equal(t, 0, p4(t, "10.0.0.0/8").Compare(p4(t, "10.0.0.0/8")))
}

func TestPrefixString(t *testing.T) {
	assert.Equal(t, "192.0.2.0/24", p4(t, "192.0.2.0/24").String())
	assert.Equal(t, "0.0.0.0/0", p4(t, "0.0.0.0/0").String())
	assert.Equal(t, "2001:db8::/64", p6(t, "2001:db8::/64").String())
	assert.Equal(t, "::/0", p6(t, "::/0").String())
}
