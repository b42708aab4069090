package prefix

import (
	"math/bits"
	"net/netip"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrAddrSyntax = errors.New("invalid IP address")
	ErrBadMask    = errors.New("invalid subnet or wildcard mask")
	ErrMaskWithV6 = errors.New("mask notation is not valid for an IPv6 address")
	ErrLenRange   = errors.New("prefix length out of range")
)

// IPOrNet is a parsed input token: either a bare address (implicit
// host-length prefix) or an explicit network/length pair. The address is
// kept exactly as written so host-bit detection still works.
type IPOrNet struct {
	addr netip.Addr
	bits uint8
}

// Parse converts one whitespace-delimited token into an IPOrNet.
//
// Accepted forms:
//
//	192.0.2.1                  bare address, implicit /32 (or /128)
//	192.0.2.0/24               CIDR
//	192.0.2.0/255.255.255.0    subnet mask (IPv4 only)
//	192.0.2.0/0.0.0.255        wildcard mask (IPv4 only)
func Parse(token string) (IPOrNet, error) {
	ip, suffix, found := strings.Cut(token, "/")
	if !found {
		addr, err := parseAddr(token)
		if err != nil {
			return IPOrNet{}, err
		}
		return IPOrNet{addr: addr, bits: uint8(addr.BitLen())}, nil
	}

	addr, err := parseAddr(ip)
	if err != nil {
		return IPOrNet{}, err
	}

	if n, err := strconv.ParseUint(suffix, 10, 8); err == nil {
		if n > uint64(addr.BitLen()) {
			return IPOrNet{}, errors.Wrap(ErrLenRange, suffix)
		}
		return IPOrNet{addr: addr, bits: uint8(n)}, nil
	}

	// Not a plain number, so the suffix has to be a dotted mask.
	if !addr.Is4() {
		return IPOrNet{}, ErrMaskWithV6
	}
	pfxlen, err := parseMask(suffix)
	if err != nil {
		return IPOrNet{}, err
	}
	return IPOrNet{addr: addr, bits: pfxlen}, nil
}

func parseAddr(s string) (netip.Addr, error) {
	addr, err := netip.ParseAddr(s)
	if err != nil || addr.Zone() != "" {
		return netip.Addr{}, errors.Wrap(ErrAddrSyntax, s)
	}
	return addr, nil
}

// parseMask converts a dotted subnet mask (contiguous high ones) or
// wildcard mask (contiguous low ones) into a prefix length.
func parseMask(s string) (uint8, error) {
	addr, err := netip.ParseAddr(s)
	if err != nil || !addr.Is4() {
		return 0, errors.Wrap(ErrBadMask, s)
	}
	b := addr.As4()
	m := uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])

	leadOnes := bits.LeadingZeros32(^m)
	if leadOnes > 0 {
		if leadOnes+bits.TrailingZeros32(m) == 32 {
			return uint8(leadOnes), nil
		}
		return 0, errors.Wrap(ErrBadMask, s)
	}
	leadZeros := bits.LeadingZeros32(m)
	if leadZeros+bits.TrailingZeros32(^m) == 32 {
		return uint8(leadZeros), nil
	}
	return 0, errors.Wrap(ErrBadMask, s)
}

// Addr returns the address exactly as it appeared in the token.
func (n IPOrNet) Addr() netip.Addr { return n.addr }

func (n IPOrNet) PrefixLen() uint8 { return n.bits }

func (n IPOrNet) Is4() bool { return n.addr.Is4() }

func (n IPOrNet) Is6() bool { return !n.addr.Is4() }

// Network returns the canonical network address for the stated length.
func (n IPOrNet) Network() netip.Addr {
	return netip.PrefixFrom(n.addr, int(n.bits)).Masked().Addr()
}

// HasHostBits reports whether any bit beyond the prefix length is set.
func (n IPOrNet) HasHostBits() bool { return n.addr != n.Network() }

func (n IPOrNet) String() string {
	return n.addr.String() + "/" + strconv.Itoa(int(n.bits))
}
