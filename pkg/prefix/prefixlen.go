package prefix

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var ErrPrefixlen = errors.New("invalid prefix length")

// PrefixlenPair holds the maximum acceptable prefix length per family.
type PrefixlenPair struct {
	V4 uint8
	V6 uint8
}

func DefaultPrefixlenPair() PrefixlenPair {
	return PrefixlenPair{V4: 32, V6: 128}
}

// ParsePrefixlenPair parses "N" (applied to both families, v4 capped at
// 32) or "N,M" ([IPv4],[IPv6]).
func ParsePrefixlenPair(s string) (PrefixlenPair, error) {
	v4s, v6s, found := strings.Cut(s, ",")
	if !found {
		n, err := parseLen(s, 128)
		if err != nil {
			return PrefixlenPair{}, err
		}
		v4 := n
		if v4 > 32 {
			v4 = 32
		}
		return PrefixlenPair{V4: v4, V6: n}, nil
	}

	v4, err := parseLen(v4s, 32)
	if err != nil {
		return PrefixlenPair{}, err
	}
	v6, err := parseLen(v6s, 128)
	if err != nil {
		return PrefixlenPair{}, err
	}
	return PrefixlenPair{V4: v4, V6: v6}, nil
}

func parseLen(s string, max uint8) (uint8, error) {
	n, err := strconv.ParseUint(s, 10, 8)
	if err != nil || n > uint64(max) {
		return 0, errors.Wrap(ErrPrefixlen, s)
	}
	return uint8(n), nil
}

// Allows reports whether the prefix length of n is within the maximum
// configured for its family.
func (p PrefixlenPair) Allows(n IPOrNet) bool {
	if n.Is6() {
		return n.PrefixLen() <= p.V6
	}
	return n.PrefixLen() <= p.V4
}

func (p PrefixlenPair) String() string {
	return strconv.Itoa(int(p.V4)) + "," + strconv.Itoa(int(p.V6))
}
