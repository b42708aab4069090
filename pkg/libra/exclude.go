package libra

import (
	"net"

	"github.com/yl2chen/cidranger"
	"github.com/zan8in/gologger"
	"github.com/zan8in/libra/pkg/prefix"
)

// excluder drops input prefixes fully contained in an excluded prefix,
// before they reach a working set.
type excluder struct {
	ranger cidranger.Ranger
	count  int
}

func newExcluder(tokens []string) (*excluder, error) {
	e := &excluder{ranger: cidranger.NewPCTrieRanger()}

	for _, token := range tokens {
		ipn, err := prefix.Parse(token)
		if err != nil {
			gologger.Warning().Msgf("invalid exclude entry '%s', ignoring (%s)\n", token, err)
			continue
		}
		if err := e.ranger.Insert(cidranger.NewBasicRangerEntry(toIPNet(ipn))); err != nil {
			return nil, err
		}
		e.count++
	}

	return e, nil
}

func toIPNet(ipn prefix.IPOrNet) net.IPNet {
	network := ipn.Network()
	return net.IPNet{
		IP:   network.AsSlice(),
		Mask: net.CIDRMask(int(ipn.PrefixLen()), network.BitLen()),
	}
}

// covers reports whether ipn lies entirely inside an excluded prefix:
// some exclude entry contains the network address with a length no
// longer than ipn's.
func (e *excluder) covers(ipn prefix.IPOrNet) bool {
	if e == nil || e.count == 0 {
		return false
	}

	entries, err := e.ranger.ContainingNetworks(net.IP(ipn.Network().AsSlice()))
	if err != nil {
		return false
	}
	for _, entry := range entries {
		network := entry.Network()
		ones, _ := network.Mask.Size()
		if uint8(ones) <= ipn.PrefixLen() {
			return true
		}
	}
	return false
}
