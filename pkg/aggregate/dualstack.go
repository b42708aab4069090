package aggregate

import (
	"sync"

	"github.com/zan8in/libra/pkg/prefix"
)

// DualStack owns one working set per address family and aggregates the
// two independently. Results always come out IPv4 first, then IPv6.
type DualStack struct {
	v4 []prefix.Prefix[prefix.V4]
	v6 []prefix.Prefix[prefix.V6]
}

func NewDualStack() *DualStack {
	return &DualStack{}
}

// Add routes a parsed input to its family's working set, canonicalizing
// the network address. Acceptance policy (host bits, family and length
// filters) is the caller's job.
func (d *DualStack) Add(n prefix.IPOrNet) {
	if n.Is4() {
		p := prefix.Prefix[prefix.V4]{Addr: prefix.V4FromAddr(n.Addr()), Len: n.PrefixLen()}
		d.v4 = append(d.v4, p.Masked())
		return
	}
	p := prefix.Prefix[prefix.V6]{Addr: prefix.V6FromAddr(n.Addr()), Len: n.PrefixLen()}
	d.v6 = append(d.v6, p.Masked())
}

// Len returns the number of prefixes currently held across both families.
func (d *DualStack) Len() int {
	return len(d.v4) + len(d.v6)
}

// Finalize replaces both working sets with their aggregated form. The
// two families share no state, so they run fork-join on two goroutines.
func (d *DualStack) Finalize() {
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		d.v4 = Aggregate(d.v4)
	}()
	go func() {
		defer wg.Done()
		d.v6 = Aggregate(d.v6)
	}()
	wg.Wait()
}

func (d *DualStack) V4() []prefix.Prefix[prefix.V4] { return d.v4 }

func (d *DualStack) V6() []prefix.Prefix[prefix.V6] { return d.v6 }

// Prefixes streams every IPv4 prefix in sorted order, then every IPv6
// prefix, in CIDR notation. The underlying sets are retained, so the
// stream can be taken more than once.
func (d *DualStack) Prefixes() <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		for _, p := range d.v4 {
			ch <- p.String()
		}
		for _, p := range d.v6 {
			ch <- p.String()
		}
	}()
	return ch
}
