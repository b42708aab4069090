package result

import (
	"fmt"
	"sync"

	"go.uber.org/multierr"
)

// Rejection records one discarded input token and why it was dropped.
type Rejection struct {
	Token  string
	Reason error
}

func (r Rejection) Error() string {
	return fmt.Sprintf("'%s' is not a valid IP network (%s)", r.Token, r.Reason)
}

// Result collects per-token diagnostics while processing continues.
// Safe for concurrent use by the parser workers.
type Result struct {
	sync.RWMutex
	rejected  []Rejection
	accepted4 int
	accepted6 int
}

func NewResult() *Result {
	return &Result{}
}

func (r *Result) AddRejection(token string, reason error) {
	r.Lock()
	defer r.Unlock()
	r.rejected = append(r.rejected, Rejection{Token: token, Reason: reason})
}

func (r *Result) AddAccepted(is6 bool) {
	r.Lock()
	defer r.Unlock()
	if is6 {
		r.accepted6++
	} else {
		r.accepted4++
	}
}

func (r *Result) Rejections() []Rejection {
	r.RLock()
	defer r.RUnlock()
	out := make([]Rejection, len(r.rejected))
	copy(out, r.rejected)
	return out
}

func (r *Result) HasRejections() bool {
	r.RLock()
	defer r.RUnlock()
	return len(r.rejected) > 0
}

func (r *Result) Accepted4() int {
	r.RLock()
	defer r.RUnlock()
	return r.accepted4
}

func (r *Result) Accepted6() int {
	r.RLock()
	defer r.RUnlock()
	return r.accepted6
}

// Err rolls every collected rejection into a single inspectable error,
// or nil when nothing was rejected.
func (r *Result) Err() error {
	r.RLock()
	defer r.RUnlock()
	var err error
	for _, rej := range r.rejected {
		err = multierr.Append(err, rej)
	}
	return err
}
