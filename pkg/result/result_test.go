package result

import (
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestResultCollection(t *testing.T) {
	r := NewResult()
	assert.False(t, r.HasRejections())
	assert.NoError(t, r.Err())

	reason := errors.New("invalid IP address")
	r.AddRejection("banana", reason)
	r.AddRejection("192.0.2.0/33", errors.New("prefix length out of range"))
	r.AddAccepted(false)
	r.AddAccepted(false)
	r.AddAccepted(true)

	assert.True(t, r.HasRejections())
	assert.Equal(t, 2, r.Accepted4())
	assert.Equal(t, 1, r.Accepted6())

	rejections := r.Rejections()
	require.Len(t, rejections, 2)
	assert.Equal(t, "banana", rejections[0].Token)
	assert.Equal(t, reason, rejections[0].Reason)
	assert.Contains(t, rejections[0].Error(), "banana")

	err := r.Err()
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 2)
}

func TestResultConcurrent(t *testing.T) {
	r := NewResult()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.AddRejection("bad", errors.New("nope"))
			r.AddAccepted(true)
			r.AddAccepted(false)
		}()
	}
	wg.Wait()

	assert.Len(t, r.Rejections(), 50)
	assert.Equal(t, 50, r.Accepted4())
	assert.Equal(t, 50, r.Accepted6())
}
