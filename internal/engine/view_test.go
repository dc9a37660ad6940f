package engine

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestView_CachesByKey(t *testing.T) {
	var v View[int]
	calls := 0
	fn := func() int { calls++; return calls }

	assert.Equal(t, 1, v.Get(1, fn))
	assert.Equal(t, 1, v.Get(1, fn))
	assert.Equal(t, 2, v.Get(2, fn))
	assert.Equal(t, 2, calls)
	assert.Equal(t, 3, v.Get(1, fn), "only the latest key is kept")
}

func TestView_CallerGetsOwnResult(t *testing.T) {
	var v View[string]
	started := make(chan struct{})
	release := make(chan struct{})

	var wg sync.WaitGroup
	var old string
	wg.Add(1)
	go func() {
		defer wg.Done()
		old = v.Get(1, func() string {
			close(started)
			<-release
			return "old"
		})
	}()

	<-started
	assert.Equal(t, "new", v.Get(2, func() string { return "new" }))
	close(release)
	wg.Wait()

	assert.Equal(t, "old", old, "slow caller still gets the value it asked for")
	assert.Equal(t, "new", v.Get(2, func() string { return "recomputed" }), "older result does not replace the cache")
}
