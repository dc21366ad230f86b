package inflight

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroup_DeduplicatesConcurrentCallers(t *testing.T) {
	var g Group[int]
	var calls atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})

	fn := func() (int, error) {
		n := calls.Add(1)
		if n == 1 {
			close(started)
			<-release
		}
		return int(n), nil
	}

	const callers = 8
	results := make([]int, callers)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		v, _, err := g.Do("2024-06-01", fn)
		assert.NoError(t, err)
		results[0] = v
	}()
	<-started

	for i := 1; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, _, err := g.Do("2024-06-01", fn)
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}
	// give the followers time to join the pending call
	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, v := range results {
		assert.Equal(t, 1, v)
	}
}

func TestGroup_ClearsKeyAfterSettlement(t *testing.T) {
	var g Group[string]
	var calls int

	fn := func() (string, error) {
		calls++
		return "day", nil
	}

	_, shared, err := g.Do("k", fn)
	require.NoError(t, err)
	assert.False(t, shared)

	_, _, err = g.Do("k", fn)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestGroup_PropagatesErrorAndZeroValue(t *testing.T) {
	var g Group[*int]
	boom := errors.New("boom")

	v, _, err := g.Do("k", func() (*int, error) { return nil, boom })
	require.ErrorIs(t, err, boom)
	assert.Nil(t, v)

	n := 3
	v, _, err = g.Do("k", func() (*int, error) { return &n, nil })
	require.NoError(t, err)
	assert.Equal(t, 3, *v)
}

func TestGroup_IndependentKeys(t *testing.T) {
	var g Group[string]
	a, _, err := g.Do("a", func() (string, error) { return "A", nil })
	require.NoError(t, err)
	b, _, err := g.Do("b", func() (string, error) { return "B", nil })
	require.NoError(t, err)
	assert.Equal(t, "A", a)
	assert.Equal(t, "B", b)
}

func TestLocker_SerializesSameKey(t *testing.T) {
	var l Locker
	var active, peak atomic.Int32
	counter := 0

	const workers = 50
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			unlock := l.Lock("2024-06-01")
			defer unlock()

			n := active.Add(1)
			if n > peak.Load() {
				peak.Store(n)
			}
			v := counter
			time.Sleep(time.Millisecond)
			counter = v + 1
			active.Add(-1)
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, workers, counter)
	assert.Equal(t, int32(1), peak.Load())
	assert.Zero(t, l.held())
}

func TestLocker_IndependentKeysDoNotBlock(t *testing.T) {
	var l Locker
	unlockA := l.Lock("a")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlock := l.Lock("b")
		unlock()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on b waited for a")
	}
}

func TestLocker_UnlockIsIdempotent(t *testing.T) {
	var l Locker
	unlock := l.Lock("k")
	unlock()
	unlock()
	assert.Zero(t, l.held())

	relock := l.Lock("k")
	relock()
}
