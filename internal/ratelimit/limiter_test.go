package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowWithinThreshold(t *testing.T) {
	l := New(5, time.Minute)

	for i := 0; i < 5; i++ {
		ok, _ := l.Allow("10.0.0.1")
		assert.True(t, ok, "attempt %d should be admitted", i+1)
	}
}

func TestDeniesOverThreshold(t *testing.T) {
	l := New(5, time.Minute)

	for i := 0; i < 5; i++ {
		ok, _ := l.Allow("10.0.0.1")
		require.True(t, ok)
	}

	ok, retryAfter := l.Allow("10.0.0.1")
	assert.False(t, ok)
	assert.Greater(t, retryAfter, time.Duration(0))
	assert.LessOrEqual(t, retryAfter, time.Minute)
}

func TestKeysAreIndependent(t *testing.T) {
	l := New(1, time.Minute)

	ok, _ := l.Allow("10.0.0.1")
	require.True(t, ok)
	ok, _ = l.Allow("10.0.0.1")
	require.False(t, ok)

	ok, _ = l.Allow("10.0.0.2")
	assert.True(t, ok, "a different client key must not be affected")
}

func TestWindowReset(t *testing.T) {
	current := time.Now()
	l := New(2, time.Minute)
	l.now = func() time.Time { return current }

	ok, _ := l.Allow("10.0.0.1")
	require.True(t, ok)
	ok, _ = l.Allow("10.0.0.1")
	require.True(t, ok)
	ok, _ = l.Allow("10.0.0.1")
	require.False(t, ok)

	// Once the window elapses the counter restarts at 1.
	current = current.Add(time.Minute)
	ok, _ = l.Allow("10.0.0.1")
	assert.True(t, ok)
	ok, _ = l.Allow("10.0.0.1")
	assert.True(t, ok)
	ok, _ = l.Allow("10.0.0.1")
	assert.False(t, ok)
}

func TestConcurrentSameKey(t *testing.T) {
	const attempts = 100
	l := New(attempts/2, time.Minute)

	var wg sync.WaitGroup
	admitted := make(chan bool, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, _ := l.Allow("10.0.0.1")
			admitted <- ok
		}()
	}
	wg.Wait()
	close(admitted)

	var count int
	for ok := range admitted {
		if ok {
			count++
		}
	}
	assert.Equal(t, attempts/2, count, "exactly the threshold may be admitted")
}
