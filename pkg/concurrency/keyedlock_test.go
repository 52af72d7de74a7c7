package concurrency

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyedLockSerializes(t *testing.T) {
	locks := NewKeyedLock()

	var counter int
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			unlock := locks.Lock("XP")
			defer unlock()

			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
}

func TestKeyedLockIndependentKeys(t *testing.T) {
	locks := NewKeyedLock()

	unlockA := locks.Lock("XP")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlockB := locks.Lock("BTC")
		unlockB()
		close(done)
	}()

	// a held XP lock must not block BTC
	<-done
}
