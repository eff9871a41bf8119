package service

import (
	"sync"
	"testing"
)

func TestBookingLock_SerialisesSameCar(t *testing.T) {
	lock := newBookingLock(4)

	const workers = 16
	const iterations = 100
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				unlock := lock.Lock("car-1")
				counter++
				unlock()
			}
		}()
	}
	wg.Wait()

	if counter != workers*iterations {
		t.Fatalf("counter = %d, want %d; critical section not serialised", counter, workers*iterations)
	}
}

func TestBookingLock_DeterministicSharding(t *testing.T) {
	lock := newBookingLock(8)
	for _, id := range []string{"car-1", "car-2", ""} {
		a := lock.shardIndex(id)
		b := lock.shardIndex(id)
		if a != b {
			t.Fatalf("shard index for %q not stable: %d vs %d", id, a, b)
		}
		if a < 0 || a >= 8 {
			t.Fatalf("shard index %d out of range", a)
		}
	}
}

func TestBookingLock_DefaultShards(t *testing.T) {
	lock := newBookingLock(0)
	if len(lock.shards) != defaultLockShards {
		t.Fatalf("shards = %d, want %d", len(lock.shards), defaultLockShards)
	}
}
