package service

import (
	"hash/fnv"
	"sync"
)

const defaultLockShards = 64

// bookingLock serialises the check-then-book sequence per car. Car ids map to a
// fixed set of mutex shards by consistent hashing, so two bookings for the same
// car can never interleave between the availability read and the rental write
// inside one process. Cross-process atomicity would require a server-side
// transaction.
type bookingLock struct {
	shards []sync.Mutex
}

// newBookingLock creates a bookingLock with numShards mutex shards.
// If numShards <= 0, defaultLockShards is used.
func newBookingLock(numShards int) *bookingLock {
	if numShards <= 0 {
		numShards = defaultLockShards
	}
	return &bookingLock{shards: make([]sync.Mutex, numShards)}
}

// Lock acquires the shard owning carID and returns its unlock function.
func (l *bookingLock) Lock(carID string) func() {
	m := &l.shards[l.shardIndex(carID)]
	m.Lock()
	return m.Unlock
}

// shardIndex maps a car id deterministically to a shard index.
func (l *bookingLock) shardIndex(carID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(carID))
	return int(h.Sum32()) % len(l.shards)
}
