// Package keymutex provides a fixed pool of mutexes indexed by key hash,
// used to serialize operations on a single aggregate (one booking, one
// resource calendar) without holding a global lock.
package keymutex

import (
	"hash/fnv"
	"sync"

	"github.com/google/uuid"
)

const defaultShards = 64

type KeyMutex struct {
	shards []sync.Mutex
}

func New() *KeyMutex {
	return NewSharded(defaultShards)
}

func NewSharded(n int) *KeyMutex {
	if n <= 0 {
		n = defaultShards
	}
	return &KeyMutex{shards: make([]sync.Mutex, n)}
}

// Lock acquires the mutex shard for key and returns its unlock func.
// Distinct keys may share a shard; that only costs parallelism, never
// correctness.
func (m *KeyMutex) Lock(key uuid.UUID) func() {
	shard := &m.shards[m.index(key)]
	shard.Lock()
	return shard.Unlock
}

func (m *KeyMutex) index(key uuid.UUID) int {
	h := fnv.New32a()
	h.Write(key[:])
	return int(h.Sum32() % uint32(len(m.shards)))
}
