package registry

import (
	"github.com/hostlayer/evmreg/common"
	"github.com/pbnjay/memory"
)

// addressCache is a bounded cache of resolved address mappings. Mappings are
// immutable, so entries never need invalidation, only eviction. Access is
// guarded by the registry's lock.
type addressCache struct {
	capacity int
	entries  map[common.EvmAddress]common.NativeAddress
}

func newAddressCache(capacity int) *addressCache {
	if capacity <= 0 {
		capacity = defaultCacheCapacity()
	}
	return &addressCache{
		capacity: capacity,
		entries:  make(map[common.EvmAddress]common.NativeAddress, capacity),
	}
}

// defaultCacheCapacity sizes the cache relative to the total system memory:
// one entry per MiB, clamped to a sane range.
func defaultCacheCapacity() int {
	const minCapacity = 1 << 10
	const maxCapacity = 1 << 20
	capacity := int(memory.TotalMemory() / (1 << 20))
	if capacity < minCapacity {
		return minCapacity
	}
	if capacity > maxCapacity {
		return maxCapacity
	}
	return capacity
}

func (c *addressCache) get(evm common.EvmAddress) (common.NativeAddress, bool) {
	native, found := c.entries[evm]
	return native, found
}

func (c *addressCache) put(evm common.EvmAddress, native common.NativeAddress) {
	if len(c.entries) >= c.capacity {
		// Evict an arbitrary entry; mappings are cheap to reload.
		for key := range c.entries {
			delete(c.entries, key)
			break
		}
	}
	c.entries[evm] = native
}
