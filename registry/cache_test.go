package registry

import (
	"testing"

	"github.com/hostlayer/evmreg/common"
	"github.com/stretchr/testify/require"
)

func TestAddressCache_StoresAndRetrievesEntries(t *testing.T) {
	cache := newAddressCache(10)
	evm := common.EvmAddress{0x01}
	native := common.NativeAddress{0x02}

	_, found := cache.get(evm)
	require.False(t, found)

	cache.put(evm, native)
	got, found := cache.get(evm)
	require.True(t, found)
	require.Equal(t, native, got)
}

func TestAddressCache_EvictsWhenFull(t *testing.T) {
	capacity := 16
	cache := newAddressCache(capacity)
	for i := byte(0); i < 32; i++ {
		cache.put(common.EvmAddress{i}, common.NativeAddress{i})
	}
	require.LessOrEqual(t, len(cache.entries), capacity)

	// The most recent entry is always retained.
	got, found := cache.get(common.EvmAddress{31})
	require.True(t, found)
	require.Equal(t, common.NativeAddress{31}, got)
}

func TestAddressCache_DefaultCapacityIsClamped(t *testing.T) {
	capacity := defaultCacheCapacity()
	require.GreaterOrEqual(t, capacity, 1<<10)
	require.LessOrEqual(t, capacity, 1<<20)

	cache := newAddressCache(0)
	require.Equal(t, capacity, cache.capacity)
}
