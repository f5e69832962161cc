package registry

import (
	"bytes"
	"testing"

	"github.com/holiman/uint256"
	"github.com/hostlayer/evmreg/common"
	"github.com/stretchr/testify/require"
)

func TestSchema_KeysOfDifferentTablesDoNotOverlap(t *testing.T) {
	evm := common.EvmAddress{0x01}
	native := common.NativeAddress{0x02}
	keys := [][]byte{
		keyNativeToken,
		keyChainContext,
		keyClassReference(common.ClassKindAccountProxy),
		keyMapping(evm),
		keyReverse(native),
		keyCode(evm),
	}
	for i := range keys {
		for j := range keys {
			if i == j {
				continue
			}
			require.False(t, bytes.HasPrefix(keys[i], keys[j]),
				"key %q is a prefix of %q", keys[j], keys[i])
		}
	}
}

func TestSchema_MappingKeyRoundTrip(t *testing.T) {
	evm := common.EvmAddress{0x12, 0x34}
	recovered, err := mappingKeyToEvmAddress(keyMapping(evm))
	require.NoError(t, err)
	require.Equal(t, evm, recovered)

	_, err = mappingKeyToEvmAddress([]byte("map/short"))
	require.Error(t, err)
}

func TestSchema_ChainContextRoundTrip(t *testing.T) {
	in := ChainContext{
		Coinbase:      common.NativeAddress{0x01, 0x02},
		BaseFee:       uint256.NewInt(1_000_000_000),
		BlockGasLimit: 30_000_000,
	}
	out, err := decodeChainContext(encodeChainContext(in))
	require.NoError(t, err)
	require.Equal(t, in.Coinbase, out.Coinbase)
	require.Equal(t, in.BaseFee, out.BaseFee)
	require.Equal(t, in.BlockGasLimit, out.BlockGasLimit)
}

func TestSchema_ChainContextNilBaseFeeEncodesAsZero(t *testing.T) {
	out, err := decodeChainContext(encodeChainContext(ChainContext{}))
	require.NoError(t, err)
	require.True(t, out.BaseFee.IsZero())
}

func TestSchema_ChainContextRejectsTruncatedEncoding(t *testing.T) {
	_, err := decodeChainContext([]byte{0x01, 0x02})
	require.Error(t, err)
}

func TestSchema_CodeRoundTrip(t *testing.T) {
	codes := [][]byte{
		{},
		{0x60, 0x5f, 0x5f, 0x53},
		bytes.Repeat([]byte{0x5b}, 24_000),
	}
	for _, code := range codes {
		decoded, err := decodeCode(encodeCode(code))
		require.NoError(t, err)
		require.True(t, bytes.Equal(code, decoded))
	}
}

func TestSchema_CodeDecodingRejectsCorruptedBlob(t *testing.T) {
	_, err := decodeCode([]byte{0xff, 0xff, 0xff, 0xff})
	require.Error(t, err)
}
