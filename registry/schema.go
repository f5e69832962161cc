package registry

import (
	"encoding/binary"
	"fmt"

	"github.com/golang/snappy"
	"github.com/holiman/uint256"
	"github.com/hostlayer/evmreg/common"
)

// Persisted state layout: a handful of scalar configuration slots plus the
// append-only address mapping table and its reverse index. All keys carry a
// short string prefix so backends and tooling can enumerate by table.
var (
	keyNativeToken  = []byte("cfg/token")
	keyChainContext = []byte("ctx/current")

	prefixClass   = []byte("cls/")
	prefixMapping = []byte("map/")
	prefixReverse = []byte("rev/")
	prefixCode    = []byte("code/")
)

func keyClassReference(kind common.ClassKind) []byte {
	return append(append([]byte{}, prefixClass...), byte(kind))
}

func keyMapping(evm common.EvmAddress) []byte {
	return append(append([]byte{}, prefixMapping...), evm[:]...)
}

func keyReverse(native common.NativeAddress) []byte {
	return append(append([]byte{}, prefixReverse...), native[:]...)
}

func keyCode(evm common.EvmAddress) []byte {
	return append(append([]byte{}, prefixCode...), evm[:]...)
}

// mappingKeyToEvmAddress recovers the EVM address from a mapping table key.
func mappingKeyToEvmAddress(key []byte) (common.EvmAddress, error) {
	if len(key) != len(prefixMapping)+20 {
		return common.EvmAddress{}, fmt.Errorf("invalid mapping key of length %d", len(key))
	}
	return common.EvmAddress(key[len(prefixMapping):]), nil
}

// encodeChainContext encodes the block context as one fixed-size value so a
// single write replaces it atomically.
func encodeChainContext(context ChainContext) []byte {
	res := make([]byte, 32+32+8)
	copy(res[0:32], context.Coinbase[:])
	baseFee := context.BaseFee
	if baseFee == nil {
		baseFee = uint256.NewInt(0)
	}
	fee := baseFee.Bytes32()
	copy(res[32:64], fee[:])
	binary.BigEndian.PutUint64(res[64:], context.BlockGasLimit)
	return res
}

func decodeChainContext(data []byte) (ChainContext, error) {
	if len(data) != 32+32+8 {
		return ChainContext{}, fmt.Errorf("invalid chain context encoding of length %d", len(data))
	}
	var res ChainContext
	copy(res.Coinbase[:], data[0:32])
	res.BaseFee = new(uint256.Int).SetBytes(data[32:64])
	res.BlockGasLimit = binary.BigEndian.Uint64(data[64:])
	return res, nil
}

// Contract code blobs are compressed at rest.

func encodeCode(code []byte) []byte {
	return snappy.Encode(nil, code)
}

func decodeCode(data []byte) ([]byte, error) {
	code, err := snappy.Decode(nil, data)
	if err != nil {
		return nil, fmt.Errorf("corrupted code blob: %w", err)
	}
	return code, nil
}
