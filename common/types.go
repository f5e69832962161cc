package common

import (
	"fmt"

	geth "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// EvmAddress is a 20-byte account identifier as used by the externally
// visible EVM interface. Addresses are always externally supplied; this
// library never mints them.
type EvmAddress [20]byte

// NativeAddress is a host-ledger account identifier. The host addresses
// accounts by field elements, so the value is a 32-byte big-endian integer
// with the top five bits clear.
type NativeAddress [32]byte

// ClassReference is a versioned identifier of a deployable account template
// registered on the host ledger.
type ClassReference [32]byte

// Hash is a 32-byte keccak hash.
type Hash [32]byte

// ClassKind enumerates the account template kinds tracked by the registry.
type ClassKind byte

const (
	// ClassKindPrecompiles is the template of the precompile dispatcher.
	ClassKindPrecompiles ClassKind = iota
	// ClassKindContractAccount is the template backing contract accounts.
	ClassKindContractAccount
	// ClassKindExternallyOwnedAccount is the template backing EOAs.
	ClassKindExternallyOwnedAccount
	// ClassKindAccountProxy is the minimal proxy deployed per EVM address.
	ClassKindAccountProxy

	numClassKinds
)

// IsValid checks whether the kind is one of the supported template kinds.
func (k ClassKind) IsValid() bool {
	return k < numClassKinds
}

func (k ClassKind) String() string {
	switch k {
	case ClassKindPrecompiles:
		return "precompiles"
	case ClassKindContractAccount:
		return "contract-account"
	case ClassKindExternallyOwnedAccount:
		return "eoa"
	case ClassKindAccountProxy:
		return "account-proxy"
	}
	return fmt.Sprintf("unknown-kind-%d", byte(k))
}

func (a EvmAddress) String() string {
	return geth.Address(a).Hex()
}

// HexToEvmAddress parses a 0x-prefixed hex string into an EvmAddress.
func HexToEvmAddress(s string) (EvmAddress, error) {
	if !geth.IsHexAddress(s) {
		return EvmAddress{}, fmt.Errorf("invalid EVM address: %q", s)
	}
	return EvmAddress(geth.HexToAddress(s)), nil
}

func (a NativeAddress) String() string {
	return geth.Hash(a).Hex()
}

// IsZero checks whether the address is the all-zero address, which is not a
// valid account on the host ledger.
func (a NativeAddress) IsZero() bool {
	return a == NativeAddress{}
}

// HexToNativeAddress parses a 0x-prefixed hex string of up to 32 bytes into
// a NativeAddress.
func HexToNativeAddress(s string) (NativeAddress, error) {
	data, err := hexutil.Decode(s)
	if err != nil {
		return NativeAddress{}, fmt.Errorf("invalid native address %q: %w", s, err)
	}
	if len(data) > 32 {
		return NativeAddress{}, fmt.Errorf("invalid native address %q: too long", s)
	}
	var res NativeAddress
	copy(res[32-len(data):], data)
	return res, nil
}

func (r ClassReference) String() string {
	return geth.Hash(r).Hex()
}

// IsZero checks whether the reference is unset.
func (r ClassReference) IsZero() bool {
	return r == ClassReference{}
}

// HexToClassReference parses a 0x-prefixed hex string of up to 32 bytes into
// a ClassReference.
func HexToClassReference(s string) (ClassReference, error) {
	res, err := HexToNativeAddress(s)
	return ClassReference(res), err
}
