package common

import (
	geth "github.com/ethereum/go-ethereum/common"
	"golang.org/x/crypto/sha3"
)

func (h Hash) String() string {
	return geth.Hash(h).Hex()
}

// Keccak256 computes the keccak-256 hash over the concatenation of the given
// byte slices.
func Keccak256(data ...[]byte) Hash {
	hasher := sha3.NewLegacyKeccak256()
	for _, d := range data {
		hasher.Write(d)
	}
	var res Hash
	hasher.Sum(res[0:0])
	return res
}
