package registry

import (
	"github.com/hostlayer/evmreg/common"
)

// deploymentPrefix is the domain separator of account deployments, mirroring
// the host ledger's contract address computation.
var deploymentPrefix = []byte("evmreg_account")

// DeriveAddress computes the native address of a deployment the same way the
// host ledger does: a keccak over the deploying identity, the salt, the
// class reference, and the hash of the constructor arguments, masked to the
// host's field. The result is reproducible off-chain by any observer who
// knows the inputs.
func DeriveAddress(
	ref common.ClassReference,
	constructorArgs []byte,
	salt common.Hash,
	deployer common.NativeAddress,
) common.NativeAddress {
	argsHash := common.Keccak256(constructorArgs)
	h := common.Keccak256(deploymentPrefix, deployer[:], salt[:], ref[:], argsHash[:])
	res := common.NativeAddress(h)
	res[0] &= 0x07 // host addresses are field elements below 2^251
	return res
}

// AccountAddress derives the native address of the account proxy instance
// backing the given EVM address.
func AccountAddress(
	proxyRef common.ClassReference,
	deployer common.NativeAddress,
	evm common.EvmAddress,
) common.NativeAddress {
	return DeriveAddress(proxyRef, accountConstructorArgs(evm), accountSalt(evm), deployer)
}

// accountSalt is the deployment salt of an account: the EVM address,
// left-padded to 32 bytes.
func accountSalt(evm common.EvmAddress) common.Hash {
	var salt common.Hash
	copy(salt[12:], evm[:])
	return salt
}

// accountConstructorArgs is the constructor argument blob of an account
// proxy: the EVM address it represents, left-padded to 32 bytes.
func accountConstructorArgs(evm common.EvmAddress) []byte {
	args := make([]byte, 32)
	copy(args[12:], evm[:])
	return args
}
