// Package registry implements the dual-address account registry and
// chain-context store backing an EVM compatibility layer hosted on a
// non-EVM ledger. It maps externally visible EVM addresses to natively
// deployed account instances, provisions missing accounts deterministically
// and idempotently, and holds the per-block EVM context consumed by the
// interpreter.
package registry

import (
	"fmt"
	"path/filepath"

	"github.com/holiman/uint256"
	"github.com/hostlayer/evmreg/common"
	"github.com/hostlayer/evmreg/deploy"
	"github.com/hostlayer/evmreg/registry/store"
)

const (
	// ErrNotConfigured is returned when reading a configuration slot that
	// was never written. Recoverable by performing the setup write.
	ErrNotConfigured = common.ConstError("not configured")
	// ErrAlreadyConfigured is returned when re-setting an immutable
	// configuration singleton.
	ErrAlreadyConfigured = common.ConstError("already configured")
	// ErrUnauthorized is returned when a privileged write is attempted by
	// a caller lacking the upgrade privilege.
	ErrUnauthorized = common.ConstError("unauthorized")
	// ErrDerivationCollision indicates that two distinct EVM addresses
	// derived the same native address. This is an invariant violation and
	// always fatal; the colliding mapping is never written.
	ErrDerivationCollision = common.ConstError("derivation collision")
	// ErrAlreadyRegistered is returned when registering an EVM address
	// that already has a mapping.
	ErrAlreadyRegistered = common.ConstError("account already registered")
	// ErrNotRegistered is returned for operations on EVM addresses
	// without a mapping.
	ErrNotRegistered = common.ConstError("account not registered")
	// ErrNotAccount is returned when a self-registration is attempted by
	// a caller that is not the account derived for the EVM address.
	ErrNotAccount = common.ConstError("caller is not the target account")
	// ErrNoDeployer is returned by provisioning operations when the
	// registry was opened without a deployment backend.
	ErrNoDeployer = common.ConstError("no deployer configured")
)

// ChainContext is the per-block EVM context. It is replaced as a whole at
// every block boundary; no history is retained.
type ChainContext struct {
	Coinbase      common.NativeAddress
	BaseFee       *uint256.Int
	BlockGasLimit uint64
}

// Registry is the single source of truth for the EVM-to-native address
// mapping, the account template references, and the current block context.
//
// All operations are synchronous reads or writes against persistent state.
// Once Resolve has returned a native address for an EVM address, every later
// call returns the identical address.
type Registry interface {
	// --- Address Resolution ---

	// Resolve returns the native account backing the given EVM address,
	// provisioning an externally owned account on first use.
	Resolve(evm common.EvmAddress) (common.NativeAddress, error)

	// LookupOnly returns the mapped native address without triggering any
	// provisioning. The second result indicates whether a mapping exists.
	LookupOnly(evm common.EvmAddress) (common.NativeAddress, bool, error)

	// ReverseLookup returns the EVM address mapped to the given native
	// account, if any.
	ReverseLookup(native common.NativeAddress) (common.EvmAddress, bool, error)

	// DerivedAddress computes the native address the given EVM address
	// would be provisioned at, without deploying anything.
	DerivedAddress(evm common.EvmAddress) (common.NativeAddress, error)

	// --- Account Provisioning ---

	// ProvisionEOA materializes the account for an EVM address without
	// code. Idempotent: re-provisioning returns the existing address.
	ProvisionEOA(evm common.EvmAddress) (common.NativeAddress, error)

	// ProvisionContractAccount materializes the account for an EVM
	// address carrying code. Idempotent like ProvisionEOA.
	ProvisionContractAccount(evm common.EvmAddress, code []byte) (common.NativeAddress, error)

	// RegisterAccount records the mapping for an account that deployed
	// itself counterfactually. The caller must be the native account
	// derived for the given EVM address.
	RegisterAccount(caller common.NativeAddress, evm common.EvmAddress) error

	// UpgradeAccount re-points an already provisioned account to a new
	// class reference. Privileged. The address mapping is unaffected.
	UpgradeAccount(caller common.NativeAddress, evm common.EvmAddress, ref common.ClassReference) error

	// Code returns the code recorded for a contract account, or nil for
	// EOAs and unmapped addresses.
	Code(evm common.EvmAddress) ([]byte, error)

	// ForEachMapping visits all address mappings in EVM address order.
	ForEachMapping(visit func(common.EvmAddress, common.NativeAddress) error) error

	// --- Class References ---

	// GetClassReference returns the current template reference for the
	// given kind, or ErrNotConfigured.
	GetClassReference(kind common.ClassKind) (common.ClassReference, error)

	// SetClassReference overwrites the template reference for the given
	// kind. Privileged. Affects only future provisioning.
	SetClassReference(caller common.NativeAddress, kind common.ClassKind, ref common.ClassReference) error

	// --- Native Token ---

	// GetNativeToken returns the token contract used as the native
	// gas and value currency, or ErrNotConfigured.
	GetNativeToken() (common.NativeAddress, error)

	// SetNativeToken configures the native token. Privileged, settable
	// once; a second call fails with ErrAlreadyConfigured.
	SetNativeToken(caller common.NativeAddress, token common.NativeAddress) error

	// --- Chain Context ---

	// GetCoinbase returns the current block's beneficiary account.
	GetCoinbase() (common.NativeAddress, error)

	// GetBaseFee returns the current block's base fee.
	GetBaseFee() (*uint256.Int, error)

	// GetBlockGasLimit returns the current block's gas limit.
	GetBlockGasLimit() (uint64, error)

	// SetContext replaces the block context as a whole. Privileged,
	// invoked once per block by the block producer.
	SetContext(caller common.NativeAddress, context ChainContext) error

	// ChainID returns the immutable chain id of the EVM surface.
	ChainID() uint64

	// --- Operational Features ---

	Flush() error
	Close() error
}

// Backend selects the storage backend of a registry instance.
type Backend int

const (
	// Memory keeps all state in memory; contents are lost on Close.
	Memory Backend = iota
	// LevelDb persists the registry in a LevelDB instance.
	LevelDb
	// Sqlite persists the registry in a SQLite database.
	Sqlite
)

// Parameters configures a registry instance.
type Parameters struct {
	// Directory is the data directory of persistent backends.
	Directory string
	// Backend selects the storage backend; Memory is the zero value.
	Backend Backend
	// ChainID is the chain id reported to the EVM surface.
	ChainID uint64
	// Identity is the native account under which the registry deploys
	// account instances. Part of the address derivation.
	Identity common.NativeAddress
	// Deployer is the host-ledger deployment primitive. May be nil for
	// read-only use; provisioning then fails with ErrNoDeployer.
	Deployer deploy.Deployer
	// Authorizer gates privileged writes. If nil, an owner-based
	// authorizer admitting only Owner is used.
	Authorizer deploy.Authorizer
	// Owner is the admin account of the default authorizer.
	Owner common.NativeAddress
	// CacheCapacity bounds the in-memory resolve cache; 0 derives the
	// capacity from the total system memory.
	CacheCapacity int
}

// NewRegistry opens a registry instance as described by the parameters.
func NewRegistry(params Parameters) (Registry, error) {
	var st store.KVStore
	var err error
	switch params.Backend {
	case Memory:
		st = store.NewMemoryStore()
	case LevelDb:
		st, err = store.OpenLevelDbStore(filepath.Join(params.Directory, "registry"))
	case Sqlite:
		st, err = store.OpenSqliteStore(filepath.Join(params.Directory, "registry.db"))
	default:
		return nil, fmt.Errorf("unsupported backend: %v", params.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open registry store: %w", err)
	}
	return newLiveRegistry(params, st), nil
}
