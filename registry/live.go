package registry

import (
	"errors"
	"fmt"
	"sync"

	"github.com/0xsoniclabs/tracy"
	"github.com/holiman/uint256"
	"github.com/hostlayer/evmreg/common"
	"github.com/hostlayer/evmreg/deploy"
	"github.com/hostlayer/evmreg/registry/store"
)

// liveRegistry is the Registry implementation over a KVStore. The host
// executes one transaction at a time, but the lock additionally makes the
// instance safe for concurrent use from Go code.
type liveRegistry struct {
	chainID    uint64
	identity   common.NativeAddress
	deployer   deploy.Deployer
	authorizer deploy.Authorizer
	store      store.KVStore
	cache      *addressCache
	lock       sync.Mutex
}

func newLiveRegistry(params Parameters, st store.KVStore) *liveRegistry {
	authorizer := params.Authorizer
	if authorizer == nil {
		authorizer = deploy.NewOwnerAuthorizer(params.Owner)
	}
	return &liveRegistry{
		chainID:    params.ChainID,
		identity:   params.Identity,
		deployer:   params.Deployer,
		authorizer: authorizer,
		store:      st,
		cache:      newAddressCache(params.CacheCapacity),
	}
}

// --- Address Resolution ---

func (r *liveRegistry) Resolve(evm common.EvmAddress) (common.NativeAddress, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if native, found := r.cache.get(evm); found {
		return native, nil
	}
	native, found, err := r.lookup(evm)
	if err != nil {
		return common.NativeAddress{}, err
	}
	if found {
		r.cache.put(evm, native)
		return native, nil
	}
	return r.provision(evm, nil, false)
}

func (r *liveRegistry) LookupOnly(evm common.EvmAddress) (common.NativeAddress, bool, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if native, found := r.cache.get(evm); found {
		return native, true, nil
	}
	native, found, err := r.lookup(evm)
	if err == nil && found {
		r.cache.put(evm, native)
	}
	return native, found, err
}

func (r *liveRegistry) ReverseLookup(native common.NativeAddress) (common.EvmAddress, bool, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	data, err := r.store.Get(keyReverse(native))
	if err == store.ErrNotFound {
		return common.EvmAddress{}, false, nil
	}
	if err != nil {
		return common.EvmAddress{}, false, err
	}
	if len(data) != 20 {
		return common.EvmAddress{}, false, fmt.Errorf("corrupted reverse index entry for %v", native)
	}
	return common.EvmAddress(data), true, nil
}

func (r *liveRegistry) DerivedAddress(evm common.EvmAddress) (common.NativeAddress, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	proxyRef, err := r.classReference(common.ClassKindAccountProxy)
	if err != nil {
		return common.NativeAddress{}, err
	}
	return AccountAddress(proxyRef, r.identity, evm), nil
}

// lookup reads the mapping table; it requires the lock to be held.
func (r *liveRegistry) lookup(evm common.EvmAddress) (common.NativeAddress, bool, error) {
	data, err := r.store.Get(keyMapping(evm))
	if err == store.ErrNotFound {
		return common.NativeAddress{}, false, nil
	}
	if err != nil {
		return common.NativeAddress{}, false, err
	}
	if len(data) != 32 {
		return common.NativeAddress{}, false, fmt.Errorf("corrupted mapping entry for %v", evm)
	}
	return common.NativeAddress(data), true, nil
}

// --- Account Provisioning ---

func (r *liveRegistry) ProvisionEOA(evm common.EvmAddress) (common.NativeAddress, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.provision(evm, nil, false)
}

func (r *liveRegistry) ProvisionContractAccount(evm common.EvmAddress, code []byte) (common.NativeAddress, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.provision(evm, code, true)
}

// provision materializes the account backing the given EVM address and
// records the mapping. The deployment and the mapping write are atomic: a
// failed deployment leaves no trace, and the mapping batch commits as one
// unit. Requires the lock to be held.
func (r *liveRegistry) provision(evm common.EvmAddress, code []byte, isContract bool) (common.NativeAddress, error) {
	zone := tracy.ZoneBegin("registry::provision")
	defer zone.End()

	// A racing provisioning request may have won the global ordering;
	// converge on the existing mapping instead of re-deploying.
	if native, found, err := r.lookup(evm); err != nil || found {
		return native, err
	}

	if r.deployer == nil {
		return common.NativeAddress{}, ErrNoDeployer
	}

	proxyRef, err := r.classReference(common.ClassKindAccountProxy)
	if err != nil {
		return common.NativeAddress{}, err
	}
	native := AccountAddress(proxyRef, r.identity, evm)

	if err := r.checkCollision(native, evm); err != nil {
		return common.NativeAddress{}, err
	}

	deployed, err := r.deployer.Deploy(proxyRef, accountConstructorArgs(evm), accountSalt(evm))
	if err != nil && !errors.Is(err, deploy.ErrAlreadyDeployed) {
		// Nothing has been written; the whole call is safe to retry.
		return common.NativeAddress{}, fmt.Errorf("deployment failed: %w", err)
	}
	if err == nil && deployed != native {
		return common.NativeAddress{}, fmt.Errorf(
			"host deployed to %v, derivation predicted %v", deployed, native)
	}

	batch := []store.Entry{
		{Key: keyMapping(evm), Value: native[:]},
		{Key: keyReverse(native), Value: evm[:]},
	}
	if isContract {
		batch = append(batch, store.Entry{Key: keyCode(evm), Value: encodeCode(code)})
	}
	if err := r.store.Apply(batch); err != nil {
		return common.NativeAddress{}, fmt.Errorf("failed to persist mapping: %w", err)
	}
	r.cache.put(evm, native)
	return native, nil
}

func (r *liveRegistry) RegisterAccount(caller common.NativeAddress, evm common.EvmAddress) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, found, err := r.lookup(evm); err != nil {
		return err
	} else if found {
		return fmt.Errorf("%v: %w", evm, ErrAlreadyRegistered)
	}

	proxyRef, err := r.classReference(common.ClassKindAccountProxy)
	if err != nil {
		return err
	}
	native := AccountAddress(proxyRef, r.identity, evm)
	if caller != native {
		return fmt.Errorf("caller should be %v: %w", native, ErrNotAccount)
	}
	if err := r.checkCollision(native, evm); err != nil {
		return err
	}

	err = r.store.Apply([]store.Entry{
		{Key: keyMapping(evm), Value: native[:]},
		{Key: keyReverse(native), Value: evm[:]},
	})
	if err != nil {
		return fmt.Errorf("failed to persist mapping: %w", err)
	}
	r.cache.put(evm, native)
	return nil
}

func (r *liveRegistry) UpgradeAccount(caller common.NativeAddress, evm common.EvmAddress, ref common.ClassReference) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if !r.authorizer.IsAuthorized(caller) {
		return ErrUnauthorized
	}
	native, found, err := r.lookup(evm)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%v: %w", evm, ErrNotRegistered)
	}
	if r.deployer == nil {
		return ErrNoDeployer
	}
	if err := r.deployer.ReplaceClass(native, ref); err != nil {
		return fmt.Errorf("failed to upgrade account %v: %w", evm, err)
	}
	return nil
}

func (r *liveRegistry) Code(evm common.EvmAddress) ([]byte, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	data, err := r.store.Get(keyCode(evm))
	if err == store.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeCode(data)
}

func (r *liveRegistry) ForEachMapping(visit func(common.EvmAddress, common.NativeAddress) error) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.store.ForEach(prefixMapping, func(key, value []byte) error {
		evm, err := mappingKeyToEvmAddress(key)
		if err != nil {
			return err
		}
		if len(value) != 32 {
			return fmt.Errorf("corrupted mapping entry for %v", evm)
		}
		return visit(evm, common.NativeAddress(value))
	})
}

// checkCollision rejects a derived address that is already occupied by a
// different EVM address. The derivation makes this unreachable; detecting it
// beats silently overwriting the reverse index.
func (r *liveRegistry) checkCollision(native common.NativeAddress, evm common.EvmAddress) error {
	data, err := r.store.Get(keyReverse(native))
	if err == store.ErrNotFound {
		return nil
	}
	if err != nil {
		return err
	}
	if len(data) == 20 && common.EvmAddress(data) == evm {
		return nil
	}
	return fmt.Errorf("%v already maps to %v: %w",
		native, common.EvmAddress(data), ErrDerivationCollision)
}

// --- Class References ---

func (r *liveRegistry) GetClassReference(kind common.ClassKind) (common.ClassReference, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.classReference(kind)
}

func (r *liveRegistry) classReference(kind common.ClassKind) (common.ClassReference, error) {
	if !kind.IsValid() {
		return common.ClassReference{}, fmt.Errorf("invalid class kind: %v", kind)
	}
	data, err := r.store.Get(keyClassReference(kind))
	if err == store.ErrNotFound {
		return common.ClassReference{}, fmt.Errorf("%v class reference: %w", kind, ErrNotConfigured)
	}
	if err != nil {
		return common.ClassReference{}, err
	}
	if len(data) != 32 {
		return common.ClassReference{}, fmt.Errorf("corrupted %v class reference", kind)
	}
	return common.ClassReference(data), nil
}

func (r *liveRegistry) SetClassReference(caller common.NativeAddress, kind common.ClassKind, ref common.ClassReference) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if !r.authorizer.IsAuthorized(caller) {
		return ErrUnauthorized
	}
	if !kind.IsValid() {
		return fmt.Errorf("invalid class kind: %v", kind)
	}
	return r.store.Set(keyClassReference(kind), ref[:])
}

// --- Native Token ---

func (r *liveRegistry) GetNativeToken() (common.NativeAddress, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	data, err := r.store.Get(keyNativeToken)
	if err == store.ErrNotFound {
		return common.NativeAddress{}, fmt.Errorf("native token: %w", ErrNotConfigured)
	}
	if err != nil {
		return common.NativeAddress{}, err
	}
	if len(data) != 32 {
		return common.NativeAddress{}, fmt.Errorf("corrupted native token reference")
	}
	return common.NativeAddress(data), nil
}

func (r *liveRegistry) SetNativeToken(caller common.NativeAddress, token common.NativeAddress) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if !r.authorizer.IsAuthorized(caller) {
		return ErrUnauthorized
	}
	if token.IsZero() {
		return fmt.Errorf("native token address must not be zero")
	}
	_, err := r.store.Get(keyNativeToken)
	if err == nil {
		return fmt.Errorf("native token: %w", ErrAlreadyConfigured)
	}
	if err != store.ErrNotFound {
		return err
	}
	return r.store.Set(keyNativeToken, token[:])
}

// --- Chain Context ---

func (r *liveRegistry) GetCoinbase() (common.NativeAddress, error) {
	context, err := r.getContext()
	return context.Coinbase, err
}

func (r *liveRegistry) GetBaseFee() (*uint256.Int, error) {
	context, err := r.getContext()
	return context.BaseFee, err
}

func (r *liveRegistry) GetBlockGasLimit() (uint64, error) {
	context, err := r.getContext()
	return context.BlockGasLimit, err
}

func (r *liveRegistry) getContext() (ChainContext, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	data, err := r.store.Get(keyChainContext)
	if err == store.ErrNotFound {
		return ChainContext{}, fmt.Errorf("chain context: %w", ErrNotConfigured)
	}
	if err != nil {
		return ChainContext{}, err
	}
	return decodeChainContext(data)
}

func (r *liveRegistry) SetContext(caller common.NativeAddress, context ChainContext) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if !r.authorizer.IsAuthorized(caller) {
		return ErrUnauthorized
	}
	// One fixed-size value; the replace is atomic by construction.
	return r.store.Set(keyChainContext, encodeChainContext(context))
}

func (r *liveRegistry) ChainID() uint64 {
	return r.chainID
}

// --- Operational Features ---

func (r *liveRegistry) Flush() error {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.store.Flush()
}

func (r *liveRegistry) Close() error {
	r.lock.Lock()
	defer r.lock.Unlock()
	return errors.Join(
		r.store.Flush(),
		r.store.Close(),
	)
}
