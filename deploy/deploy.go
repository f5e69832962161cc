// Package deploy defines the boundary between the account registry and the
// host ledger it runs on. The registry consumes a deployment primitive and a
// privilege predicate; both are provided by the surrounding system. An
// in-process ledger implementation is included for tests and tooling.
package deploy

import (
	"sync"

	"github.com/hostlayer/evmreg/common"
)

//go:generate mockgen -source deploy.go -destination deploy_mocks.go -package deploy

const (
	// ErrAlreadyDeployed is returned by Deploy when an instance already
	// exists at the derived address. Provisioning treats this outcome as
	// success.
	ErrAlreadyDeployed = common.ConstError("already deployed")
	// ErrNotDeployed is returned by ReplaceClass for addresses without a
	// deployed instance.
	ErrNotDeployed = common.ConstError("not deployed")
)

// Deployer is the host-ledger deployment primitive consumed by the registry.
type Deployer interface {
	// Deploy creates an instance of the given class on the host ledger.
	// The resulting address is a deterministic function of the class
	// reference, the constructor arguments, the salt, and the identity of
	// the deploying system. Deploying twice with the same inputs fails
	// with ErrAlreadyDeployed.
	Deploy(ref common.ClassReference, constructorArgs []byte, salt common.Hash) (common.NativeAddress, error)

	// IsDeployed reports whether an instance exists at the given address.
	IsDeployed(addr common.NativeAddress) (bool, error)

	// ReplaceClass re-points an already deployed instance to a new class
	// reference, keeping its address and state.
	ReplaceClass(addr common.NativeAddress, ref common.ClassReference) error
}

// Authorizer decides whether a caller may perform privileged configuration
// writes on the registry.
type Authorizer interface {
	IsAuthorized(caller common.NativeAddress) bool
}

// ownerAuthorizer authorizes exactly one owner account.
type ownerAuthorizer struct {
	owner common.NativeAddress
}

// NewOwnerAuthorizer creates an Authorizer admitting only the given owner.
func NewOwnerAuthorizer(owner common.NativeAddress) Authorizer {
	return &ownerAuthorizer{owner: owner}
}

func (a *ownerAuthorizer) IsAuthorized(caller common.NativeAddress) bool {
	return !caller.IsZero() && caller == a.owner
}

// AddressFunc computes the address at which the ledger materializes a
// deployment. It must be a pure function of its inputs.
type AddressFunc func(
	ref common.ClassReference,
	constructorArgs []byte,
	salt common.Hash,
	deployer common.NativeAddress,
) common.NativeAddress

// Ledger is an in-process Deployer keeping deployed instances in memory.
type Ledger struct {
	identity common.NativeAddress
	address  AddressFunc

	lock      sync.Mutex
	instances map[common.NativeAddress]instance
}

type instance struct {
	ref  common.ClassReference
	args []byte
}

// NewLedger creates an in-process ledger deploying under the given system
// identity and computing addresses with the given function.
func NewLedger(identity common.NativeAddress, address AddressFunc) *Ledger {
	return &Ledger{
		identity:  identity,
		address:   address,
		instances: make(map[common.NativeAddress]instance),
	}
}

func (l *Ledger) Deploy(ref common.ClassReference, constructorArgs []byte, salt common.Hash) (common.NativeAddress, error) {
	addr := l.address(ref, constructorArgs, salt, l.identity)
	l.lock.Lock()
	defer l.lock.Unlock()
	if _, exists := l.instances[addr]; exists {
		return addr, ErrAlreadyDeployed
	}
	args := make([]byte, len(constructorArgs))
	copy(args, constructorArgs)
	l.instances[addr] = instance{ref: ref, args: args}
	return addr, nil
}

func (l *Ledger) IsDeployed(addr common.NativeAddress) (bool, error) {
	l.lock.Lock()
	defer l.lock.Unlock()
	_, exists := l.instances[addr]
	return exists, nil
}

func (l *Ledger) ReplaceClass(addr common.NativeAddress, ref common.ClassReference) error {
	l.lock.Lock()
	defer l.lock.Unlock()
	inst, exists := l.instances[addr]
	if !exists {
		return ErrNotDeployed
	}
	inst.ref = ref
	l.instances[addr] = inst
	return nil
}

// ClassAt returns the class reference of the instance deployed at the given
// address, or false if there is none.
func (l *Ledger) ClassAt(addr common.NativeAddress) (common.ClassReference, bool) {
	l.lock.Lock()
	defer l.lock.Unlock()
	inst, exists := l.instances[addr]
	return inst.ref, exists
}
