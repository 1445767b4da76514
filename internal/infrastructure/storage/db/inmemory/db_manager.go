package inmemory

import (
	"context"
	"sync"

	"github.com/NikhilRaikwar/solpacket-daemon/internal/core/domain"
	"github.com/NikhilRaikwar/solpacket-daemon/internal/core/ports"
)

type store struct {
	locker   *sync.Mutex
	escrows  map[string]domain.Escrow
	vaults   map[string]domain.Vault
	accounts map[string]domain.Account
}

type repoManager struct {
	store *store

	escrowRepository  domain.EscrowRepository
	vaultRepository   domain.VaultRepository
	accountRepository domain.AccountRepository
}

// NewRepoManager returns an in-memory implementation of the RepoManager
// interface, mainly used by unit tests.
func NewRepoManager() ports.RepoManager {
	s := &store{
		locker:   &sync.Mutex{},
		escrows:  map[string]domain.Escrow{},
		vaults:   map[string]domain.Vault{},
		accounts: map[string]domain.Account{},
	}

	return &repoManager{
		store:             s,
		escrowRepository:  newEscrowRepositoryImpl(s),
		vaultRepository:   newVaultRepositoryImpl(s),
		accountRepository: newAccountRepositoryImpl(s),
	}
}

func (d *repoManager) EscrowRepository() domain.EscrowRepository {
	return d.escrowRepository
}

func (d *repoManager) VaultRepository() domain.VaultRepository {
	return d.vaultRepository
}

func (d *repoManager) AccountRepository() domain.AccountRepository {
	return d.accountRepository
}

func (d *repoManager) Close() {}

// RunTransaction serializes transactions with a single lock and restores a
// snapshot of the whole store if the handler fails, so a failed operation
// leaves no partial state, matching the all-or-nothing contract of the
// on-disk implementation.
func (d *repoManager) RunTransaction(
	ctx context.Context,
	readOnly bool,
	handler func(ctx context.Context) (interface{}, error),
) (interface{}, error) {
	d.store.locker.Lock()
	defer d.store.locker.Unlock()

	snapshot := d.store.snapshot()
	res, err := handler(context.WithValue(ctx, "intx", struct{}{}))
	if err != nil {
		d.store.restore(snapshot)
		return nil, err
	}
	if readOnly {
		d.store.restore(snapshot)
	}
	return res, nil
}

type storeSnapshot struct {
	escrows  map[string]domain.Escrow
	vaults   map[string]domain.Vault
	accounts map[string]domain.Account
}

func (s *store) snapshot() storeSnapshot {
	return storeSnapshot{
		escrows:  copyMap(s.escrows),
		vaults:   copyMap(s.vaults),
		accounts: copyMap(s.accounts),
	}
}

func (s *store) restore(snapshot storeSnapshot) {
	s.escrows = snapshot.escrows
	s.vaults = snapshot.vaults
	s.accounts = snapshot.accounts
}

func copyMap[V any](m map[string]V) map[string]V {
	c := make(map[string]V, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

// inTx reports whether the context carries an ambient transaction, ie. the
// store lock is already held by RunTransaction.
func inTx(ctx context.Context) bool {
	return ctx.Value("intx") != nil
}
