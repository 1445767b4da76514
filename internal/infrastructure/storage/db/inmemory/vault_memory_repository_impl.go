package inmemory

import (
	"context"

	"github.com/NikhilRaikwar/solpacket-daemon/internal/core/domain"
)

type vaultRepositoryImpl struct {
	store *store
}

// newVaultRepositoryImpl returns a new inmemory VaultRepository
// implementation.
func newVaultRepositoryImpl(store *store) domain.VaultRepository {
	return &vaultRepositoryImpl{store}
}

func (r *vaultRepositoryImpl) AddVault(
	ctx context.Context, vault *domain.Vault,
) error {
	if !inTx(ctx) {
		r.store.locker.Lock()
		defer r.store.locker.Unlock()
	}

	if _, ok := r.store.vaults[vault.GiftId]; ok {
		return domain.ErrDuplicateGiftId
	}
	r.store.vaults[vault.GiftId] = *vault
	return nil
}

func (r *vaultRepositoryImpl) GetVault(
	ctx context.Context, giftId string,
) (*domain.Vault, error) {
	if !inTx(ctx) {
		r.store.locker.Lock()
		defer r.store.locker.Unlock()
	}

	return r.getVault(giftId)
}

func (r *vaultRepositoryImpl) UpdateVault(
	ctx context.Context,
	giftId string,
	updateFn func(v *domain.Vault) (*domain.Vault, error),
) error {
	if !inTx(ctx) {
		r.store.locker.Lock()
		defer r.store.locker.Unlock()
	}

	currentVault, err := r.getVault(giftId)
	if err != nil {
		return err
	}

	updatedVault, err := updateFn(currentVault)
	if err != nil {
		return err
	}

	r.store.vaults[giftId] = *updatedVault
	return nil
}

func (r *vaultRepositoryImpl) getVault(giftId string) (*domain.Vault, error) {
	vault, ok := r.store.vaults[giftId]
	if !ok {
		return nil, domain.ErrGiftNotFound
	}
	return &vault, nil
}
