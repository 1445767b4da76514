package dbbadger

import (
	"context"

	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"

	"github.com/NikhilRaikwar/solpacket-daemon/internal/core/domain"
)

type vaultRepositoryImpl struct {
	db *repoManager
}

func newVaultRepositoryImpl(db *repoManager) domain.VaultRepository {
	return vaultRepositoryImpl{db: db}
}

func (r vaultRepositoryImpl) AddVault(
	ctx context.Context, vault *domain.Vault,
) error {
	var err error
	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		err = r.db.store.TxInsert(tx, vault.GiftId, vault)
	} else {
		err = r.db.store.Insert(vault.GiftId, vault)
	}
	if err == badgerhold.ErrKeyExists {
		return domain.ErrDuplicateGiftId
	}
	return err
}

func (r vaultRepositoryImpl) GetVault(
	ctx context.Context, giftId string,
) (*domain.Vault, error) {
	var vault domain.Vault
	var err error
	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		err = r.db.store.TxGet(tx, giftId, &vault)
	} else {
		err = r.db.store.Get(giftId, &vault)
	}
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, domain.ErrGiftNotFound
		}
		return nil, err
	}
	return &vault, nil
}

func (r vaultRepositoryImpl) UpdateVault(
	ctx context.Context,
	giftId string,
	updateFn func(v *domain.Vault) (*domain.Vault, error),
) error {
	currentVault, err := r.GetVault(ctx, giftId)
	if err != nil {
		return err
	}

	updatedVault, err := updateFn(currentVault)
	if err != nil {
		return err
	}

	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		return r.db.store.TxUpdate(tx, giftId, *updatedVault)
	}
	return r.db.store.Update(giftId, *updatedVault)
}
