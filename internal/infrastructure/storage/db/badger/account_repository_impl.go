package dbbadger

import (
	"context"
	"fmt"

	"github.com/dgraph-io/badger/v3"
	"github.com/gagliardetto/solana-go"
	"github.com/timshannon/badgerhold/v4"

	"github.com/NikhilRaikwar/solpacket-daemon/internal/core/domain"
)

type accountRepositoryImpl struct {
	db *repoManager
}

func newAccountRepositoryImpl(db *repoManager) domain.AccountRepository {
	return accountRepositoryImpl{db: db}
}

func accountKey(owner solana.PublicKey, asset string) string {
	return fmt.Sprintf("%s/%s", owner.String(), asset)
}

func (r accountRepositoryImpl) GetOrCreateAccount(
	ctx context.Context, owner solana.PublicKey, asset string,
) (*domain.Account, error) {
	return r.getOrCreateAccount(ctx, owner, asset)
}

func (r accountRepositoryImpl) UpdateAccount(
	ctx context.Context,
	owner solana.PublicKey, asset string,
	updateFn func(a *domain.Account) (*domain.Account, error),
) error {
	currentAccount, err := r.getOrCreateAccount(ctx, owner, asset)
	if err != nil {
		return err
	}

	updatedAccount, err := updateFn(currentAccount)
	if err != nil {
		return err
	}

	key := accountKey(owner, asset)
	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		return r.db.store.TxUpsert(tx, key, *updatedAccount)
	}
	return r.db.store.Upsert(key, *updatedAccount)
}

func (r accountRepositoryImpl) getOrCreateAccount(
	ctx context.Context, owner solana.PublicKey, asset string,
) (*domain.Account, error) {
	var account domain.Account
	var err error
	key := accountKey(owner, asset)
	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		err = r.db.store.TxGet(tx, key, &account)
	} else {
		err = r.db.store.Get(key, &account)
	}
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return domain.NewAccount(owner, asset), nil
		}
		return nil, err
	}
	return &account, nil
}
