package inmemory

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/NikhilRaikwar/solpacket-daemon/internal/core/domain"
)

type accountRepositoryImpl struct {
	store *store
}

// newAccountRepositoryImpl returns a new inmemory AccountRepository
// implementation.
func newAccountRepositoryImpl(store *store) domain.AccountRepository {
	return &accountRepositoryImpl{store}
}

func accountKey(owner solana.PublicKey, asset string) string {
	return fmt.Sprintf("%s/%s", owner.String(), asset)
}

func (r *accountRepositoryImpl) GetOrCreateAccount(
	ctx context.Context, owner solana.PublicKey, asset string,
) (*domain.Account, error) {
	if !inTx(ctx) {
		r.store.locker.Lock()
		defer r.store.locker.Unlock()
	}

	return r.getOrCreateAccount(owner, asset), nil
}

func (r *accountRepositoryImpl) UpdateAccount(
	ctx context.Context,
	owner solana.PublicKey, asset string,
	updateFn func(a *domain.Account) (*domain.Account, error),
) error {
	if !inTx(ctx) {
		r.store.locker.Lock()
		defer r.store.locker.Unlock()
	}

	currentAccount := r.getOrCreateAccount(owner, asset)
	updatedAccount, err := updateFn(currentAccount)
	if err != nil {
		return err
	}

	r.store.accounts[accountKey(owner, asset)] = *updatedAccount
	return nil
}

func (r *accountRepositoryImpl) getOrCreateAccount(
	owner solana.PublicKey, asset string,
) *domain.Account {
	account, ok := r.store.accounts[accountKey(owner, asset)]
	if !ok {
		return domain.NewAccount(owner, asset)
	}
	return &account
}
