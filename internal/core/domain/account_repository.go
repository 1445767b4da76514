package domain

import (
	"context"

	"github.com/gagliardetto/solana-go"
)

// AccountRepository is the abstraction for any kind of database intended to
// persist token account balances.
type AccountRepository interface {
	// GetOrCreateAccount returns the account of the given owner for the given
	// asset, creating an empty one if not found.
	GetOrCreateAccount(
		ctx context.Context, owner solana.PublicKey, asset string,
	) (*Account, error)
	// UpdateAccount allows to commit multiple changes to the same account in
	// a transactional way. The account is created empty if not found.
	UpdateAccount(
		ctx context.Context,
		owner solana.PublicKey, asset string,
		updateFn func(a *Account) (*Account, error),
	) error
}
