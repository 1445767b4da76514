package domain

import "context"

// VaultRepository is the abstraction for any kind of database intended to
// persist vaults.
type VaultRepository interface {
	// AddVault inserts the given vault.
	AddVault(ctx context.Context, vault *Vault) error
	// GetVault returns the vault bound to the given gift id, or
	// ErrGiftNotFound.
	GetVault(ctx context.Context, giftId string) (*Vault, error)
	// UpdateVault allows to commit multiple changes to the same vault in a
	// transactional way.
	UpdateVault(
		ctx context.Context,
		giftId string,
		updateFn func(v *Vault) (*Vault, error),
	) error
}
