package domain

import (
	"github.com/gagliardetto/solana-go"
)

// Vault is the custody cell holding the locked balance of one gift. It is
// addressed by a program-derived address, therefore no external signing key
// can authorize a transfer out of it. Only the escrow service, gated by the
// escrow record checks, moves its balance.
type Vault struct {
	Address solana.PublicKey
	GiftId  string
	Asset   string
	Balance uint64
	Bump    uint8
}

// NewVault returns an empty vault bound to the given gift id.
func NewVault(
	address solana.PublicKey, giftId, asset string, bump uint8,
) *Vault {
	return &Vault{
		Address: address,
		GiftId:  giftId,
		Asset:   asset,
		Bump:    bump,
	}
}

// Credit adds the given amount to the vault balance.
func (v *Vault) Credit(amount uint64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	v.Balance += amount
	return nil
}

// Debit removes the given amount from the vault balance. A settlement always
// debits the full balance.
func (v *Vault) Debit(amount uint64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if amount > v.Balance {
		return ErrInsufficientFunds
	}
	v.Balance -= amount
	return nil
}
