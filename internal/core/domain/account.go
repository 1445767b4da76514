package domain

import (
	"github.com/gagliardetto/solana-go"
)

// Account holds the spendable token balance of an external identity. It is
// the source debited by Initialize and the destination credited by Claim and
// Refund.
type Account struct {
	Owner   solana.PublicKey
	Asset   string
	Balance uint64
}

// NewAccount returns an account with zero balance for the given owner.
func NewAccount(owner solana.PublicKey, asset string) *Account {
	return &Account{Owner: owner, Asset: asset}
}

// Credit adds the given amount to the account balance.
func (a *Account) Credit(amount uint64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	a.Balance += amount
	return nil
}

// Debit removes the given amount from the account balance.
func (a *Account) Debit(amount uint64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if amount > a.Balance {
		return ErrInsufficientFunds
	}
	a.Balance -= amount
	return nil
}
