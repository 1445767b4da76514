package domain

import (
	"context"

	"github.com/gagliardetto/solana-go"
)

// EscrowRepository is the abstraction for any kind of database intended to
// persist escrow records.
type EscrowRepository interface {
	// AddEscrow inserts the given escrow record, failing with
	// ErrDuplicateGiftId if one already exists for the same gift id.
	AddEscrow(ctx context.Context, escrow *Escrow) error
	// GetEscrow returns the escrow record with the given gift id, or
	// ErrGiftNotFound.
	GetEscrow(ctx context.Context, giftId string) (*Escrow, error)
	// GetAllEscrows returns all the escrow records stored in the repository.
	GetAllEscrows(ctx context.Context) ([]*Escrow, error)
	// GetEscrowsForSender returns all the escrow records funded by the given
	// sender.
	GetEscrowsForSender(ctx context.Context, sender solana.PublicKey) ([]*Escrow, error)
	// GetEscrowsForRecipient returns all the escrow records claimable by the
	// given recipient.
	GetEscrowsForRecipient(ctx context.Context, recipient solana.PublicKey) ([]*Escrow, error)
	// UpdateEscrow allows to commit multiple changes to the same escrow record
	// in a transactional way. The updateFn observes the stored record,
	// including its Claimed pre-image, within the ambient storage transaction.
	UpdateEscrow(
		ctx context.Context,
		giftId string,
		updateFn func(e *Escrow) (*Escrow, error),
	) error
}
