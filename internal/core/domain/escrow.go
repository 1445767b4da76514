package domain

import (
	"github.com/gagliardetto/solana-go"
)

const (
	// MaxGiftIdLength is the upper bound on the length of a gift id. It must
	// stay below the seed size limit of the address derivation scheme.
	MaxGiftIdLength = 64

	// SettledByClaim marks an escrow retired by the recipient claiming it.
	SettledByClaim = "claim"
	// SettledByRefund marks an escrow retired by the sender reclaiming it.
	SettledByRefund = "refund"

	// EscrowStatusActive identifies an unclaimed escrow within its validity
	// window.
	EscrowStatusActive = "active"
	// EscrowStatusExpired identifies an unclaimed escrow whose validity window
	// has elapsed. Only a refund can retire it.
	EscrowStatusExpired = "expired"
	// EscrowStatusClaimed identifies an escrow settled by a claim.
	EscrowStatusClaimed = "claimed"
	// EscrowStatusRefunded identifies an escrow settled by a refund.
	EscrowStatusRefunded = "refunded"
)

// Escrow is the data structure representing a gift escrow record. One record
// exists per gift id, created together with its vault and retired exactly once
// by either a claim or a refund.
type Escrow struct {
	GiftId       string
	Sender       solana.PublicKey
	Recipient    solana.PublicKey
	Amount       uint64
	Asset        string
	Message      string
	Claimed      bool
	Bump         uint8
	VaultAddress solana.PublicKey
	CreatedAt    int64
	ExpiresAt    int64
	ClaimedAt    int64
	SettledBy    string
}

// NewEscrow returns a new active escrow record after validating all the
// immutable fields. No funds are moved here, creating the record and funding
// the vault is the job of the escrow service within a single transaction.
func NewEscrow(
	giftId string, sender, recipient solana.PublicKey,
	amount uint64, asset, message string,
	vaultAddress solana.PublicKey, bump uint8,
	createdAt, expiresAt int64,
) (*Escrow, error) {
	if len(giftId) <= 0 {
		return nil, ErrInvalidGiftId
	}
	if len(giftId) > MaxGiftIdLength {
		return nil, ErrGiftIdTooLong
	}
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if sender.IsZero() {
		return nil, ErrInvalidSender
	}
	if recipient.IsZero() {
		return nil, ErrInvalidRecipient
	}

	return &Escrow{
		GiftId:       giftId,
		Sender:       sender,
		Recipient:    recipient,
		Amount:       amount,
		Asset:        asset,
		Message:      message,
		Claimed:      false,
		Bump:         bump,
		VaultAddress: vaultAddress,
		CreatedAt:    createdAt,
		ExpiresAt:    expiresAt,
	}, nil
}

// Claim brings the escrow from Active to Settled on behalf of the recipient.
// The Claimed pre-image is checked first so that, run inside a repository
// update, the transition is a compare-and-set: a concurrent settlement that
// committed first makes this one fail with ErrAlreadyClaimed.
func (e *Escrow) Claim(caller solana.PublicKey, now int64) error {
	if e.Claimed {
		return ErrAlreadyClaimed
	}
	if !caller.Equals(e.Recipient) {
		return ErrUnauthorizedRecipient
	}
	if e.IsExpired(now) {
		return ErrGiftExpired
	}

	e.Claimed = true
	e.ClaimedAt = now
	e.SettledBy = SettledByClaim
	return nil
}

// Refund brings the escrow from Active to Settled on behalf of the sender.
// Refunds are permitted only once the validity window has elapsed, so a
// sender cannot race a pending claim.
func (e *Escrow) Refund(caller solana.PublicKey, now int64) error {
	if e.Claimed {
		return ErrAlreadyClaimed
	}
	if !caller.Equals(e.Sender) {
		return ErrUnauthorizedSender
	}
	if !e.IsExpired(now) {
		return ErrGiftNotExpired
	}

	e.Claimed = true
	e.ClaimedAt = now
	e.SettledBy = SettledByRefund
	return nil
}

// IsExpired returns whether the validity window has elapsed at the given time.
func (e *Escrow) IsExpired(now int64) bool {
	return now >= e.ExpiresAt
}

// Status returns the human-readable status of the escrow.
func (e *Escrow) Status(now int64) string {
	if e.Claimed {
		if e.SettledBy == SettledByRefund {
			return EscrowStatusRefunded
		}
		return EscrowStatusClaimed
	}
	if e.IsExpired(now) {
		return EscrowStatusExpired
	}
	return EscrowStatusActive
}
