package application

import (
	"github.com/gagliardetto/solana-go"

	"github.com/NikhilRaikwar/solpacket-daemon/internal/core/domain"
)

// InitGiftRequest groups the arguments of EscrowService.Initialize. Sender is
// the authenticated caller identity, verified by the interface layer before
// the service is invoked.
type InitGiftRequest struct {
	GiftId    string
	Sender    solana.PublicKey
	Recipient solana.PublicKey
	Amount    uint64
	Message   string
}

// SettleGiftRequest groups the arguments of EscrowService.Claim and
// EscrowService.Refund. Caller is the authenticated caller identity.
type SettleGiftRequest struct {
	GiftId string
	Caller solana.PublicKey
}

// ListGiftsFilter selects the escrow records to list. At most one of Sender
// and Recipient is set; empty filter means all records.
type ListGiftsFilter struct {
	Sender    *solana.PublicKey
	Recipient *solana.PublicKey
}

// GiftInfo is the external view of an escrow record, enriched with the live
// vault balance and the shareable claim link.
type GiftInfo struct {
	GiftId        string `json:"gift_id"`
	EscrowAddress string `json:"escrow_address"`
	VaultAddress  string `json:"vault_address"`
	Sender        string `json:"sender"`
	Recipient     string `json:"recipient"`
	Amount        uint64 `json:"amount"`
	Asset         string `json:"asset"`
	Message       string `json:"message,omitempty"`
	Status        string `json:"status"`
	Claimed       bool   `json:"claimed"`
	VaultBalance  uint64 `json:"vault_balance"`
	CreatedAt     int64  `json:"created_at"`
	ExpiresAt     int64  `json:"expires_at"`
	ClaimedAt     int64  `json:"claimed_at,omitempty"`
	SettledBy     string `json:"settled_by,omitempty"`
	ClaimLink     string `json:"claim_link,omitempty"`
}

// BalanceInfo is the external view of a token account.
type BalanceInfo struct {
	Owner   string `json:"owner"`
	Asset   string `json:"asset"`
	Balance uint64 `json:"balance"`
}

func giftInfoFromEscrow(
	escrow *domain.Escrow, escrowAddress solana.PublicKey,
	vaultBalance uint64, now int64, claimLink string,
) *GiftInfo {
	return &GiftInfo{
		GiftId:        escrow.GiftId,
		EscrowAddress: escrowAddress.String(),
		VaultAddress:  escrow.VaultAddress.String(),
		Sender:        escrow.Sender.String(),
		Recipient:     escrow.Recipient.String(),
		Amount:        escrow.Amount,
		Asset:         escrow.Asset,
		Message:       escrow.Message,
		Status:        escrow.Status(now),
		Claimed:       escrow.Claimed,
		VaultBalance:  vaultBalance,
		CreatedAt:     escrow.CreatedAt,
		ExpiresAt:     escrow.ExpiresAt,
		ClaimedAt:     escrow.ClaimedAt,
		SettledBy:     escrow.SettledBy,
		ClaimLink:     claimLink,
	}
}
