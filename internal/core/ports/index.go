package ports

import "context"

// GiftRecord is the off-chain mirror of an escrow record, kept for listing
// and lookup by the UI layer. The escrow program is the sole source of truth
// for custody and for the claimed flag, the index may be read stale.
type GiftRecord struct {
	GiftId       string `json:"gift_id"`
	Sender       string `json:"sender"`
	Recipient    string `json:"recipient"`
	Amount       uint64 `json:"amount"`
	Token        string `json:"token"`
	VaultAddress string `json:"vault_address"`
	Message      string `json:"message,omitempty"`
	CreatedAt    int64  `json:"created_at"`
	Claimed      bool   `json:"claimed"`
	ClaimedAt    int64  `json:"claimed_at,omitempty"`
	TxReference  string `json:"tx_reference,omitempty"`
}

// GiftIndex is the narrow interface of the off-chain gift index. It is an
// external collaborator of the escrow program, written after observing a
// successful operation and never consulted for correctness.
type GiftIndex interface {
	Put(ctx context.Context, record GiftRecord) error
	Get(ctx context.Context, giftId string) (*GiftRecord, error)
	ListBySender(ctx context.Context, sender string) ([]GiftRecord, error)
	ListByRecipient(ctx context.Context, recipient string) ([]GiftRecord, error)
	Close()
}
