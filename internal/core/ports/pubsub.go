package ports

const (
	// GiftInitialized is published after a successful Initialize.
	GiftInitialized = "gift.initialized"
	// GiftClaimed is published after a successful Claim.
	GiftClaimed = "gift.claimed"
	// GiftRefunded is published after a successful Refund.
	GiftRefunded = "gift.refunded"
)

// Event is the payload published after a successful state transition.
type Event struct {
	Id        string `json:"id"`
	Type      string `json:"type"`
	GiftId    string `json:"gift_id"`
	Sender    string `json:"sender"`
	Recipient string `json:"recipient"`
	Amount    uint64 `json:"amount"`
	Asset     string `json:"asset"`
	Timestamp int64  `json:"timestamp"`
}

// Publisher is the abstraction for any notification mechanism interested in
// settled state transitions. Publishing is best-effort: implementations must
// never block or fail an operation that already committed.
type Publisher interface {
	Publish(event Event)
}
