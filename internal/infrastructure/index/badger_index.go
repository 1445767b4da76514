// Package index provides implementations of the off-chain gift index, the
// eventually consistent mirror of escrow records consumed by the UI layer.
package index

import (
	"context"
	"fmt"

	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"

	"github.com/NikhilRaikwar/solpacket-daemon/internal/core/ports"
	dbbadger "github.com/NikhilRaikwar/solpacket-daemon/internal/infrastructure/storage/db/badger"
)

type badgerGiftIndex struct {
	store *badgerhold.Store
}

// NewBadgerGiftIndex opens (or creates if not exists) the badger store
// backing the gift index. It is kept separate from the escrow db: the index
// is a mirror, never the source of truth.
func NewBadgerGiftIndex(dbDir string, logger badger.Logger) (ports.GiftIndex, error) {
	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger

	store, err := badgerhold.Open(badgerhold.Options{
		Encoder:          dbbadger.JSONEncode,
		Decoder:          dbbadger.JSONDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
	if err != nil {
		return nil, fmt.Errorf("opening index db: %w", err)
	}
	return &badgerGiftIndex{store: store}, nil
}

func (i *badgerGiftIndex) Put(ctx context.Context, record ports.GiftRecord) error {
	return i.store.Upsert(record.GiftId, record)
}

func (i *badgerGiftIndex) Get(
	ctx context.Context, giftId string,
) (*ports.GiftRecord, error) {
	var record ports.GiftRecord
	if err := i.store.Get(giftId, &record); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (i *badgerGiftIndex) ListBySender(
	ctx context.Context, sender string,
) ([]ports.GiftRecord, error) {
	return i.find(badgerhold.Where("Sender").Eq(sender))
}

func (i *badgerGiftIndex) ListByRecipient(
	ctx context.Context, recipient string,
) ([]ports.GiftRecord, error) {
	return i.find(badgerhold.Where("Recipient").Eq(recipient))
}

func (i *badgerGiftIndex) Close() {
	i.store.Close()
}

func (i *badgerGiftIndex) find(query *badgerhold.Query) ([]ports.GiftRecord, error) {
	var records []ports.GiftRecord
	if err := i.store.Find(&records, query); err != nil {
		return nil, err
	}
	return records, nil
}
