package index

import (
	"context"
	"sync"

	"github.com/NikhilRaikwar/solpacket-daemon/internal/core/ports"
)

type memoryGiftIndex struct {
	locker  *sync.RWMutex
	records map[string]ports.GiftRecord
}

// NewMemoryGiftIndex returns an in-memory implementation of the gift index,
// mainly used by unit tests.
func NewMemoryGiftIndex() ports.GiftIndex {
	return &memoryGiftIndex{
		locker:  &sync.RWMutex{},
		records: map[string]ports.GiftRecord{},
	}
}

func (i *memoryGiftIndex) Put(ctx context.Context, record ports.GiftRecord) error {
	i.locker.Lock()
	defer i.locker.Unlock()

	i.records[record.GiftId] = record
	return nil
}

func (i *memoryGiftIndex) Get(
	ctx context.Context, giftId string,
) (*ports.GiftRecord, error) {
	i.locker.RLock()
	defer i.locker.RUnlock()

	record, ok := i.records[giftId]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

func (i *memoryGiftIndex) ListBySender(
	ctx context.Context, sender string,
) ([]ports.GiftRecord, error) {
	return i.find(func(r ports.GiftRecord) bool { return r.Sender == sender })
}

func (i *memoryGiftIndex) ListByRecipient(
	ctx context.Context, recipient string,
) ([]ports.GiftRecord, error) {
	return i.find(func(r ports.GiftRecord) bool { return r.Recipient == recipient })
}

func (i *memoryGiftIndex) Close() {}

func (i *memoryGiftIndex) find(
	matchFn func(r ports.GiftRecord) bool,
) ([]ports.GiftRecord, error) {
	i.locker.RLock()
	defer i.locker.RUnlock()

	records := make([]ports.GiftRecord, 0)
	for _, r := range i.records {
		if matchFn(r) {
			records = append(records, r)
		}
	}
	return records, nil
}
