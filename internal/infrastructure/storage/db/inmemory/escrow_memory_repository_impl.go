package inmemory

import (
	"context"

	"github.com/gagliardetto/solana-go"

	"github.com/NikhilRaikwar/solpacket-daemon/internal/core/domain"
)

type escrowRepositoryImpl struct {
	store *store
}

// newEscrowRepositoryImpl returns a new inmemory EscrowRepository
// implementation.
func newEscrowRepositoryImpl(store *store) domain.EscrowRepository {
	return &escrowRepositoryImpl{store}
}

func (r *escrowRepositoryImpl) AddEscrow(
	ctx context.Context, escrow *domain.Escrow,
) error {
	if !inTx(ctx) {
		r.store.locker.Lock()
		defer r.store.locker.Unlock()
	}

	if _, ok := r.store.escrows[escrow.GiftId]; ok {
		return domain.ErrDuplicateGiftId
	}
	r.store.escrows[escrow.GiftId] = *escrow
	return nil
}

func (r *escrowRepositoryImpl) GetEscrow(
	ctx context.Context, giftId string,
) (*domain.Escrow, error) {
	if !inTx(ctx) {
		r.store.locker.Lock()
		defer r.store.locker.Unlock()
	}

	return r.getEscrow(giftId)
}

func (r *escrowRepositoryImpl) GetAllEscrows(
	ctx context.Context,
) ([]*domain.Escrow, error) {
	return r.findEscrows(ctx, func(e domain.Escrow) bool { return true })
}

func (r *escrowRepositoryImpl) GetEscrowsForSender(
	ctx context.Context, sender solana.PublicKey,
) ([]*domain.Escrow, error) {
	return r.findEscrows(ctx, func(e domain.Escrow) bool {
		return e.Sender.Equals(sender)
	})
}

func (r *escrowRepositoryImpl) GetEscrowsForRecipient(
	ctx context.Context, recipient solana.PublicKey,
) ([]*domain.Escrow, error) {
	return r.findEscrows(ctx, func(e domain.Escrow) bool {
		return e.Recipient.Equals(recipient)
	})
}

func (r *escrowRepositoryImpl) UpdateEscrow(
	ctx context.Context,
	giftId string,
	updateFn func(e *domain.Escrow) (*domain.Escrow, error),
) error {
	if !inTx(ctx) {
		r.store.locker.Lock()
		defer r.store.locker.Unlock()
	}

	currentEscrow, err := r.getEscrow(giftId)
	if err != nil {
		return err
	}

	updatedEscrow, err := updateFn(currentEscrow)
	if err != nil {
		return err
	}

	r.store.escrows[giftId] = *updatedEscrow
	return nil
}

func (r *escrowRepositoryImpl) getEscrow(giftId string) (*domain.Escrow, error) {
	escrow, ok := r.store.escrows[giftId]
	if !ok {
		return nil, domain.ErrGiftNotFound
	}
	return &escrow, nil
}

func (r *escrowRepositoryImpl) findEscrows(
	ctx context.Context, matchFn func(e domain.Escrow) bool,
) ([]*domain.Escrow, error) {
	if !inTx(ctx) {
		r.store.locker.Lock()
		defer r.store.locker.Unlock()
	}

	escrows := make([]*domain.Escrow, 0)
	for _, e := range r.store.escrows {
		if matchFn(e) {
			escrow := e
			escrows = append(escrows, &escrow)
		}
	}
	return escrows, nil
}
