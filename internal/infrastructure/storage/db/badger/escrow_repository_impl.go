package dbbadger

import (
	"context"

	"github.com/dgraph-io/badger/v3"
	"github.com/gagliardetto/solana-go"
	"github.com/timshannon/badgerhold/v4"

	"github.com/NikhilRaikwar/solpacket-daemon/internal/core/domain"
)

type escrowRepositoryImpl struct {
	db *repoManager
}

func newEscrowRepositoryImpl(db *repoManager) domain.EscrowRepository {
	return escrowRepositoryImpl{db: db}
}

func (r escrowRepositoryImpl) AddEscrow(
	ctx context.Context, escrow *domain.Escrow,
) error {
	return r.insertEscrow(ctx, *escrow)
}

func (r escrowRepositoryImpl) GetEscrow(
	ctx context.Context, giftId string,
) (*domain.Escrow, error) {
	return r.getEscrow(ctx, giftId)
}

func (r escrowRepositoryImpl) GetAllEscrows(
	ctx context.Context,
) ([]*domain.Escrow, error) {
	return r.findEscrows(ctx, nil)
}

func (r escrowRepositoryImpl) GetEscrowsForSender(
	ctx context.Context, sender solana.PublicKey,
) ([]*domain.Escrow, error) {
	query := badgerhold.Where("Sender").Eq(sender)
	return r.findEscrows(ctx, query)
}

func (r escrowRepositoryImpl) GetEscrowsForRecipient(
	ctx context.Context, recipient solana.PublicKey,
) ([]*domain.Escrow, error) {
	query := badgerhold.Where("Recipient").Eq(recipient)
	return r.findEscrows(ctx, query)
}

func (r escrowRepositoryImpl) UpdateEscrow(
	ctx context.Context,
	giftId string,
	updateFn func(e *domain.Escrow) (*domain.Escrow, error),
) error {
	currentEscrow, err := r.getEscrow(ctx, giftId)
	if err != nil {
		return err
	}

	updatedEscrow, err := updateFn(currentEscrow)
	if err != nil {
		return err
	}

	return r.updateEscrow(ctx, giftId, *updatedEscrow)
}

func (r escrowRepositoryImpl) getEscrow(
	ctx context.Context, giftId string,
) (*domain.Escrow, error) {
	var escrow domain.Escrow
	var err error
	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		err = r.db.store.TxGet(tx, giftId, &escrow)
	} else {
		err = r.db.store.Get(giftId, &escrow)
	}
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, domain.ErrGiftNotFound
		}
		return nil, err
	}
	return &escrow, nil
}

func (r escrowRepositoryImpl) findEscrows(
	ctx context.Context, query *badgerhold.Query,
) ([]*domain.Escrow, error) {
	var list []domain.Escrow
	var err error
	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		err = r.db.store.TxFind(tx, &list, query)
	} else {
		err = r.db.store.Find(&list, query)
	}
	if err != nil {
		return nil, err
	}

	escrows := make([]*domain.Escrow, 0, len(list))
	for i := range list {
		escrows = append(escrows, &list[i])
	}
	return escrows, nil
}

func (r escrowRepositoryImpl) insertEscrow(
	ctx context.Context, escrow domain.Escrow,
) error {
	var err error
	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		err = r.db.store.TxInsert(tx, escrow.GiftId, &escrow)
	} else {
		err = r.db.store.Insert(escrow.GiftId, &escrow)
	}
	if err == badgerhold.ErrKeyExists {
		return domain.ErrDuplicateGiftId
	}
	return err
}

func (r escrowRepositoryImpl) updateEscrow(
	ctx context.Context, giftId string, escrow domain.Escrow,
) error {
	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		return r.db.store.TxUpdate(tx, giftId, escrow)
	}
	return r.db.store.Update(giftId, escrow)
}
