package application

import (
	"context"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/NikhilRaikwar/solpacket-daemon/internal/core/domain"
	"github.com/NikhilRaikwar/solpacket-daemon/internal/core/ports"
	"github.com/NikhilRaikwar/solpacket-daemon/pkg/giftlink"
	"github.com/NikhilRaikwar/solpacket-daemon/pkg/pda"
)

// EscrowService exposes the three state transitions of the gift escrow
// program, plus read-only views over its records. Every mutating operation is
// executed within a single storage transaction: an error return guarantees no
// state mutation occurred for that invocation.
type EscrowService interface {
	Initialize(ctx context.Context, req InitGiftRequest) (*GiftInfo, error)
	Claim(ctx context.Context, req SettleGiftRequest) (*GiftInfo, error)
	Refund(ctx context.Context, req SettleGiftRequest) (*GiftInfo, error)
	GetGift(ctx context.Context, giftId string) (*GiftInfo, error)
	ListGifts(ctx context.Context, filter ListGiftsFilter) ([]*GiftInfo, error)
}

type escrowService struct {
	repoManager ports.RepoManager
	giftIndex   ports.GiftIndex
	publisher   ports.Publisher
	programID   solana.PublicKey
	asset       string
	giftExpiry  int64
	baseURL     string
	now         func() int64
}

// EscrowServiceOption tweaks the service returned by NewEscrowService.
type EscrowServiceOption func(*escrowService)

// WithClock overrides the time source used for expiry checks, so tests can
// cross the validity window deterministically.
func WithClock(now func() int64) EscrowServiceOption {
	return func(s *escrowService) {
		s.now = now
	}
}

// NewEscrowService returns an EscrowService using the given repositories,
// off-chain index and publisher. Index and publisher may be nil, escrow
// correctness never depends on them. giftExpiry is the validity window in
// seconds.
func NewEscrowService(
	repoManager ports.RepoManager,
	giftIndex ports.GiftIndex,
	publisher ports.Publisher,
	programID solana.PublicKey,
	asset string,
	giftExpiry int64,
	baseURL string,
	opts ...EscrowServiceOption,
) EscrowService {
	service := &escrowService{
		repoManager: repoManager,
		giftIndex:   giftIndex,
		publisher:   publisher,
		programID:   programID,
		asset:       asset,
		giftExpiry:  giftExpiry,
		baseURL:     baseURL,
		now:         func() int64 { return time.Now().Unix() },
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *escrowService) Initialize(
	ctx context.Context, req InitGiftRequest,
) (*GiftInfo, error) {
	escrowAddress, _, err := pda.DeriveEscrowAddress(req.GiftId, s.programID)
	if err != nil {
		if len(req.GiftId) <= 0 {
			return nil, domain.ErrInvalidGiftId
		}
		return nil, domain.ErrGiftIdTooLong
	}
	vaultAddress, vaultBump, err := pda.DeriveVaultAddress(req.GiftId, s.programID)
	if err != nil {
		return nil, domain.ErrGiftIdTooLong
	}

	now := s.now()
	escrow, err := domain.NewEscrow(
		req.GiftId, req.Sender, req.Recipient,
		req.Amount, s.asset, req.Message,
		vaultAddress, vaultBump,
		now, now+s.giftExpiry,
	)
	if err != nil {
		return nil, err
	}

	if _, err := s.repoManager.RunTransaction(
		ctx, false,
		func(ctx context.Context) (interface{}, error) {
			if err := s.repoManager.EscrowRepository().AddEscrow(ctx, escrow); err != nil {
				return nil, err
			}

			if err := s.repoManager.AccountRepository().UpdateAccount(
				ctx, req.Sender, s.asset,
				func(a *domain.Account) (*domain.Account, error) {
					if err := a.Debit(req.Amount); err != nil {
						return nil, err
					}
					return a, nil
				},
			); err != nil {
				return nil, err
			}

			vault := domain.NewVault(vaultAddress, req.GiftId, s.asset, vaultBump)
			if err := vault.Credit(req.Amount); err != nil {
				return nil, err
			}
			return nil, s.repoManager.VaultRepository().AddVault(ctx, vault)
		},
	); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"gift_id": escrow.GiftId,
		"amount":  escrow.Amount,
	}).Info("gift initialized")

	s.mirrorToIndex(ctx, escrow)
	s.publish(ports.GiftInitialized, escrow)

	return s.giftInfo(escrow, escrowAddress, escrow.Amount), nil
}

func (s *escrowService) Claim(
	ctx context.Context, req SettleGiftRequest,
) (*GiftInfo, error) {
	return s.settle(ctx, req, domain.SettledByClaim)
}

func (s *escrowService) Refund(
	ctx context.Context, req SettleGiftRequest,
) (*GiftInfo, error) {
	return s.settle(ctx, req, domain.SettledByRefund)
}

// settle runs the Claim or Refund transition. The escrow record update, the
// vault debit and the destination account credit are committed as one
// transaction keyed on the stored Claimed pre-image, so two racing
// settlements can never both pay out.
func (s *escrowService) settle(
	ctx context.Context, req SettleGiftRequest, settleType string,
) (*GiftInfo, error) {
	now := s.now()

	var settled *domain.Escrow
	if _, err := s.repoManager.RunTransaction(
		ctx, false,
		func(ctx context.Context) (interface{}, error) {
			if err := s.repoManager.EscrowRepository().UpdateEscrow(
				ctx, req.GiftId,
				func(e *domain.Escrow) (*domain.Escrow, error) {
					var err error
					if settleType == domain.SettledByClaim {
						err = e.Claim(req.Caller, now)
					} else {
						err = e.Refund(req.Caller, now)
					}
					if err != nil {
						return nil, err
					}
					settled = e
					return e, nil
				},
			); err != nil {
				return nil, err
			}

			if err := s.repoManager.VaultRepository().UpdateVault(
				ctx, req.GiftId,
				func(v *domain.Vault) (*domain.Vault, error) {
					if err := v.Debit(settled.Amount); err != nil {
						return nil, err
					}
					return v, nil
				},
			); err != nil {
				return nil, err
			}

			destination := settled.Recipient
			if settleType == domain.SettledByRefund {
				destination = settled.Sender
			}
			return nil, s.repoManager.AccountRepository().UpdateAccount(
				ctx, destination, settled.Asset,
				func(a *domain.Account) (*domain.Account, error) {
					if err := a.Credit(settled.Amount); err != nil {
						return nil, err
					}
					return a, nil
				},
			)
		},
	); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"gift_id": settled.GiftId,
		"amount":  settled.Amount,
	}).Infof("gift settled by %s", settleType)

	s.mirrorToIndex(ctx, settled)
	eventType := ports.GiftClaimed
	if settleType == domain.SettledByRefund {
		eventType = ports.GiftRefunded
	}
	s.publish(eventType, settled)

	escrowAddress, _, _ := pda.DeriveEscrowAddress(settled.GiftId, s.programID)
	return s.giftInfo(settled, escrowAddress, 0), nil
}

func (s *escrowService) GetGift(
	ctx context.Context, giftId string,
) (*GiftInfo, error) {
	escrow, err := s.repoManager.EscrowRepository().GetEscrow(ctx, giftId)
	if err != nil {
		return nil, err
	}
	vault, err := s.repoManager.VaultRepository().GetVault(ctx, giftId)
	if err != nil {
		return nil, err
	}

	escrowAddress, _, _ := pda.DeriveEscrowAddress(giftId, s.programID)
	return s.giftInfo(escrow, escrowAddress, vault.Balance), nil
}

func (s *escrowService) ListGifts(
	ctx context.Context, filter ListGiftsFilter,
) ([]*GiftInfo, error) {
	var escrows []*domain.Escrow
	var err error
	switch {
	case filter.Sender != nil:
		escrows, err = s.repoManager.EscrowRepository().GetEscrowsForSender(ctx, *filter.Sender)
	case filter.Recipient != nil:
		escrows, err = s.repoManager.EscrowRepository().GetEscrowsForRecipient(ctx, *filter.Recipient)
	default:
		escrows, err = s.repoManager.EscrowRepository().GetAllEscrows(ctx)
	}
	if err != nil {
		return nil, err
	}

	infos := make([]*GiftInfo, 0, len(escrows))
	for _, escrow := range escrows {
		// claimed implies an emptied vault, active implies a fully funded one
		balance := escrow.Amount
		if escrow.Claimed {
			balance = 0
		}
		escrowAddress, _, _ := pda.DeriveEscrowAddress(escrow.GiftId, s.programID)
		infos = append(infos, s.giftInfo(escrow, escrowAddress, balance))
	}
	return infos, nil
}

func (s *escrowService) giftInfo(
	escrow *domain.Escrow, escrowAddress solana.PublicKey, vaultBalance uint64,
) *GiftInfo {
	link, err := giftlink.Encode(s.baseURL, escrow.GiftId)
	if err != nil {
		link = ""
	}
	return giftInfoFromEscrow(escrow, escrowAddress, vaultBalance, s.now(), link)
}

func (s *escrowService) mirrorToIndex(ctx context.Context, escrow *domain.Escrow) {
	if s.giftIndex == nil {
		return
	}
	if err := s.giftIndex.Put(ctx, ports.GiftRecord{
		GiftId:       escrow.GiftId,
		Sender:       escrow.Sender.String(),
		Recipient:    escrow.Recipient.String(),
		Amount:       escrow.Amount,
		Token:        escrow.Asset,
		VaultAddress: escrow.VaultAddress.String(),
		Message:      escrow.Message,
		CreatedAt:    escrow.CreatedAt,
		Claimed:      escrow.Claimed,
		ClaimedAt:    escrow.ClaimedAt,
	}); err != nil {
		log.WithError(err).WithField("gift_id", escrow.GiftId).
			Warn("failed to mirror gift to off-chain index")
	}
}

func (s *escrowService) publish(eventType string, escrow *domain.Escrow) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(ports.Event{
		Id:        uuid.New().String(),
		Type:      eventType,
		GiftId:    escrow.GiftId,
		Sender:    escrow.Sender.String(),
		Recipient: escrow.Recipient.String(),
		Amount:    escrow.Amount,
		Asset:     escrow.Asset,
		Timestamp: s.now(),
	})
}
