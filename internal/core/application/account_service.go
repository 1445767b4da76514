package application

import (
	"context"

	"github.com/gagliardetto/solana-go"
	log "github.com/sirupsen/logrus"

	"github.com/NikhilRaikwar/solpacket-daemon/internal/core/domain"
	"github.com/NikhilRaikwar/solpacket-daemon/internal/core/ports"
)

// AccountService manages the spendable token balances debited and credited by
// the escrow program. Deposit plays the role of the faucet/on-ramp funding a
// sender before it can initialize gifts.
type AccountService interface {
	Deposit(ctx context.Context, owner solana.PublicKey, amount uint64) (*BalanceInfo, error)
	Withdraw(ctx context.Context, owner solana.PublicKey, amount uint64) (*BalanceInfo, error)
	GetBalance(ctx context.Context, owner solana.PublicKey) (*BalanceInfo, error)
}

type accountService struct {
	repoManager ports.RepoManager
	asset       string
}

// NewAccountService returns an AccountService operating on balances of the
// configured asset.
func NewAccountService(repoManager ports.RepoManager, asset string) AccountService {
	return &accountService{repoManager: repoManager, asset: asset}
}

func (s *accountService) Deposit(
	ctx context.Context, owner solana.PublicKey, amount uint64,
) (*BalanceInfo, error) {
	if owner.IsZero() {
		return nil, domain.ErrInvalidSender
	}
	info, err := s.updateBalance(ctx, owner, func(a *domain.Account) error {
		return a.Credit(amount)
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"owner":  owner.String(),
		"amount": amount,
	}).Debug("account deposited")
	return info, nil
}

func (s *accountService) Withdraw(
	ctx context.Context, owner solana.PublicKey, amount uint64,
) (*BalanceInfo, error) {
	if owner.IsZero() {
		return nil, domain.ErrInvalidSender
	}
	return s.updateBalance(ctx, owner, func(a *domain.Account) error {
		return a.Debit(amount)
	})
}

func (s *accountService) GetBalance(
	ctx context.Context, owner solana.PublicKey,
) (*BalanceInfo, error) {
	account, err := s.repoManager.AccountRepository().GetOrCreateAccount(
		ctx, owner, s.asset,
	)
	if err != nil {
		return nil, err
	}
	return &BalanceInfo{
		Owner:   account.Owner.String(),
		Asset:   account.Asset,
		Balance: account.Balance,
	}, nil
}

func (s *accountService) updateBalance(
	ctx context.Context, owner solana.PublicKey,
	applyFn func(a *domain.Account) error,
) (*BalanceInfo, error) {
	var updated *domain.Account
	if _, err := s.repoManager.RunTransaction(
		ctx, false,
		func(ctx context.Context) (interface{}, error) {
			return nil, s.repoManager.AccountRepository().UpdateAccount(
				ctx, owner, s.asset,
				func(a *domain.Account) (*domain.Account, error) {
					if err := applyFn(a); err != nil {
						return nil, err
					}
					updated = a
					return a, nil
				},
			)
		},
	); err != nil {
		return nil, err
	}

	return &BalanceInfo{
		Owner:   updated.Owner.String(),
		Asset:   updated.Asset,
		Balance: updated.Balance,
	}, nil
}
