package application_test

import (
	"context"
	"sync"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"

	"github.com/NikhilRaikwar/solpacket-daemon/internal/core/application"
	"github.com/NikhilRaikwar/solpacket-daemon/internal/core/domain"
	"github.com/NikhilRaikwar/solpacket-daemon/internal/core/ports"
	"github.com/NikhilRaikwar/solpacket-daemon/internal/infrastructure/index"
	"github.com/NikhilRaikwar/solpacket-daemon/internal/infrastructure/storage/db/inmemory"
)

const (
	testAsset   = "4zMMC9srt5Ri5X14GAgXhaHii3GnPAEERYPJgZJDncDU"
	testBaseURL = "https://solpacket.app"

	oneHour = int64(3600)
)

var (
	programID = solana.MustPublicKeyFromBase58("AiebTbnydag8QCPFhapiuPzd5hy8MvKNXeVVYR2dZ94Z")
	sender    = solana.MustPublicKeyFromBase58("BPFLoaderUpgradeab1e11111111111111111111111")
	recipient = solana.MustPublicKeyFromBase58("Vote111111111111111111111111111111111111111")
	stranger  = solana.MustPublicKeyFromBase58("Stake11111111111111111111111111111111111111")
)

type mockPublisher struct {
	locker *sync.Mutex
	events []ports.Event
}

func newMockPublisher() *mockPublisher {
	return &mockPublisher{locker: &sync.Mutex{}}
}

func (p *mockPublisher) Publish(event ports.Event) {
	p.locker.Lock()
	defer p.locker.Unlock()
	p.events = append(p.events, event)
}

func (p *mockPublisher) types() []string {
	p.locker.Lock()
	defer p.locker.Unlock()
	types := make([]string, 0, len(p.events))
	for _, e := range p.events {
		types = append(types, e.Type)
	}
	return types
}

type testServices struct {
	repoManager ports.RepoManager
	giftIndex   ports.GiftIndex
	publisher   *mockPublisher
	escrowSvc   application.EscrowService
	accountSvc  application.AccountService
}

func newTestServices(t *testing.T, giftExpiry int64) *testServices {
	t.Helper()

	repoManager := inmemory.NewRepoManager()
	giftIndex := index.NewMemoryGiftIndex()
	publisher := newMockPublisher()

	return &testServices{
		repoManager: repoManager,
		giftIndex:   giftIndex,
		publisher:   publisher,
		escrowSvc: application.NewEscrowService(
			repoManager, giftIndex, publisher,
			programID, testAsset, giftExpiry, testBaseURL,
		),
		accountSvc: application.NewAccountService(repoManager, testAsset),
	}
}

func (s *testServices) fundSender(t *testing.T, amount uint64) {
	t.Helper()
	_, err := s.accountSvc.Deposit(context.Background(), sender, amount)
	require.NoError(t, err)
}

func (s *testServices) balanceOf(t *testing.T, owner solana.PublicKey) uint64 {
	t.Helper()
	info, err := s.accountSvc.GetBalance(context.Background(), owner)
	require.NoError(t, err)
	return info.Balance
}

func TestInitializeGift(t *testing.T) {
	t.Parallel()

	svc := newTestServices(t, oneHour)
	svc.fundSender(t, 15_000_000)

	ctx := context.Background()
	info, err := svc.escrowSvc.Initialize(ctx, application.InitGiftRequest{
		GiftId:    "abc123",
		Sender:    sender,
		Recipient: recipient,
		Amount:    10_000_000,
		Message:   "happy birthday",
	})
	require.NoError(t, err)
	require.False(t, info.Claimed)
	require.Equal(t, domain.EscrowStatusActive, info.Status)
	require.Equal(t, uint64(10_000_000), info.VaultBalance)
	require.Equal(t, "https://solpacket.app/claim/abc123", info.ClaimLink)

	// sender account was debited, vault funded
	require.Equal(t, uint64(5_000_000), svc.balanceOf(t, sender))

	stored, err := svc.escrowSvc.GetGift(ctx, "abc123")
	require.NoError(t, err)
	require.False(t, stored.Claimed)
	require.Equal(t, uint64(10_000_000), stored.VaultBalance)
	require.Equal(t, info.VaultAddress, stored.VaultAddress)
	require.Equal(t, info.EscrowAddress, stored.EscrowAddress)

	// mirrored to the off-chain index
	record, err := svc.giftIndex.Get(ctx, "abc123")
	require.NoError(t, err)
	require.NotNil(t, record)
	require.Equal(t, sender.String(), record.Sender)
	require.False(t, record.Claimed)

	require.Equal(t, []string{ports.GiftInitialized}, svc.publisher.types())
}

func TestFailingInitializeGift(t *testing.T) {
	t.Parallel()

	t.Run("invalid_amount", func(t *testing.T) {
		svc := newTestServices(t, oneHour)
		svc.fundSender(t, 1000)

		_, err := svc.escrowSvc.Initialize(context.Background(), application.InitGiftRequest{
			GiftId: "abc123", Sender: sender, Recipient: recipient, Amount: 0,
		})
		require.EqualError(t, err, domain.ErrInvalidAmount.Error())
	})

	t.Run("insufficient_funds", func(t *testing.T) {
		svc := newTestServices(t, oneHour)
		svc.fundSender(t, 500)

		_, err := svc.escrowSvc.Initialize(context.Background(), application.InitGiftRequest{
			GiftId: "abc123", Sender: sender, Recipient: recipient, Amount: 1000,
		})
		require.EqualError(t, err, domain.ErrInsufficientFunds.Error())

		// nothing was committed, not even the escrow record
		_, err = svc.escrowSvc.GetGift(context.Background(), "abc123")
		require.EqualError(t, err, domain.ErrGiftNotFound.Error())
		require.Equal(t, uint64(500), svc.balanceOf(t, sender))
	})

	t.Run("duplicate_gift_id", func(t *testing.T) {
		svc := newTestServices(t, oneHour)
		svc.fundSender(t, 5000)

		_, err := svc.escrowSvc.Initialize(context.Background(), application.InitGiftRequest{
			GiftId: "abc123", Sender: sender, Recipient: recipient, Amount: 1000,
		})
		require.NoError(t, err)

		_, err = svc.escrowSvc.Initialize(context.Background(), application.InitGiftRequest{
			GiftId: "abc123", Sender: sender, Recipient: recipient, Amount: 1000,
		})
		require.EqualError(t, err, domain.ErrDuplicateGiftId.Error())
		// the failed attempt did not debit the sender again
		require.Equal(t, uint64(4000), svc.balanceOf(t, sender))
	})

	t.Run("gift_id_exceeding_seed_length", func(t *testing.T) {
		svc := newTestServices(t, oneHour)
		svc.fundSender(t, 5000)

		_, err := svc.escrowSvc.Initialize(context.Background(), application.InitGiftRequest{
			GiftId: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
			Sender: sender, Recipient: recipient, Amount: 1000,
		})
		require.EqualError(t, err, domain.ErrGiftIdTooLong.Error())
	})
}

func TestClaimGift(t *testing.T) {
	t.Parallel()

	svc := newTestServices(t, oneHour)
	svc.fundSender(t, 10_000_000)

	ctx := context.Background()
	_, err := svc.escrowSvc.Initialize(ctx, application.InitGiftRequest{
		GiftId: "abc123", Sender: sender, Recipient: recipient, Amount: 10_000_000,
	})
	require.NoError(t, err)

	info, err := svc.escrowSvc.Claim(ctx, application.SettleGiftRequest{
		GiftId: "abc123", Caller: recipient,
	})
	require.NoError(t, err)
	require.True(t, info.Claimed)
	require.Equal(t, domain.EscrowStatusClaimed, info.Status)
	require.Zero(t, info.VaultBalance)

	// the full amount moved from the vault to the recipient
	require.Equal(t, uint64(10_000_000), svc.balanceOf(t, recipient))
	require.Zero(t, svc.balanceOf(t, sender))

	stored, err := svc.escrowSvc.GetGift(ctx, "abc123")
	require.NoError(t, err)
	require.Zero(t, stored.VaultBalance)
	require.Equal(t, domain.SettledByClaim, stored.SettledBy)

	require.Equal(t, []string{ports.GiftInitialized, ports.GiftClaimed}, svc.publisher.types())
}

func TestFailingClaimGift(t *testing.T) {
	t.Parallel()

	t.Run("gift_not_found", func(t *testing.T) {
		svc := newTestServices(t, oneHour)

		_, err := svc.escrowSvc.Claim(context.Background(), application.SettleGiftRequest{
			GiftId: "missing", Caller: recipient,
		})
		require.EqualError(t, err, domain.ErrGiftNotFound.Error())
	})

	t.Run("unauthorized_recipient", func(t *testing.T) {
		svc := newTestServices(t, oneHour)
		svc.fundSender(t, 1000)
		ctx := context.Background()

		_, err := svc.escrowSvc.Initialize(ctx, application.InitGiftRequest{
			GiftId: "abc123", Sender: sender, Recipient: recipient, Amount: 1000,
		})
		require.NoError(t, err)

		_, err = svc.escrowSvc.Claim(ctx, application.SettleGiftRequest{
			GiftId: "abc123", Caller: stranger,
		})
		require.EqualError(t, err, domain.ErrUnauthorizedRecipient.Error())

		// vault balance untouched
		stored, err := svc.escrowSvc.GetGift(ctx, "abc123")
		require.NoError(t, err)
		require.Equal(t, uint64(1000), stored.VaultBalance)
		require.Zero(t, svc.balanceOf(t, stranger))
	})

	t.Run("already_claimed", func(t *testing.T) {
		svc := newTestServices(t, oneHour)
		svc.fundSender(t, 1000)
		ctx := context.Background()

		_, err := svc.escrowSvc.Initialize(ctx, application.InitGiftRequest{
			GiftId: "abc123", Sender: sender, Recipient: recipient, Amount: 1000,
		})
		require.NoError(t, err)

		_, err = svc.escrowSvc.Claim(ctx, application.SettleGiftRequest{
			GiftId: "abc123", Caller: recipient,
		})
		require.NoError(t, err)

		_, err = svc.escrowSvc.Claim(ctx, application.SettleGiftRequest{
			GiftId: "abc123", Caller: recipient,
		})
		require.EqualError(t, err, domain.ErrAlreadyClaimed.Error())

		// idempotent failure, the recipient was not paid twice
		require.Equal(t, uint64(1000), svc.balanceOf(t, recipient))
	})

	t.Run("expired", func(t *testing.T) {
		// zero validity window, the gift expires the moment it is created
		svc := newTestServices(t, 0)
		svc.fundSender(t, 1000)
		ctx := context.Background()

		_, err := svc.escrowSvc.Initialize(ctx, application.InitGiftRequest{
			GiftId: "abc123", Sender: sender, Recipient: recipient, Amount: 1000,
		})
		require.NoError(t, err)

		_, err = svc.escrowSvc.Claim(ctx, application.SettleGiftRequest{
			GiftId: "abc123", Caller: recipient,
		})
		require.EqualError(t, err, domain.ErrGiftExpired.Error())
	})
}

func TestRefundGift(t *testing.T) {
	t.Parallel()

	svc := newTestServices(t, 0)
	svc.fundSender(t, 5_000_000)

	ctx := context.Background()
	_, err := svc.escrowSvc.Initialize(ctx, application.InitGiftRequest{
		GiftId: "xyz789", Sender: sender, Recipient: recipient, Amount: 5_000_000,
	})
	require.NoError(t, err)
	require.Zero(t, svc.balanceOf(t, sender))

	info, err := svc.escrowSvc.Refund(ctx, application.SettleGiftRequest{
		GiftId: "xyz789", Caller: sender,
	})
	require.NoError(t, err)
	require.True(t, info.Claimed)
	require.Equal(t, domain.EscrowStatusRefunded, info.Status)

	// the full amount returned to the sender
	require.Equal(t, uint64(5_000_000), svc.balanceOf(t, sender))
	require.Zero(t, svc.balanceOf(t, recipient))

	// a refunded gift can never be claimed afterwards
	_, err = svc.escrowSvc.Claim(ctx, application.SettleGiftRequest{
		GiftId: "xyz789", Caller: recipient,
	})
	require.EqualError(t, err, domain.ErrAlreadyClaimed.Error())

	require.Equal(t, []string{ports.GiftInitialized, ports.GiftRefunded}, svc.publisher.types())
}

func TestFailingRefundGift(t *testing.T) {
	t.Parallel()

	t.Run("not_yet_expired", func(t *testing.T) {
		svc := newTestServices(t, oneHour)
		svc.fundSender(t, 1000)
		ctx := context.Background()

		_, err := svc.escrowSvc.Initialize(ctx, application.InitGiftRequest{
			GiftId: "abc123", Sender: sender, Recipient: recipient, Amount: 1000,
		})
		require.NoError(t, err)

		_, err = svc.escrowSvc.Refund(ctx, application.SettleGiftRequest{
			GiftId: "abc123", Caller: sender,
		})
		require.EqualError(t, err, domain.ErrGiftNotExpired.Error())
		require.Zero(t, svc.balanceOf(t, sender))
	})

	t.Run("unauthorized_sender", func(t *testing.T) {
		svc := newTestServices(t, 0)
		svc.fundSender(t, 1000)
		ctx := context.Background()

		_, err := svc.escrowSvc.Initialize(ctx, application.InitGiftRequest{
			GiftId: "abc123", Sender: sender, Recipient: recipient, Amount: 1000,
		})
		require.NoError(t, err)

		_, err = svc.escrowSvc.Refund(ctx, application.SettleGiftRequest{
			GiftId: "abc123", Caller: stranger,
		})
		require.EqualError(t, err, domain.ErrUnauthorizedSender.Error())
	})
}

func TestConcurrentClaims(t *testing.T) {
	t.Parallel()

	svc := newTestServices(t, oneHour)
	svc.fundSender(t, 1000)
	ctx := context.Background()

	_, err := svc.escrowSvc.Initialize(ctx, application.InitGiftRequest{
		GiftId: "abc123", Sender: sender, Recipient: recipient, Amount: 1000,
	})
	require.NoError(t, err)

	numOfClaims := 10
	errs := make([]error, numOfClaims)
	wg := &sync.WaitGroup{}
	wg.Add(numOfClaims)
	for i := 0; i < numOfClaims; i++ {
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.escrowSvc.Claim(ctx, application.SettleGiftRequest{
				GiftId: "abc123", Caller: recipient,
			})
		}(i)
	}
	wg.Wait()

	// exactly one claim succeeded, all the others lost the race
	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			require.EqualError(t, err, domain.ErrAlreadyClaimed.Error())
		}
	}
	require.Equal(t, 1, succeeded)
	require.Equal(t, uint64(1000), svc.balanceOf(t, recipient))
}

func TestConcurrentClaimAndRefund(t *testing.T) {
	t.Parallel()

	// zero window: the claim is bound to fail with Expired, the refund is the
	// only transition allowed to win
	svc := newTestServices(t, 0)
	svc.fundSender(t, 1000)
	ctx := context.Background()

	_, err := svc.escrowSvc.Initialize(ctx, application.InitGiftRequest{
		GiftId: "abc123", Sender: sender, Recipient: recipient, Amount: 1000,
	})
	require.NoError(t, err)

	wg := &sync.WaitGroup{}
	wg.Add(2)
	var claimErr, refundErr error
	go func() {
		defer wg.Done()
		_, claimErr = svc.escrowSvc.Claim(ctx, application.SettleGiftRequest{
			GiftId: "abc123", Caller: recipient,
		})
	}()
	go func() {
		defer wg.Done()
		_, refundErr = svc.escrowSvc.Refund(ctx, application.SettleGiftRequest{
			GiftId: "abc123", Caller: sender,
		})
	}()
	wg.Wait()

	require.Error(t, claimErr)
	require.NoError(t, refundErr)
	require.Equal(t, uint64(1000), svc.balanceOf(t, sender))
	require.Zero(t, svc.balanceOf(t, recipient))
}

func TestExpiryWindowBoundary(t *testing.T) {
	t.Parallel()

	clock := int64(1700000000)
	repoManager := inmemory.NewRepoManager()
	escrowSvc := application.NewEscrowService(
		repoManager, nil, nil, programID, testAsset, oneHour, testBaseURL,
		application.WithClock(func() int64 { return clock }),
	)
	accountSvc := application.NewAccountService(repoManager, testAsset)

	ctx := context.Background()
	_, err := accountSvc.Deposit(ctx, sender, 1000)
	require.NoError(t, err)

	_, err = escrowSvc.Initialize(ctx, application.InitGiftRequest{
		GiftId: "abc123", Sender: sender, Recipient: recipient, Amount: 1000,
	})
	require.NoError(t, err)

	// inside the window: refunds are locked out
	clock += oneHour - 1
	_, err = escrowSvc.Refund(ctx, application.SettleGiftRequest{
		GiftId: "abc123", Caller: sender,
	})
	require.EqualError(t, err, domain.ErrGiftNotExpired.Error())

	// the window closes at created_at + expiry, inclusive
	clock++
	_, err = escrowSvc.Claim(ctx, application.SettleGiftRequest{
		GiftId: "abc123", Caller: recipient,
	})
	require.EqualError(t, err, domain.ErrGiftExpired.Error())

	info, err := escrowSvc.Refund(ctx, application.SettleGiftRequest{
		GiftId: "abc123", Caller: sender,
	})
	require.NoError(t, err)
	require.Equal(t, domain.EscrowStatusRefunded, info.Status)

	balance, err := accountSvc.GetBalance(ctx, sender)
	require.NoError(t, err)
	require.Equal(t, uint64(1000), balance.Balance)
}

func TestListGifts(t *testing.T) {
	t.Parallel()

	svc := newTestServices(t, oneHour)
	svc.fundSender(t, 3000)
	ctx := context.Background()

	for _, giftId := range []string{"gift1", "gift2", "gift3"} {
		_, err := svc.escrowSvc.Initialize(ctx, application.InitGiftRequest{
			GiftId: giftId, Sender: sender, Recipient: recipient, Amount: 1000,
		})
		require.NoError(t, err)
	}

	all, err := svc.escrowSvc.ListGifts(ctx, application.ListGiftsFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)

	bySender, err := svc.escrowSvc.ListGifts(ctx, application.ListGiftsFilter{Sender: &sender})
	require.NoError(t, err)
	require.Len(t, bySender, 3)

	byStranger, err := svc.escrowSvc.ListGifts(ctx, application.ListGiftsFilter{Sender: &stranger})
	require.NoError(t, err)
	require.Len(t, byStranger, 0)

	byRecipient, err := svc.escrowSvc.ListGifts(ctx, application.ListGiftsFilter{Recipient: &recipient})
	require.NoError(t, err)
	require.Len(t, byRecipient, 3)
}
