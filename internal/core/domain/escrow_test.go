package domain_test

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"

	"github.com/NikhilRaikwar/solpacket-daemon/internal/core/domain"
)

const (
	testAsset = "4zMMC9srt5Ri5X14GAgXhaHii3GnPAEERYPJgZJDncDU"

	createdAt = int64(1700000000)
	expiresAt = createdAt + 86400
)

var (
	sender    = solana.MustPublicKeyFromBase58("BPFLoaderUpgradeab1e11111111111111111111111")
	recipient = solana.MustPublicKeyFromBase58("Vote111111111111111111111111111111111111111")
	stranger  = solana.MustPublicKeyFromBase58("Stake11111111111111111111111111111111111111")
	vaultAddr = solana.MustPublicKeyFromBase58("SysvarC1ock11111111111111111111111111111111")
)

func TestNewEscrow(t *testing.T) {
	t.Parallel()

	escrow, err := domain.NewEscrow(
		"abc123", sender, recipient, 1000, testAsset, "happy birthday",
		vaultAddr, 255, createdAt, expiresAt,
	)
	require.NoError(t, err)
	require.NotNil(t, escrow)
	require.False(t, escrow.Claimed)
	require.Equal(t, domain.EscrowStatusActive, escrow.Status(createdAt))
	require.Equal(t, vaultAddr, escrow.VaultAddress)
}

func TestFailingNewEscrow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		giftId      string
		sender      solana.PublicKey
		recipient   solana.PublicKey
		amount      uint64
		expectedErr error
	}{
		{
			name:        "empty_gift_id",
			giftId:      "",
			sender:      sender,
			recipient:   recipient,
			amount:      1000,
			expectedErr: domain.ErrInvalidGiftId,
		},
		{
			name:        "gift_id_too_long",
			giftId:      "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
			sender:      sender,
			recipient:   recipient,
			amount:      1000,
			expectedErr: domain.ErrGiftIdTooLong,
		},
		{
			name:        "zero_amount",
			giftId:      "abc123",
			sender:      sender,
			recipient:   recipient,
			amount:      0,
			expectedErr: domain.ErrInvalidAmount,
		},
		{
			name:        "zero_sender",
			giftId:      "abc123",
			sender:      solana.PublicKey{},
			recipient:   recipient,
			amount:      1000,
			expectedErr: domain.ErrInvalidSender,
		},
		{
			name:        "zero_recipient",
			giftId:      "abc123",
			sender:      sender,
			recipient:   solana.PublicKey{},
			amount:      1000,
			expectedErr: domain.ErrInvalidRecipient,
		},
	}

	for i := range tests {
		tt := tests[i]
		t.Run(tt.name, func(t *testing.T) {
			escrow, err := domain.NewEscrow(
				tt.giftId, tt.sender, tt.recipient, tt.amount, testAsset, "",
				vaultAddr, 255, createdAt, expiresAt,
			)
			require.Nil(t, escrow)
			require.EqualError(t, err, tt.expectedErr.Error())
		})
	}
}

func TestEscrowClaim(t *testing.T) {
	t.Parallel()

	escrow := newActiveEscrow(t)
	now := createdAt + 10

	err := escrow.Claim(recipient, now)
	require.NoError(t, err)
	require.True(t, escrow.Claimed)
	require.Equal(t, now, escrow.ClaimedAt)
	require.Equal(t, domain.SettledByClaim, escrow.SettledBy)
	require.Equal(t, domain.EscrowStatusClaimed, escrow.Status(now))
}

func TestFailingEscrowClaim(t *testing.T) {
	t.Parallel()

	t.Run("already_claimed", func(t *testing.T) {
		escrow := newActiveEscrow(t)
		require.NoError(t, escrow.Claim(recipient, createdAt+10))

		err := escrow.Claim(recipient, createdAt+20)
		require.EqualError(t, err, domain.ErrAlreadyClaimed.Error())
	})

	t.Run("unauthorized_recipient", func(t *testing.T) {
		escrow := newActiveEscrow(t)

		err := escrow.Claim(stranger, createdAt+10)
		require.EqualError(t, err, domain.ErrUnauthorizedRecipient.Error())
		require.False(t, escrow.Claimed)

		// the sender itself is not entitled to claim either
		err = escrow.Claim(sender, createdAt+10)
		require.EqualError(t, err, domain.ErrUnauthorizedRecipient.Error())
		require.False(t, escrow.Claimed)
	})

	t.Run("expired", func(t *testing.T) {
		escrow := newActiveEscrow(t)

		err := escrow.Claim(recipient, expiresAt)
		require.EqualError(t, err, domain.ErrGiftExpired.Error())
		require.False(t, escrow.Claimed)
		require.Equal(t, domain.EscrowStatusExpired, escrow.Status(expiresAt))
	})
}

func TestEscrowRefund(t *testing.T) {
	t.Parallel()

	escrow := newActiveEscrow(t)
	now := expiresAt + 10

	err := escrow.Refund(sender, now)
	require.NoError(t, err)
	require.True(t, escrow.Claimed)
	require.Equal(t, domain.SettledByRefund, escrow.SettledBy)
	require.Equal(t, domain.EscrowStatusRefunded, escrow.Status(now))
}

func TestFailingEscrowRefund(t *testing.T) {
	t.Parallel()

	t.Run("already_claimed", func(t *testing.T) {
		escrow := newActiveEscrow(t)
		require.NoError(t, escrow.Claim(recipient, createdAt+10))

		err := escrow.Refund(sender, expiresAt+10)
		require.EqualError(t, err, domain.ErrAlreadyClaimed.Error())
	})

	t.Run("unauthorized_sender", func(t *testing.T) {
		escrow := newActiveEscrow(t)

		err := escrow.Refund(stranger, expiresAt+10)
		require.EqualError(t, err, domain.ErrUnauthorizedSender.Error())
		require.False(t, escrow.Claimed)
	})

	t.Run("not_yet_expired", func(t *testing.T) {
		escrow := newActiveEscrow(t)

		err := escrow.Refund(sender, expiresAt-1)
		require.EqualError(t, err, domain.ErrGiftNotExpired.Error())
		require.False(t, escrow.Claimed)
	})
}

func newActiveEscrow(t *testing.T) *domain.Escrow {
	t.Helper()
	escrow, err := domain.NewEscrow(
		"abc123", sender, recipient, 1000, testAsset, "",
		vaultAddr, 255, createdAt, expiresAt,
	)
	require.NoError(t, err)
	return escrow
}
