// Package pda derives the program-owned addresses of the gift escrow. Both
// the escrow record and its vault live at program-derived addresses, seeded
// by the gift id, so that any party can recompute them while no external
// signing key can ever control them.
package pda

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

var (
	escrowSeed = []byte("escrow")
	vaultSeed  = []byte("vault")
)

// DeriveEscrowAddress returns the deterministic address of the escrow record
// for the given gift id, along with the bump used by the derivation.
func DeriveEscrowAddress(
	giftId string, programID solana.PublicKey,
) (solana.PublicKey, uint8, error) {
	return derive(escrowSeed, giftId, programID)
}

// DeriveVaultAddress returns the deterministic address of the vault for the
// given gift id, along with the bump used by the derivation.
func DeriveVaultAddress(
	giftId string, programID solana.PublicKey,
) (solana.PublicKey, uint8, error) {
	return derive(vaultSeed, giftId, programID)
}

func derive(
	seed []byte, giftId string, programID solana.PublicKey,
) (solana.PublicKey, uint8, error) {
	if len(giftId) <= 0 || len(giftId) > solana.MaxSeedLength {
		return solana.PublicKey{}, 0, fmt.Errorf(
			"gift id length must be in range [1, %d]", solana.MaxSeedLength,
		)
	}

	addr, bump, err := solana.FindProgramAddress(
		[][]byte{seed, []byte(giftId)}, programID,
	)
	if err != nil {
		return solana.PublicKey{}, 0, fmt.Errorf("deriving address: %w", err)
	}
	return addr, bump, nil
}
