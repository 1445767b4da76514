// Package reqsig signs and verifies caller requests. A request is
// authenticated by an ed25519 signature of its raw body, produced with the
// caller's Solana keypair.
package reqsig

import (
	"crypto/ed25519"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// HeaderPubkey carries the base58 public key of the caller.
const HeaderPubkey = "X-Solpacket-Pubkey"

// HeaderSignature carries the base58 ed25519 signature of the request body.
const HeaderSignature = "X-Solpacket-Signature"

// Sign returns the base58 signature of the given body.
func Sign(privateKey solana.PrivateKey, body []byte) (string, error) {
	sig, err := privateKey.Sign(body)
	if err != nil {
		return "", fmt.Errorf("signing request: %w", err)
	}
	return sig.String(), nil
}

// Verify checks the given base58 signature of body against the base58 public
// key and returns the authenticated identity.
func Verify(pubkey, signature string, body []byte) (solana.PublicKey, error) {
	pk, err := solana.PublicKeyFromBase58(pubkey)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("invalid public key: %w", err)
	}
	sig, err := solana.SignatureFromBase58(signature)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("invalid signature: %w", err)
	}
	if !ed25519.Verify(ed25519.PublicKey(pk[:]), body, sig[:]) {
		return solana.PublicKey{}, fmt.Errorf("signature verification failed")
	}
	return pk, nil
}
