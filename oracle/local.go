package oracle

import (
	"context"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"

	"github.com/blacktrace/kaspa-txcore/kerrors"
	"github.com/blacktrace/kaspa-txcore/primitives"
)

// LocalSchnorrSigner and LocalECDSASigner are reference Signer
// implementations backed by a single in-process private key. Real
// deployments talk to an HSM or threshold-signing service instead (see
// NATSSigner); these exist for tests and local development, matching
// the teacher's WalletManager holding keys directly rather than
// delegating custody.
//
// Both ignore the derivation path: deriving child keys from a root key
// (BIP32-style hardened derivation) is outside this core's scope, and a
// single fixed key is sufficient to exercise the signing contract.
type LocalSchnorrSigner struct {
	key *btcec.PrivateKey
}

// NewLocalSchnorrSigner wraps an existing secp256k1 private key.
func NewLocalSchnorrSigner(key *btcec.PrivateKey) *LocalSchnorrSigner {
	return &LocalSchnorrSigner{key: key}
}

func (s *LocalSchnorrSigner) Sign(_ context.Context, digest [32]byte, _ DerivationPath) ([64]byte, error) {
	sig, err := schnorr.Sign(s.key, digest[:])
	if err != nil {
		return [64]byte{}, &kerrors.CryptographicError{Message: "schnorr signing failed: " + err.Error()}
	}
	var out [64]byte
	copy(out[:], sig.Serialize())
	return out, nil
}

func (s *LocalSchnorrSigner) PublicKey(_ context.Context, _ DerivationPath) ([]byte, error) {
	return schnorr.SerializePubKey(s.key.PubKey()), nil
}

// LocalECDSASigner signs with github.com/btcsuite/btcd/btcec/v2/ecdsa over
// the secp256k1 curve, the way the teacher's zcash_tx.go does
// (signature := ecdsa.Sign(privKey, sigHash)), returning the raw (r ‖ s)
// pair the oracle contract specifies — DER encoding and low-S
// normalization are txbuilder's job, not the oracle's.
type LocalECDSASigner struct {
	key *btcec.PrivateKey
}

// NewLocalECDSASigner wraps an existing secp256k1 private key.
func NewLocalECDSASigner(key *btcec.PrivateKey) *LocalECDSASigner {
	return &LocalECDSASigner{key: key}
}

func (s *LocalECDSASigner) Sign(_ context.Context, digest [32]byte, _ DerivationPath) ([64]byte, error) {
	var zero [64]byte
	sig := ecdsa.Sign(s.key, digest[:])
	r, sVal, err := primitives.DecodeDERSignature(sig.Serialize())
	if err != nil {
		return zero, &kerrors.CryptographicError{Message: "decode ecdsa signature: " + err.Error()}
	}
	var out [64]byte
	rBytes := r.Bytes()
	sBytes := sVal.Bytes()
	copy(out[32-len(rBytes):32], rBytes)
	copy(out[64-len(sBytes):64], sBytes)
	return out, nil
}

func (s *LocalECDSASigner) PublicKey(_ context.Context, _ DerivationPath) ([]byte, error) {
	return s.key.PubKey().SerializeCompressed(), nil
}
