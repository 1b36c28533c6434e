// Package oracle defines the signing-oracle contract this core talks to:
// the core never holds private key material itself, only a Signer it
// can hand a digest and a derivation path to.
//
// Grounded in the teacher's WalletManager (services/node/wallets.go) for
// the local-key-custody reference implementation, and the
// settlement-service message-bus pattern
// (services/settlement/main.go, blacktrace-go/node/network.go) for the
// NATS-backed remote signer.
package oracle

import (
	"context"

	"github.com/blacktrace/kaspa-txcore/kerrors"
	"github.com/blacktrace/kaspa-txcore/primitives"
)

// DerivationPath is a sequence of 4-byte little-endian unsigned integers
// identifying a key relative to the oracle's root.
type DerivationPath []uint32

// Encode renders the path as the flat byte string the wire protocol
// carries: each index as a 4-byte little-endian word.
func (p DerivationPath) Encode() []byte {
	out := make([]byte, 0, len(p)*4)
	for _, idx := range p {
		out = primitives.PutUint32LE(out, idx)
	}
	return out
}

// Signer is the external signing-oracle contract: given a 32-byte
// digest and a derivation path, produce a 64-byte raw signature. For
// ECDSA that's (r ‖ s); the caller (txbuilder) handles DER+low-S
// encoding. For Schnorr it's the signature bytes as-is.
type Signer interface {
	Sign(ctx context.Context, digest [32]byte, path DerivationPath) ([64]byte, error)
}

// PublicKeyProvider is implemented by signers that can also hand back
// the public key material a derivation path resolves to, so the caller
// can build the correct address/scriptPubKey before asking for a
// signature.
type PublicKeyProvider interface {
	PublicKey(ctx context.Context, path DerivationPath) ([]byte, error)
}

var errNotImplemented = &kerrors.InternalError{Message: "signer does not implement this operation"}
