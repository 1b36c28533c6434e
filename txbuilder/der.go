package txbuilder

import (
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"

	"github.com/blacktrace/kaspa-txcore/kerrors"
	"github.com/blacktrace/kaspa-txcore/primitives"
)

// secp256k1Order is the order n of the secp256k1 group, used for low-S
// normalization. See SPEC_FULL.md §6 open question 4: normalization
// uses big.Int wide arithmetic rather than fixed-width subtraction.
var secp256k1Order = btcec.S256().N

var secp256k1HalfOrder = new(big.Int).Rsh(secp256k1Order, 1)

// EncodeDERLowS takes a raw 64-byte (r ‖ s) signature as returned by the
// signing oracle and produces a DER-encoded signature with s normalized
// to the low-S form (s <= n/2, replacing s with n-s otherwise).
func EncodeDERLowS(rawSig [64]byte) ([]byte, error) {
	r := new(big.Int).SetBytes(rawSig[:32])
	s := new(big.Int).SetBytes(rawSig[32:])

	if r.Sign() == 0 || s.Sign() == 0 {
		return nil, &kerrors.CryptographicError{Message: "signature r or s is zero"}
	}

	if s.Cmp(secp256k1HalfOrder) > 0 {
		s = new(big.Int).Sub(secp256k1Order, s)
	}

	return derEncode(r, s), nil
}

func derEncode(r, s *big.Int) []byte {
	rBytes := derEncodeInt(r)
	sBytes := derEncodeInt(s)

	body := make([]byte, 0, len(rBytes)+len(sBytes))
	body = append(body, rBytes...)
	body = append(body, sBytes...)

	out := make([]byte, 0, len(body)+2)
	out = append(out, 0x30, byte(len(body)))
	out = append(out, body...)
	return out
}

// derEncodeInt renders v as a DER INTEGER: tag 0x02, length, and its
// big-endian bytes, prepending a 0x00 pad byte if the high bit of the
// first byte would otherwise be set (which DER would read as negative).
func derEncodeInt(v *big.Int) []byte {
	b := v.Bytes()
	if len(b) == 0 {
		b = []byte{0x00}
	}
	if b[0]&0x80 != 0 {
		padded := make([]byte, 0, len(b)+1)
		padded = append(padded, 0x00)
		padded = append(padded, b...)
		b = padded
	}
	out := make([]byte, 0, len(b)+2)
	out = append(out, 0x02, byte(len(b)))
	return append(out, b...)
}

// DecodeDER parses a DER-encoded ECDSA signature back into (r, s),
// without validating low-S — used only by tests to check round-trip
// byte-identity (property 4 in SPEC_FULL.md).
func DecodeDER(der []byte) (r, s *big.Int, err error) {
	r, s, err = primitives.DecodeDERSignature(der)
	if err != nil {
		return nil, nil, &kerrors.CryptographicError{Message: err.Error()}
	}
	return r, s, nil
}
