// Package address implements Kaspa's CashAddr-style address codec: encoding
// and decoding with checksum, version-byte discrimination between Schnorr,
// ECDSA, and P2SH payloads, and script-pubkey synthesis.
//
// Grounded in the teacher's base58check address helpers
// (connectors/zcash/htlc.go ScriptToP2SHAddress, services/node/zcash_tx.go
// addressToPubKeyHash) — same shape (version byte + payload + checksum,
// alphabet-mapped encoding) adapted to CashAddr's 5-bit groups and polymod
// checksum instead of base58 and double-SHA256.
package address

import (
	"fmt"
	"strings"

	"github.com/blacktrace/kaspa-txcore/opcodes"
)

// Type discriminates the three payload kinds a Kaspa address can carry.
type Type uint8

const (
	Schnorr Type = 0
	ECDSA   Type = 1
	P2SH    Type = 2
)

const charset = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"

// MainnetPrefix and TestnetPrefix are the only two HRPs this codec accepts.
const (
	MainnetPrefix = "kaspa"
	TestnetPrefix = "kaspatest"
)

// InvalidAddress reports why an address string or payload was rejected.
type InvalidAddress struct {
	Reason string
}

func (e *InvalidAddress) Error() string {
	return fmt.Sprintf("invalid address: %s", e.Reason)
}

func invalid(reason string) error {
	return &InvalidAddress{Reason: reason}
}

// Info is the decoded form of a CashAddr string.
type Info struct {
	String       string
	Prefix       string
	Type         Type
	Payload      []byte
	ScriptPubKey []byte
}

func payloadLen(t Type) int {
	switch t {
	case Schnorr, P2SH:
		return 32
	case ECDSA:
		return 33
	default:
		return 0
	}
}

func versionByte(t Type) (byte, error) {
	switch t {
	case Schnorr:
		return 0, nil
	case ECDSA:
		return 1, nil
	case P2SH:
		return 8, nil
	default:
		return 0, invalid("bad_version")
	}
}

func typeFromVersion(v byte) (Type, error) {
	switch v {
	case 0:
		return Schnorr, nil
	case 1:
		return ECDSA, nil
	case 8:
		return P2SH, nil
	default:
		return 0, invalid("bad_version")
	}
}

func validatePayload(t Type, payload []byte) error {
	want := payloadLen(t)
	if len(payload) != want {
		return invalid("bad_payload_length")
	}
	if t == ECDSA {
		switch payload[0] {
		case 0x02, 0x03, 0x04:
		default:
			return invalid("bad_payload_length")
		}
	}
	return nil
}

// Encode builds the canonical `<prefix>:<body>` CashAddr string for payload.
func Encode(payload []byte, t Type, prefix string) (string, error) {
	if err := validatePayload(t, payload); err != nil {
		return "", err
	}
	ver, err := versionByte(t)
	if err != nil {
		return "", err
	}

	versioned := make([]byte, 0, len(payload)+1)
	versioned = append(versioned, ver)
	versioned = append(versioned, payload...)

	fiveBit, err := convertBits(versioned, 8, 5, true)
	if err != nil {
		return "", err
	}

	checksum := checksumDigits(prefix, fiveBit)
	symbols := append(fiveBit, checksum...)

	var body strings.Builder
	body.Grow(len(symbols))
	for _, v := range symbols {
		body.WriteByte(charset[v])
	}

	return prefix + ":" + body.String(), nil
}

// Decode parses an address string back into its payload and type, verifying
// the checksum and reconstructing the script-pubkey.
func Decode(addr string) (*Info, error) {
	if addr == "" {
		return nil, invalid("empty")
	}

	idx := strings.IndexByte(addr, ':')
	if idx < 0 {
		return nil, invalid("bad_prefix")
	}
	prefix, body := addr[:idx], addr[idx+1:]
	if prefix != MainnetPrefix && prefix != TestnetPrefix {
		return nil, invalid("bad_prefix")
	}
	if len(body) < 8 {
		return nil, invalid("bad_checksum")
	}

	symbols := make([]byte, len(body))
	for i := 0; i < len(body); i++ {
		v := strings.IndexByte(charset, body[i])
		if v < 0 {
			return nil, invalid("bad_char")
		}
		symbols[i] = byte(v)
	}

	payloadSymbols := symbols[:len(symbols)-8]
	checksumSymbols := symbols[len(symbols)-8:]
	if !verifyChecksum(prefix, payloadSymbols, checksumSymbols) {
		return nil, invalid("bad_checksum")
	}

	versioned, err := convertBitsStrict(payloadSymbols, 5, 8)
	if err != nil {
		return nil, err
	}
	if len(versioned) == 0 {
		return nil, invalid("bad_payload_length")
	}

	t, err := typeFromVersion(versioned[0])
	if err != nil {
		return nil, err
	}
	payload := versioned[1:]
	if err := validatePayload(t, payload); err != nil {
		return nil, err
	}

	spk, err := ScriptPubKey(payload, t)
	if err != nil {
		return nil, err
	}

	return &Info{
		String:       addr,
		Prefix:       prefix,
		Type:         t,
		Payload:      payload,
		ScriptPubKey: spk,
	}, nil
}

// ScriptPubKey synthesizes the Kaspa scriptPubKey byte string for a decoded
// address payload. See SPEC_FULL.md §6 open question 1 for why the P2SH
// variant here intentionally differs in opcode from the builder-synthesized
// P2SH commit script in package script.
func ScriptPubKey(payload []byte, t Type) ([]byte, error) {
	if err := validatePayload(t, payload); err != nil {
		return nil, err
	}
	switch t {
	case Schnorr:
		out := make([]byte, 0, 34)
		out = append(out, opcodes.OpData32)
		out = append(out, payload...)
		out = append(out, opcodes.OpCheckSig)
		return out, nil
	case ECDSA:
		out := make([]byte, 0, 35)
		out = append(out, opcodes.OpData33)
		out = append(out, payload...)
		out = append(out, opcodes.OpCheckSigECDSA)
		return out, nil
	case P2SH:
		out := make([]byte, 0, 35)
		out = append(out, opcodes.OpHash256)
		out = append(out, opcodes.OpData32)
		out = append(out, payload...)
		out = append(out, opcodes.OpEqual)
		return out, nil
	default:
		return nil, invalid("bad_version")
	}
}

// convertBits regroups data from a `fromBits`-wide alphabet into a
// `toBits`-wide one, padding the final group with zero bits when pad is
// true. Used for the 8-bit-to-5-bit direction when encoding.
func convertBits(data []byte, fromBits, toBits uint, pad bool) ([]byte, error) {
	acc := uint32(0)
	bits := uint(0)
	var ret []byte
	maxv := uint32(1)<<toBits - 1
	for _, value := range data {
		acc = (acc << fromBits) | uint32(value)
		bits += fromBits
		for bits >= toBits {
			bits -= toBits
			ret = append(ret, byte((acc>>bits)&maxv))
		}
	}
	if pad && bits > 0 {
		ret = append(ret, byte((acc<<(toBits-bits))&maxv))
	}
	return ret, nil
}

// convertBitsStrict is convertBits' 5-to-8 direction with no pad tolerance:
// any non-zero residual bit in the final partial group is an error.
func convertBitsStrict(data []byte, fromBits, toBits uint) ([]byte, error) {
	acc := uint32(0)
	bits := uint(0)
	var ret []byte
	maxv := uint32(1)<<toBits - 1
	for _, value := range data {
		acc = (acc << fromBits) | uint32(value)
		bits += fromBits
		for bits >= toBits {
			bits -= toBits
			ret = append(ret, byte((acc>>bits)&maxv))
		}
	}
	if bits >= fromBits {
		return nil, invalid("bad_padding")
	}
	if bits > 0 && (acc&((1<<bits)-1)) != 0 {
		return nil, invalid("bad_padding")
	}
	return ret, nil
}

var generators = [5]uint64{
	0x98f2bc8e61,
	0x79b76d99e2,
	0xf33e5fb3c4,
	0xae2eabe2a8,
	0x1e4f43e470,
}

func polymod(values []byte) uint64 {
	c := uint64(1)
	for _, d := range values {
		c0 := byte(c >> 35)
		c = ((c & 0x07ffffffff) << 5) ^ uint64(d)
		for i, gen := range generators {
			if c0&(1<<uint(i)) != 0 {
				c ^= gen
			}
		}
	}
	return c
}

func prefixSymbols(prefix string) []byte {
	out := make([]byte, len(prefix))
	for i := 0; i < len(prefix); i++ {
		out[i] = prefix[i] & 0x1f
	}
	return out
}

// checksumDigits returns the eight 5-bit checksum symbols for prefix and the
// already-5-bit-grouped payload.
func checksumDigits(prefix string, fiveBitPayload []byte) []byte {
	values := make([]byte, 0, len(prefix)+1+len(fiveBitPayload)+8)
	values = append(values, prefixSymbols(prefix)...)
	values = append(values, 0) // separator
	values = append(values, fiveBitPayload...)
	values = append(values, make([]byte, 8)...) // checksum placeholder

	mod := polymod(values) ^ 1

	digits := make([]byte, 8)
	for i := 0; i < 8; i++ {
		digits[i] = byte((mod >> uint(5*(7-i))) & 0x1f)
	}
	return digits
}

func verifyChecksum(prefix string, fiveBitPayload, checksum []byte) bool {
	values := make([]byte, 0, len(prefix)+1+len(fiveBitPayload)+len(checksum))
	values = append(values, prefixSymbols(prefix)...)
	values = append(values, 0)
	values = append(values, fiveBitPayload...)
	values = append(values, checksum...)
	return polymod(values) == 1
}
