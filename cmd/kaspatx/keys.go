package main

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcutil/base58"

	"github.com/blacktrace/kaspa-txcore/primitives"
)

// parseHexPrivateKey loads a raw 32-byte secp256k1 private key from a
// hex string. Reference-implementation key handling only — production
// callers should use a remote oracle.NATSSigner instead of ever holding
// a key in process memory.
func parseHexPrivateKey(s string) (*btcec.PrivateKey, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode private key hex: %w", err)
	}
	if len(raw) != 32 {
		return nil, fmt.Errorf("private key must be 32 bytes, got %d", len(raw))
	}
	key := btcec.PrivKeyFromBytes(raw)
	return key, nil
}

// parseWIFPrivateKey decodes a base58check WIF-encoded private key, the
// way the teacher's decodeWIF (services/node/zcash_tx.go) does: base58
// decode, verify the trailing 4-byte double-SHA256 checksum, strip the
// leading version byte and the optional trailing compression flag.
func parseWIFPrivateKey(wif string) (*btcec.PrivateKey, error) {
	decoded := base58.Decode(wif)
	if len(decoded) < 37 {
		return nil, fmt.Errorf("invalid WIF length: %d", len(decoded))
	}

	payload := decoded[:len(decoded)-4]
	checksum := decoded[len(decoded)-4:]
	expected := primitives.Sha256d(payload)
	if !bytes.Equal(checksum, expected[:4]) {
		return nil, fmt.Errorf("invalid WIF checksum")
	}

	priv := payload[1:]
	if len(priv) == 33 && priv[32] == 0x01 {
		priv = priv[:32]
	}
	if len(priv) != 32 {
		return nil, fmt.Errorf("invalid WIF private key length: %d", len(priv))
	}
	return btcec.PrivKeyFromBytes(priv), nil
}

// resolveKey returns the private key named by whichever of hexKey/wifKey
// was supplied on the command line; exactly one must be set.
func resolveKey(hexKey, wifKey string) (*btcec.PrivateKey, error) {
	switch {
	case hexKey != "" && wifKey != "":
		return nil, fmt.Errorf("specify either --key or --key-wif, not both")
	case wifKey != "":
		return parseWIFPrivateKey(wifKey)
	case hexKey != "":
		return parseHexPrivateKey(hexKey)
	default:
		return nil, fmt.Errorf("either --key or --key-wif is required")
	}
}
