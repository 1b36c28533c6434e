package address

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"
)

func repeat(b byte, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = b
	}
	return out
}

// S1 — CashAddr round-trip, from spec.md §8.
func TestS1RoundTripAndScriptPubKey(t *testing.T) {
	payload := repeat(0xaa, 32)

	addr, err := Encode(payload, Schnorr, MainnetPrefix)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	info, err := Decode(addr)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if info.Type != Schnorr {
		t.Fatalf("type mismatch: got %v", info.Type)
	}
	if !bytes.Equal(info.Payload, payload) {
		t.Fatalf("payload mismatch: got %x want %x", info.Payload, payload)
	}

	wantSPK, _ := hex.DecodeString("20" + string(bytes.Repeat([]byte("aa"), 32)) + "ac")
	if !bytes.Equal(info.ScriptPubKey, wantSPK) {
		t.Fatalf("script-pubkey mismatch: got %x want %x", info.ScriptPubKey, wantSPK)
	}
}

func TestRoundTripAllTypesAndPrefixes(t *testing.T) {
	cases := []struct {
		name    string
		t       Type
		payload []byte
	}{
		{"schnorr", Schnorr, repeat(0x01, 32)},
		{"ecdsa", ECDSA, append([]byte{0x02}, repeat(0x03, 32)...)},
		{"p2sh", P2SH, repeat(0xff, 32)},
	}
	for _, prefix := range []string{MainnetPrefix, TestnetPrefix} {
		for _, c := range cases {
			addr, err := Encode(c.payload, c.t, prefix)
			if err != nil {
				t.Fatalf("%s/%s: Encode: %v", prefix, c.name, err)
			}
			info, err := Decode(addr)
			if err != nil {
				t.Fatalf("%s/%s: Decode: %v", prefix, c.name, err)
			}
			if info.Type != c.t || !bytes.Equal(info.Payload, c.payload) {
				t.Fatalf("%s/%s: round-trip mismatch", prefix, c.name)
			}
		}
	}
}

func TestBitFlipBreaksChecksum(t *testing.T) {
	addr, err := Encode(repeat(0x11, 32), Schnorr, MainnetPrefix)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	body := []byte(addr)
	// Flip the last character to one guaranteed different in the alphabet.
	lastIdx := len(body) - 1
	orig := body[lastIdx]
	for _, c := range []byte(charset) {
		if c != orig {
			body[lastIdx] = c
			break
		}
	}

	_, err = Decode(string(body))
	if err == nil {
		t.Fatalf("expected decode failure after bit flip")
	}
	var invalidAddr *InvalidAddress
	if !errors.As(err, &invalidAddr) {
		t.Fatalf("expected *InvalidAddress, got %T", err)
	}
	if invalidAddr.Reason != "bad_checksum" && invalidAddr.Reason != "bad_char" {
		t.Fatalf("expected bad_checksum or bad_char, got %q", invalidAddr.Reason)
	}
}

func TestDecodeRejectsBadPrefix(t *testing.T) {
	addr, _ := Encode(repeat(0x01, 32), Schnorr, MainnetPrefix)
	withBadPrefix := "notkaspa:" + addr[len(MainnetPrefix)+1:]
	_, err := Decode(withBadPrefix)
	var invalidAddr *InvalidAddress
	if !errors.As(err, &invalidAddr) || invalidAddr.Reason != "bad_prefix" {
		t.Fatalf("expected bad_prefix, got %v", err)
	}
}

func TestDecodeRejectsBadChar(t *testing.T) {
	addr, _ := Encode(repeat(0x01, 32), Schnorr, MainnetPrefix)
	broken := addr[:len(addr)-1] + "b" // 'b' is not in the CashAddr alphabet
	_, err := Decode(broken)
	var invalidAddr *InvalidAddress
	if !errors.As(err, &invalidAddr) || invalidAddr.Reason != "bad_char" {
		t.Fatalf("expected bad_char, got %v", err)
	}
}

func TestEncodeRejectsWrongPayloadLength(t *testing.T) {
	_, err := Encode(repeat(0x01, 31), Schnorr, MainnetPrefix)
	var invalidAddr *InvalidAddress
	if !errors.As(err, &invalidAddr) || invalidAddr.Reason != "bad_payload_length" {
		t.Fatalf("expected bad_payload_length, got %v", err)
	}
}

func TestEncodeRejectsBadECDSAPrefixByte(t *testing.T) {
	payload := append([]byte{0x05}, repeat(0x00, 32)...)
	_, err := Encode(payload, ECDSA, MainnetPrefix)
	var invalidAddr *InvalidAddress
	if !errors.As(err, &invalidAddr) || invalidAddr.Reason != "bad_payload_length" {
		t.Fatalf("expected bad_payload_length for bad ECDSA prefix byte, got %v", err)
	}
}

func TestDecodeEmpty(t *testing.T) {
	_, err := Decode("")
	var invalidAddr *InvalidAddress
	if !errors.As(err, &invalidAddr) || invalidAddr.Reason != "empty" {
		t.Fatalf("expected empty, got %v", err)
	}
}
