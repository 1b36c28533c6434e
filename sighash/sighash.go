// Package sighash computes the 32-byte signature digests a Kaspa
// transaction's inputs are signed over, for both the Schnorr and ECDSA
// variants, with a per-transaction midstate cache for the five
// component subhashes.
//
// Grounded in the teacher's BuildAndSignHTLCClaimTx
// (services/node/zcash_tx.go) and the Zcash sighash preimage assembly in
// connectors/zcash/transaction.go — same "assemble a byte preimage, then
// hash it" shape, replaced with Kaspa's keyed-BLAKE2b subhash design.
package sighash

import (
	"github.com/blacktrace/kaspa-txcore/kerrors"
	"github.com/blacktrace/kaspa-txcore/primitives"
	"github.com/blacktrace/kaspa-txcore/script"
	"github.com/blacktrace/kaspa-txcore/tx"
)

// Type is a sighash type byte.
type Type byte

const (
	All          Type = 0x01
	None         Type = 0x02
	Single       Type = 0x04
	AnyOneCanPay Type = 0x80
)

// Validate rejects any byte outside the six legal sighash types.
func Validate(t Type) error {
	switch t {
	case All, None, Single, All | AnyOneCanPay, None | AnyOneCanPay, Single | AnyOneCanPay:
		return nil
	default:
		return &kerrors.InvalidSighashType{Type: byte(t)}
	}
}

func (t Type) anyOneCanPay() bool { return t&AnyOneCanPay != 0 }
func (t Type) base() Type         { return t &^ AnyOneCanPay }

var zeroDigest [32]byte

// UTXOInfo carries the subset of UTXO data the sighash preimage needs
// for the input being signed.
type UTXOInfo struct {
	ScriptVersion   uint16
	ScriptPublicKey []byte // the critical P2SH rule: pass the P2SH scriptPubKey here, never the redeem script
	Amount          uint64
}

// MidstateCache holds the five subhash slots, computed lazily and
// reused across every input of one transaction. The payload subhash is
// taken from the cache for every sighash type, the previous-outpoints
// subhash whenever AnyOneCanPay is unset, and the sequence, sig-op and
// all-outputs subhashes only for type All; the other types use zero
// hashes or the per-input Single output hash instead.
type MidstateCache struct {
	t *tx.Transaction

	hPrev    *[32]byte
	hSeq     *[32]byte
	hSigops  *[32]byte
	hOutAll  *[32]byte
	hPayload *[32]byte
}

// NewMidstateCache returns an empty cache bound to t. Slots are filled
// on first use by ComputeSchnorrDigest / ComputeECDSADigest.
func NewMidstateCache(t *tx.Transaction) *MidstateCache {
	return &MidstateCache{t: t}
}

func (c *MidstateCache) prevHash() [32]byte {
	if c.hPrev != nil {
		return *c.hPrev
	}
	buf := make([]byte, 0, len(c.t.Inputs)*36)
	for _, in := range c.t.Inputs {
		buf = appendOutpoint(buf, in.PreviousOutpoint)
	}
	h := primitives.KeyedBlake2b256(primitives.TransactionSigningHashKey, buf)
	c.hPrev = &h
	return h
}

func (c *MidstateCache) seqHash() [32]byte {
	if c.hSeq != nil {
		return *c.hSeq
	}
	buf := make([]byte, 0, len(c.t.Inputs)*8)
	for _, in := range c.t.Inputs {
		buf = primitives.PutUint64LE(buf, in.Sequence)
	}
	h := primitives.KeyedBlake2b256(primitives.TransactionSigningHashKey, buf)
	c.hSeq = &h
	return h
}

func (c *MidstateCache) sigopsHash() [32]byte {
	if c.hSigops != nil {
		return *c.hSigops
	}
	buf := make([]byte, 0, len(c.t.Inputs))
	for _, in := range c.t.Inputs {
		buf = append(buf, in.SigOpCount)
	}
	h := primitives.KeyedBlake2b256(primitives.TransactionSigningHashKey, buf)
	c.hSigops = &h
	return h
}

func (c *MidstateCache) outAllHash() [32]byte {
	if c.hOutAll != nil {
		return *c.hOutAll
	}
	var buf []byte
	for _, out := range c.t.Outputs {
		buf = appendOutput(buf, out)
	}
	h := primitives.KeyedBlake2b256(primitives.TransactionSigningHashKey, buf)
	c.hOutAll = &h
	return h
}

func (c *MidstateCache) payloadHash() [32]byte {
	if c.hPayload != nil {
		return *c.hPayload
	}
	buf := make([]byte, 0, 2+len(c.t.Payload))
	buf = primitives.PutUint16LE(buf, c.t.Version)
	buf = append(buf, c.t.Payload...)
	h := primitives.KeyedBlake2b256(primitives.TransactionSigningHashKey, buf)
	c.hPayload = &h
	return h
}

func appendOutpoint(buf []byte, o tx.Outpoint) []byte {
	txid, err := primitives.DecodeHex(o.TransactionID)
	if err != nil || len(txid) != 32 {
		// A malformed outpoint is a caller programming error, not a
		// runtime condition worth a typed error here: every outpoint in
		// a transaction passed to this package must already have been
		// validated by the builder that produced it.
		txid = make([]byte, 32)
	}
	buf = append(buf, txid...)
	buf = primitives.PutUint32LE(buf, o.Index)
	return buf
}

func appendOutput(buf []byte, o tx.Output) []byte {
	buf = primitives.PutUint64LE(buf, o.Amount)
	buf = primitives.PutUint16LE(buf, o.ScriptPublicKey.Version)
	buf = append(buf, script.Push(o.ScriptPublicKey.Script)...)
	return buf
}

// outSingleHash computes H_out for the Single sighash type: a hash of
// just the i-th output. Not cached since it varies with i.
func outSingleHash(t *tx.Transaction, i int) [32]byte {
	if i >= len(t.Outputs) {
		return zeroDigest
	}
	buf := appendOutput(nil, t.Outputs[i])
	return primitives.KeyedBlake2b256(primitives.TransactionSigningHashKey, buf)
}

// ComputeSchnorrDigest computes the 32-byte Schnorr signing digest for
// input i of transaction t, spending utxo, under sighashType.
func ComputeSchnorrDigest(cache *MidstateCache, t *tx.Transaction, i int, utxo UTXOInfo, sighashType Type) ([32]byte, error) {
	if err := Validate(sighashType); err != nil {
		return zeroDigest, err
	}
	if i < 0 || i >= len(t.Inputs) {
		return zeroDigest, &kerrors.InvalidTransaction{Message: "sighash input index out of range"}
	}

	apc := sighashType.anyOneCanPay()
	base := sighashType.base()

	hPrev := zeroDigest
	if !apc {
		hPrev = cache.prevHash()
	}

	hSeq := zeroDigest
	if !apc && base != None && base != Single {
		hSeq = cache.seqHash()
	}

	hSigops := zeroDigest
	if !apc && base != None && base != Single {
		hSigops = cache.sigopsHash()
	}

	var hOut [32]byte
	switch base {
	case None:
		hOut = zeroDigest
	case Single:
		hOut = outSingleHash(t, i)
	default: // All
		hOut = cache.outAllHash()
	}

	hPayload := cache.payloadHash()

	in := t.Inputs[i]
	buf := make([]byte, 0, 256)
	buf = primitives.PutUint16LE(buf, t.Version)
	buf = append(buf, hPrev[:]...)
	buf = append(buf, hSeq[:]...)
	buf = append(buf, hSigops[:]...)
	buf = appendOutpoint(buf, in.PreviousOutpoint)
	buf = primitives.PutUint16LE(buf, utxo.ScriptVersion)
	buf = append(buf, script.Push(utxo.ScriptPublicKey)...)
	buf = primitives.PutUint64LE(buf, utxo.Amount)
	buf = primitives.PutUint64LE(buf, in.Sequence)
	buf = append(buf, in.SigOpCount)
	buf = append(buf, hOut[:]...)
	buf = primitives.PutUint64LE(buf, t.LockTime)
	buf = append(buf, t.SubnetworkID[:]...)
	buf = primitives.PutUint64LE(buf, t.Gas)
	buf = append(buf, hPayload[:]...)
	buf = append(buf, byte(sighashType))

	return primitives.KeyedBlake2b256(primitives.TransactionSigningHashKey, buf), nil
}

// ComputeECDSADigest derives the ECDSA signing digest from the Schnorr
// digest: SHA-256(SHA-256("TransactionSigningHashECDSA") ∥
// schnorr_digest). See property 3 in SPEC_FULL.md.
func ComputeECDSADigest(cache *MidstateCache, t *tx.Transaction, i int, utxo UTXOInfo, sighashType Type) ([32]byte, error) {
	schnorrDigest, err := ComputeSchnorrDigest(cache, t, i, utxo, sighashType)
	if err != nil {
		return zeroDigest, err
	}
	domainHash := primitives.Sha256([]byte(primitives.TransactionSigningHashECDSAKey))
	buf := make([]byte, 0, 64)
	buf = append(buf, domainHash[:]...)
	buf = append(buf, schnorrDigest[:]...)
	return primitives.Sha256(buf), nil
}
