// Package script assembles Kaspa scripts at the opcode level: data pushes,
// chunking, the Kasplex data envelope, P2SH redeem/commit scripts, and
// signature scripts.
//
// Grounded in the teacher's hand-rolled script builders
// (blacktrace-go/connectors/zcash/htlc.go BuildHTLCScript,
// services/node/zcash_tx.go buildP2PKHScript/buildHTLCClaimScriptSig) —
// same append-byte-by-byte style, generalized from a fixed HTLC shape to
// Kaspa's push-encoding rules and the Kasplex envelope.
package script

import (
	"github.com/blacktrace/kaspa-txcore/opcodes"
	"github.com/blacktrace/kaspa-txcore/primitives"
)

// Push encodes data as a single script push, choosing OP_0, a direct length
// byte, or an OP_PUSHDATA{1,2,4} prefix depending on size.
func Push(data []byte) []byte {
	n := len(data)
	switch {
	case n == 0:
		return []byte{opcodes.Op0}
	case n <= opcodes.MaxSingleByteLength:
		out := make([]byte, 0, 1+n)
		out = append(out, byte(n))
		return append(out, data...)
	case n <= 0xff:
		out := make([]byte, 0, 2+n)
		out = append(out, opcodes.OpPushData1, byte(n))
		return append(out, data...)
	case n <= 0xffff:
		out := make([]byte, 0, 3+n)
		out = append(out, opcodes.OpPushData2)
		out = primitives.PutUint16LE(out, uint16(n))
		return append(out, data...)
	default:
		out := make([]byte, 0, 5+n)
		out = append(out, opcodes.OpPushData4)
		out = primitives.PutUint32LE(out, uint32(n))
		return append(out, data...)
	}
}

// Chunk splits data into successive pieces no larger than maxSize, the way
// a payload bigger than opcodes.MaxScriptElementSize must be carried as
// multiple pushes. An empty input yields a single empty chunk so callers
// always get at least one push.
func Chunk(data []byte, maxSize int) [][]byte {
	if maxSize <= 0 {
		maxSize = opcodes.MaxScriptElementSize
	}
	if len(data) == 0 {
		return [][]byte{{}}
	}
	var chunks [][]byte
	for len(data) > 0 {
		n := maxSize
		if n > len(data) {
			n = len(data)
		}
		chunks = append(chunks, data[:n])
		data = data[n:]
	}
	return chunks
}

// PushChunked pushes data as one or more successive pushes, chunking at
// opcodes.MaxScriptElementSize.
func PushChunked(data []byte) []byte {
	var out []byte
	for _, chunk := range Chunk(data, opcodes.MaxScriptElementSize) {
		out = append(out, Push(chunk)...)
	}
	return out
}

// BuildEnvelope assembles a Kasplex-style data envelope:
//
//	OP_FALSE OP_IF
//	  push(protocolTag)
//	  OP_1              (literal marker, not a push op)
//	  push(metadata)
//	  OP_0              (literal marker, not a push op)
//	  push(content) [chunked]
//	OP_ENDIF
func BuildEnvelope(protocolTag string, content, metadata []byte) []byte {
	out := make([]byte, 0, 2+len(protocolTag)+len(content)+len(metadata)+16)
	out = append(out, opcodes.OpFalse, opcodes.OpIf)
	out = append(out, Push([]byte(protocolTag))...)
	out = append(out, opcodes.Op1)
	out = append(out, Push(metadata)...)
	out = append(out, opcodes.Op0)
	out = append(out, PushChunked(content)...)
	out = append(out, opcodes.OpEndIf)
	return out
}

// BuildRedeemScript builds the redeem script for a P2SH payer carrying
// envelope data: push(pubkey) <CHECKSIG variant> <envelope>.
func BuildRedeemScript(pubkey, envelope []byte, useECDSA bool) []byte {
	out := Push(pubkey)
	if useECDSA {
		out = append(out, opcodes.OpCheckSigECDSA)
	} else {
		out = append(out, opcodes.OpCheckSig)
	}
	return append(out, envelope...)
}

// P2SHCommitScriptPubKey hashes redeemScript with BLAKE2B-256 and returns
// the 35-byte commit scriptPubKey `OP_BLAKE2B OP_DATA_32 <hash> OP_EQUAL`
// alongside the raw hash (needed again for KRC20's CommitRevealPair).
func P2SHCommitScriptPubKey(redeemScript []byte) (scriptPubKey []byte, hash [32]byte) {
	hash = primitives.Blake2b256(redeemScript)
	scriptPubKey = make([]byte, 0, 35)
	scriptPubKey = append(scriptPubKey, opcodes.OpBlake2b, opcodes.OpData32)
	scriptPubKey = append(scriptPubKey, hash[:]...)
	scriptPubKey = append(scriptPubKey, opcodes.OpEqual)
	return scriptPubKey, hash
}

// P2SHSignatureScript builds the two-push signature script that spends a
// P2SH output: push(sig‖hashtype) push(redeemScript). No witness
// separator — Kaspa's VM re-executes the pushed top-of-stack as the
// redeem script.
func P2SHSignatureScript(sigWithHashType, redeemScript []byte) []byte {
	out := Push(sigWithHashType)
	return append(out, Push(redeemScript)...)
}
