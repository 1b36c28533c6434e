// Package opcodes names the Kaspa/Bitcoin-compatible script opcodes this
// module needs. Naming follows kaspad's txscript package (Op-prefixed,
// e.g. OpCheckSig) rather than the older btcsuite OP_ convention.
package opcodes

// Op is a single Kaspa script opcode.
type Op = byte

const (
	Op0      Op = 0x00
	OpFalse  Op = 0x00
	OpData32 Op = 0x20
	OpData33 Op = 0x21

	// OpPushData1/2/4 prefix a push longer than MaxSingleByteLength,
	// followed by a 1-, 2- or 4-byte little-endian length.
	OpPushData1 Op = 0x4c
	OpPushData2 Op = 0x4d
	OpPushData4 Op = 0x4e

	Op1     Op = 0x51
	OpTrue  Op = 0x51
	Op16    Op = 0x60

	OpIf    Op = 0x63
	OpElse  Op = 0x67
	OpEndIf Op = 0x68

	OpDrop         Op = 0x75
	OpDup          Op = 0x76
	OpEqual        Op = 0x87
	OpEqualVerify  Op = 0x88

	OpHash160  Op = 0xa9
	OpHash256  Op = 0xaa
	OpBlake2b  Op = 0xb3 // see SPEC_FULL.md §6 open question 2: unverified against a live node.

	OpCheckSig      Op = 0xac
	OpCheckSigECDSA Op = 0xab
)

// MaxScriptElementSize is the largest single push Kaspa's script VM accepts.
const MaxScriptElementSize = 520

// MaxSingleByteLength is the largest push length that fits in the opcode
// byte itself (OP_DATA_1..OP_DATA_75); above this, a PUSHDATA opcode is
// required.
const MaxSingleByteLength = 75
