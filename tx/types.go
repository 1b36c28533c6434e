// Package tx defines the Kaspa transaction data model: outpoints, inputs,
// outputs, transactions, and UTXOs, plus the node-compatible JSON wire
// form.
//
// Grounded in the teacher's wire-protocol structs
// (blacktrace-go/types.go Message/OrderAnnouncement, services/settlement
// SettlementRequest) — plain exported structs with `json` tags, JSON as the
// one and only wire encoding, no custom binary framing.
package tx

// Outpoint identifies a previous transaction output being spent.
type Outpoint struct {
	TransactionID string // 64-char lowercase hex
	Index         uint32
}

// ScriptPublicKey is a versioned output script.
type ScriptPublicKey struct {
	Version uint16
	Script  []byte
}

// Input is one transaction input.
type Input struct {
	PreviousOutpoint Outpoint
	SignatureScript  []byte // empty before signing
	Sequence         uint64
	SigOpCount       uint8
}

// Output is one transaction output.
type Output struct {
	Amount          uint64 // sompi
	ScriptPublicKey ScriptPublicKey
}

// Transaction is a complete Kaspa transaction record.
type Transaction struct {
	Version      uint16
	Inputs       []Input
	Outputs      []Output
	LockTime     uint64
	SubnetworkID [20]byte
	Gas          uint64
	Payload      []byte
}

// UTXO is one entry from the UTXO set, as fetched from a node's REST API.
type UTXO struct {
	Outpoint        Outpoint
	Amount          uint64
	ScriptVersion   uint16
	ScriptPublicKey []byte
	Address         string
}

// DefaultSubnetworkID is the all-zero subnetwork used by ordinary
// (non-coinbase, non-registry) transactions.
var DefaultSubnetworkID = [20]byte{}
