package tx

import (
	"encoding/json"
	"fmt"

	"github.com/blacktrace/kaspa-txcore/primitives"
)

// wireOutpoint, wireInput, wireOutput, wireScriptPublicKey, and
// wireTransaction mirror the exact field names and shapes spec.md §6
// requires a Kaspa REST node to accept. Field order in the struct matters
// for Go's json.Marshal, which emits fields in declaration order.
type wireOutpoint struct {
	TransactionID string `json:"transactionId"`
	Index         uint32 `json:"index"`
}

type wireInput struct {
	PreviousOutpoint wireOutpoint `json:"previousOutpoint"`
	SignatureScript  string       `json:"signatureScript"`
	Sequence         uint64       `json:"sequence"`
	SigOpCount       uint8        `json:"sigOpCount"`
}

type wireScriptPublicKey struct {
	Version         uint16 `json:"version"`
	ScriptPublicKey string `json:"scriptPublicKey"`
}

type wireOutput struct {
	Amount          uint64              `json:"amount"`
	ScriptPublicKey wireScriptPublicKey `json:"scriptPublicKey"`
}

type wireTransaction struct {
	Version      uint16       `json:"version"`
	Inputs       []wireInput  `json:"inputs"`
	Outputs      []wireOutput `json:"outputs"`
	LockTime     uint64       `json:"lockTime"`
	SubnetworkID string       `json:"subnetworkId"`
	Gas          uint64       `json:"gas"`
	Payload      string       `json:"payload"`
}

type wireEnvelope struct {
	Transaction wireTransaction `json:"transaction"`
}

// ToWireJSON renders t in the exact shape a Kaspa REST node accepts,
// wrapped in the top-level {"transaction": {...}} envelope.
func (t *Transaction) ToWireJSON() ([]byte, error) {
	w := wireTransaction{
		Version:      t.Version,
		LockTime:     t.LockTime,
		SubnetworkID: primitives.EncodeHex(t.SubnetworkID[:]),
		Gas:          t.Gas,
		Payload:      primitives.EncodeHex(t.Payload),
	}
	for _, in := range t.Inputs {
		w.Inputs = append(w.Inputs, wireInput{
			PreviousOutpoint: wireOutpoint{
				TransactionID: in.PreviousOutpoint.TransactionID,
				Index:         in.PreviousOutpoint.Index,
			},
			SignatureScript: primitives.EncodeHex(in.SignatureScript),
			Sequence:        in.Sequence,
			SigOpCount:      in.SigOpCount,
		})
	}
	// Node APIs expect an explicit empty array over a JSON null.
	if w.Inputs == nil {
		w.Inputs = []wireInput{}
	}
	for _, out := range t.Outputs {
		w.Outputs = append(w.Outputs, wireOutput{
			Amount: out.Amount,
			ScriptPublicKey: wireScriptPublicKey{
				Version:         out.ScriptPublicKey.Version,
				ScriptPublicKey: primitives.EncodeHex(out.ScriptPublicKey.Script),
			},
		})
	}
	if w.Outputs == nil {
		w.Outputs = []wireOutput{}
	}

	return json.Marshal(wireEnvelope{Transaction: w})
}

// FromWireJSON parses the {"transaction": {...}} shape back into a
// Transaction.
func FromWireJSON(data []byte) (*Transaction, error) {
	var env wireEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("parse transaction wire form: %w", err)
	}
	w := env.Transaction

	subnetworkBytes, err := primitives.DecodeHex(w.SubnetworkID)
	if err != nil || len(subnetworkBytes) != 20 {
		return nil, fmt.Errorf("parse transaction wire form: invalid subnetworkId")
	}
	payload, err := primitives.DecodeHex(w.Payload)
	if err != nil {
		return nil, fmt.Errorf("parse transaction wire form: invalid payload hex: %w", err)
	}

	out := &Transaction{
		Version:  w.Version,
		LockTime: w.LockTime,
		Gas:      w.Gas,
		Payload:  payload,
	}
	copy(out.SubnetworkID[:], subnetworkBytes)

	for _, in := range w.Inputs {
		sigScript, err := primitives.DecodeHex(in.SignatureScript)
		if err != nil {
			return nil, fmt.Errorf("parse transaction wire form: invalid signatureScript hex: %w", err)
		}
		out.Inputs = append(out.Inputs, Input{
			PreviousOutpoint: Outpoint{
				TransactionID: in.PreviousOutpoint.TransactionID,
				Index:         in.PreviousOutpoint.Index,
			},
			SignatureScript: sigScript,
			Sequence:        in.Sequence,
			SigOpCount:      in.SigOpCount,
		})
	}
	for _, o := range w.Outputs {
		spk, err := primitives.DecodeHex(o.ScriptPublicKey.ScriptPublicKey)
		if err != nil {
			return nil, fmt.Errorf("parse transaction wire form: invalid scriptPublicKey hex: %w", err)
		}
		out.Outputs = append(out.Outputs, Output{
			Amount: o.Amount,
			ScriptPublicKey: ScriptPublicKey{
				Version: o.ScriptPublicKey.Version,
				Script:  spk,
			},
		})
	}

	return out, nil
}
