package tx

import (
	"encoding/json"
	"testing"
)

func sampleTransaction() *Transaction {
	return &Transaction{
		Version: 0,
		Inputs: []Input{
			{
				PreviousOutpoint: Outpoint{
					TransactionID: "aa00000000000000000000000000000000000000000000000000000000000000",
					Index:         0,
				},
				SignatureScript: []byte{0x01, 0x02},
				Sequence:        0,
				SigOpCount:      1,
			},
		},
		Outputs: []Output{
			{
				Amount: 100000000,
				ScriptPublicKey: ScriptPublicKey{
					Version: 0,
					Script:  []byte{0x20, 0xaa},
				},
			},
		},
		LockTime:     0,
		SubnetworkID: DefaultSubnetworkID,
		Gas:          0,
		Payload:      nil,
	}
}

func TestWireRoundTrip(t *testing.T) {
	original := sampleTransaction()
	data, err := original.ToWireJSON()
	if err != nil {
		t.Fatalf("ToWireJSON: %v", err)
	}

	got, err := FromWireJSON(data)
	if err != nil {
		t.Fatalf("FromWireJSON: %v", err)
	}

	if got.Version != original.Version || got.LockTime != original.LockTime || got.Gas != original.Gas {
		t.Fatalf("scalar field mismatch: %+v", got)
	}
	if len(got.Inputs) != 1 || got.Inputs[0].SigOpCount != 1 || got.Inputs[0].Sequence != 0 {
		t.Fatalf("input mismatch: %+v", got.Inputs)
	}
	if len(got.Outputs) != 1 || got.Outputs[0].Amount != 100000000 {
		t.Fatalf("output mismatch: %+v", got.Outputs)
	}
}

func TestWireFieldNamesAndShape(t *testing.T) {
	data, err := sampleTransaction().ToWireJSON()
	if err != nil {
		t.Fatalf("ToWireJSON: %v", err)
	}

	var generic map[string]interface{}
	if err := json.Unmarshal(data, &generic); err != nil {
		t.Fatalf("unmarshal generic: %v", err)
	}

	txObj, ok := generic["transaction"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected top-level \"transaction\" object, got %v", generic)
	}

	for _, field := range []string{"version", "inputs", "outputs", "lockTime", "subnetworkId", "gas", "payload"} {
		if _, ok := txObj[field]; !ok {
			t.Fatalf("missing field %q in wire transaction", field)
		}
	}

	inputs, ok := txObj["inputs"].([]interface{})
	if !ok || len(inputs) != 1 {
		t.Fatalf("expected one-element inputs array, got %v", txObj["inputs"])
	}
	in0, ok := inputs[0].(map[string]interface{})
	if !ok {
		t.Fatalf("input element not an object")
	}
	for _, field := range []string{"previousOutpoint", "signatureScript", "sequence", "sigOpCount"} {
		if _, ok := in0[field]; !ok {
			t.Fatalf("missing input field %q", field)
		}
	}
	prevOutpoint, ok := in0["previousOutpoint"].(map[string]interface{})
	if !ok {
		t.Fatalf("previousOutpoint not an object")
	}
	for _, field := range []string{"transactionId", "index"} {
		if _, ok := prevOutpoint[field]; !ok {
			t.Fatalf("missing previousOutpoint field %q", field)
		}
	}

	outputs, ok := txObj["outputs"].([]interface{})
	if !ok || len(outputs) != 1 {
		t.Fatalf("expected one-element outputs array, got %v", txObj["outputs"])
	}
	out0, ok := outputs[0].(map[string]interface{})
	if !ok {
		t.Fatalf("output element not an object")
	}
	spk, ok := out0["scriptPublicKey"].(map[string]interface{})
	if !ok {
		t.Fatalf("scriptPublicKey not an object")
	}
	for _, field := range []string{"version", "scriptPublicKey"} {
		if _, ok := spk[field]; !ok {
			t.Fatalf("missing scriptPublicKey field %q", field)
		}
	}
}

func TestWireEmptyInputsOutputsMarshalAsArrays(t *testing.T) {
	empty := &Transaction{SubnetworkID: DefaultSubnetworkID}
	data, err := empty.ToWireJSON()
	if err != nil {
		t.Fatalf("ToWireJSON: %v", err)
	}

	var generic map[string]interface{}
	if err := json.Unmarshal(data, &generic); err != nil {
		t.Fatalf("unmarshal generic: %v", err)
	}
	txObj := generic["transaction"].(map[string]interface{})
	if _, ok := txObj["inputs"].([]interface{}); !ok {
		t.Fatalf("expected inputs to marshal as an array, got %T", txObj["inputs"])
	}
	if _, ok := txObj["outputs"].([]interface{}); !ok {
		t.Fatalf("expected outputs to marshal as an array, got %T", txObj["outputs"])
	}
}

func TestFromWireJSONRejectsBadHex(t *testing.T) {
	bad := []byte(`{"transaction":{"version":0,"inputs":[],"outputs":[],"lockTime":0,"subnetworkId":"zz","gas":0,"payload":""}}`)
	if _, err := FromWireJSON(bad); err == nil {
		t.Fatalf("expected error for invalid subnetworkId hex")
	}
}
