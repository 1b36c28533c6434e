package krc20

import (
	"bytes"
	"testing"

	"github.com/blacktrace/kaspa-txcore/opcodes"
	"github.com/blacktrace/kaspa-txcore/tx"
	"github.com/blacktrace/kaspa-txcore/txbuilder"
)

func TestBuildCommitAssemblesP2SHOutput(t *testing.T) {
	opJSON, err := DeployMint(DeployMintParams{Tick: "KAST", Max: "21000000", Lim: "1000"})
	if err != nil {
		t.Fatalf("DeployMint: %v", err)
	}

	pubkey := bytes.Repeat([]byte{0xaa}, 32)
	fundingUTXOs := []tx.UTXO{
		{Outpoint: tx.Outpoint{TransactionID: "ff", Index: 0}, Amount: 1_000_000},
	}
	changeSPK := []byte{0x20, 0xbb, 0xac}

	cfg := txbuilder.Config{Network: "mainnet", MaxFee: 1_000_000, DefaultFeeRate: 1}
	pair, plan, err := BuildCommit(cfg, pubkey, false, opJSON, fundingUTXOs, changeSPK, 0, 0)
	if err != nil {
		t.Fatalf("BuildCommit: %v", err)
	}

	if pair.CommitAmount != DefaultCommitAmount {
		t.Fatalf("expected default commit amount, got %d", pair.CommitAmount)
	}
	if len(pair.CommitScriptPubKey) != 35 {
		t.Fatalf("expected 35-byte P2SH commit script, got %d", len(pair.CommitScriptPubKey))
	}
	if pair.CommitScriptPubKey[0] != opcodes.OpBlake2b {
		t.Fatalf("expected commit script to start with OP_BLAKE2B")
	}

	if len(plan.Transaction.Outputs) == 0 || !bytes.Equal(plan.Transaction.Outputs[0].ScriptPublicKey.Script, pair.CommitScriptPubKey) {
		t.Fatalf("expected commit transaction's first output to pay the P2SH commit script")
	}
}

func TestBuildCommitRejectsBelowMinAmount(t *testing.T) {
	opJSON, _ := Mint("KAST", "")
	pubkey := bytes.Repeat([]byte{0xaa}, 32)
	fundingUTXOs := []tx.UTXO{{Outpoint: tx.Outpoint{TransactionID: "ff", Index: 0}, Amount: 1_000_000}}
	cfg := txbuilder.Config{Network: "mainnet", MaxFee: 1_000_000, DefaultFeeRate: 1}

	_, _, err := BuildCommit(cfg, pubkey, false, opJSON, fundingUTXOs, nil, 500, 0)
	if err == nil {
		t.Fatalf("expected error for commit amount below MinCommitAmount")
	}
}

func TestBuildRevealDeductsDeployFee(t *testing.T) {
	opJSON, _ := DeployMint(DeployMintParams{Tick: "KAST", Max: "1", Lim: "1"})
	pubkey := bytes.Repeat([]byte{0xaa}, 32)
	envelopeRedeem := pair(t, pubkey, opJSON)

	commitUTXO := tx.UTXO{
		Outpoint:        tx.Outpoint{TransactionID: "ee", Index: 0},
		Amount:          RevealFeeDeploy + 5000,
		ScriptPublicKey: envelopeRedeem.CommitScriptPubKey,
	}

	recipientSPK := []byte{0x20, 0xcc, 0xac}
	revealTx, err := BuildReveal(envelopeRedeem, commitUTXO, "deploy", recipientSPK, 0)
	if err != nil {
		t.Fatalf("BuildReveal: %v", err)
	}

	if len(revealTx.Inputs) != 1 || revealTx.Inputs[0].PreviousOutpoint != commitUTXO.Outpoint {
		t.Fatalf("expected single input spending the commit UTXO")
	}
	if len(revealTx.Outputs) != 1 {
		t.Fatalf("expected single output")
	}
	wantAmount := commitUTXO.Amount - RevealFeeDeploy
	if revealTx.Outputs[0].Amount != wantAmount {
		t.Fatalf("got output amount %d want %d", revealTx.Outputs[0].Amount, wantAmount)
	}
}

func TestBuildRevealInsufficientFunds(t *testing.T) {
	opJSON, _ := Mint("KAST", "")
	pubkey := bytes.Repeat([]byte{0xaa}, 32)
	envelopeRedeem := pair(t, pubkey, opJSON)

	commitUTXO := tx.UTXO{
		Outpoint:        tx.Outpoint{TransactionID: "ee", Index: 0},
		Amount:          500, // below the mint reveal fee
		ScriptPublicKey: envelopeRedeem.CommitScriptPubKey,
	}

	_, err := BuildReveal(envelopeRedeem, commitUTXO, "mint", nil, 0)
	if err == nil {
		t.Fatalf("expected InsufficientFunds")
	}
}

func TestRevealFeeForOpUnknownOp(t *testing.T) {
	if _, err := RevealFeeForOp("unknown"); err == nil {
		t.Fatalf("expected error for unknown op")
	}
}

func pair(t *testing.T, pubkey, opJSON []byte) *CommitRevealPair {
	t.Helper()
	fundingUTXOs := []tx.UTXO{{Outpoint: tx.Outpoint{TransactionID: "ff", Index: 0}, Amount: 1_000_000}}
	cfg := txbuilder.Config{Network: "mainnet", MaxFee: 1_000_000, DefaultFeeRate: 1}
	p, _, err := BuildCommit(cfg, pubkey, false, opJSON, fundingUTXOs, nil, 0, 0)
	if err != nil {
		t.Fatalf("BuildCommit: %v", err)
	}
	return p
}
