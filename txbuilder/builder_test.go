package txbuilder

import (
	"context"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"

	"github.com/blacktrace/kaspa-txcore/address"
	"github.com/blacktrace/kaspa-txcore/kerrors"
	"github.com/blacktrace/kaspa-txcore/oracle"
	"github.com/blacktrace/kaspa-txcore/sighash"
	"github.com/blacktrace/kaspa-txcore/tx"
)

func mustGenKey(t *testing.T) *btcec.PrivateKey {
	t.Helper()
	key, err := btcec.NewPrivateKey()
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	return key
}

func TestPlanSendAndSignSchnorrP2PK(t *testing.T) {
	key := mustGenKey(t)
	pubkey32 := schnorr.SerializePubKey(key.PubKey())

	toAddr, err := address.Encode(pubkey32, address.Schnorr, address.MainnetPrefix)
	if err != nil {
		t.Fatalf("Encode to address: %v", err)
	}
	changeAddr, err := address.Encode(pubkey32, address.Schnorr, address.MainnetPrefix)
	if err != nil {
		t.Fatalf("Encode change address: %v", err)
	}

	spendingSPK, err := address.ScriptPubKey(pubkey32, address.Schnorr)
	if err != nil {
		t.Fatalf("ScriptPubKey: %v", err)
	}

	utxos := []tx.UTXO{
		{Outpoint: tx.Outpoint{TransactionID: "ab", Index: 0}, Amount: 1_000_000, ScriptPublicKey: spendingSPK},
	}

	cfg := Config{Network: "mainnet", MaxFee: 1_000_000, DefaultFeeRate: 1}
	plan, err := PlanSend(cfg, utxos, toAddr, 500_000, 0, changeAddr)
	if err != nil {
		t.Fatalf("PlanSend: %v", err)
	}

	specs := make([]InputSignSpec, len(plan.Transaction.Inputs))
	for i := range specs {
		specs[i] = InputSignSpec{UseECDSA: false}
	}

	signer := oracle.NewLocalSchnorrSigner(key)
	if err := SignInputs(context.Background(), plan.Transaction, plan.SpentUTXOs, specs, signer, byte(sighash.All)); err != nil {
		t.Fatalf("SignInputs: %v", err)
	}

	sigScript := plan.Transaction.Inputs[0].SignatureScript
	if len(sigScript) == 0 {
		t.Fatalf("expected a non-empty signature script")
	}
	// push(65 bytes) -> single length-prefix byte then 65 bytes of sig+hashtype.
	if sigScript[0] != 65 || len(sigScript) != 66 {
		t.Fatalf("unexpected schnorr signature script shape: len=%d first=%d", len(sigScript), sigScript[0])
	}

	// Verify the installed signature actually validates against the digest
	// this transaction's sighash engine computes.
	cache := sighash.NewMidstateCache(plan.Transaction)
	utxoInfo := sighash.UTXOInfo{ScriptVersion: 0, ScriptPublicKey: spendingSPK, Amount: utxos[0].Amount}
	digest, err := sighash.ComputeSchnorrDigest(cache, plan.Transaction, 0, utxoInfo, sighash.All)
	if err != nil {
		t.Fatalf("ComputeSchnorrDigest: %v", err)
	}

	rawSig := sigScript[1:65]
	parsed, err := schnorr.ParseSignature(rawSig)
	if err != nil {
		t.Fatalf("ParseSignature: %v", err)
	}
	if !parsed.Verify(digest[:], key.PubKey()) {
		t.Fatalf("installed schnorr signature does not verify against the sighash digest")
	}
}

func TestPlanSendInsufficientFundsPropagates(t *testing.T) {
	utxos := []tx.UTXO{{Outpoint: tx.Outpoint{TransactionID: "ab", Index: 0}, Amount: 100}}
	cfg := Config{Network: "mainnet", MaxFee: 1_000_000, DefaultFeeRate: 1000}
	addr, err := address.Encode(make([]byte, 32), address.Schnorr, address.MainnetPrefix)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	_, err = PlanSend(cfg, utxos, addr, 1_000_000, 0, addr)
	if err == nil {
		t.Fatalf("expected failure")
	}
	var insufficient *kerrors.InsufficientFunds
	if !asInsufficientFunds(err, &insufficient) {
		t.Fatalf("expected *kerrors.InsufficientFunds, got %T: %v", err, err)
	}
}
