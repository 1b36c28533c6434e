package krc20

import (
	"github.com/blacktrace/kaspa-txcore/kerrors"
	"github.com/blacktrace/kaspa-txcore/script"
	"github.com/blacktrace/kaspa-txcore/tx"
	"github.com/blacktrace/kaspa-txcore/txbuilder"
)

// DefaultCommitAmount and MinCommitAmount are the commit output's
// target and floor amounts in sompi, per spec.md §4.5.
const (
	DefaultCommitAmount uint64 = 10000
	MinCommitAmount     uint64 = 1000
)

// Reveal fee policy per operation, in sompi — see spec.md §4.5. These
// are the amounts deducted from the P2SH UTXO on reveal; transfer,
// burn, list, and send share the negligible network-fee tier.
const (
	RevealFeeDeploy            uint64 = 1000 * 1e8
	RevealFeeMint              uint64 = 1 * 1e8
	RevealFeeNetworkNegligible uint64 = 2000
)

// RevealFeeForOp returns the protocol-mandated reveal fee for op
// ("deploy", "mint", "transfer", "burn", "list", "send").
func RevealFeeForOp(op string) (uint64, error) {
	switch op {
	case "deploy":
		return RevealFeeDeploy, nil
	case "mint":
		return RevealFeeMint, nil
	case "transfer", "burn", "list", "send":
		return RevealFeeNetworkNegligible, nil
	default:
		return 0, &kerrors.InvalidTransaction{Message: "krc20: unknown operation " + op}
	}
}

// CommitRevealPair is the in-memory state a caller must persist between
// building the commit transaction and building the reveal transaction
// once the commit is confirmed and its P2SH UTXO is known.
type CommitRevealPair struct {
	OperationJSON      []byte
	RedeemScript       []byte
	CommitScriptPubKey []byte
	CommitScriptHash   [32]byte
	CommitAmount       uint64
	UseECDSA           bool
}

// BuildCommit assembles the commit transaction: an envelope carrying
// operationJSON wrapped in a P2SH output that only the holder of
// redeemScript can later spend.
func BuildCommit(cfg txbuilder.Config, pubkey []byte, useECDSA bool, operationJSON []byte, fundingUTXOs []tx.UTXO, changeScriptPubKey []byte, commitAmount uint64, feeRateOverride uint64) (*CommitRevealPair, *txbuilder.SendPlan, error) {
	if commitAmount == 0 {
		commitAmount = DefaultCommitAmount
	}
	if commitAmount < MinCommitAmount {
		return nil, nil, &kerrors.InvalidAmount{Min: MinCommitAmount, Max: txbuilder.MaxSupplySompi, Actual: commitAmount}
	}

	envelope := script.BuildEnvelope("kasplex", operationJSON, nil)
	redeemScript := script.BuildRedeemScript(pubkey, envelope, useECDSA)
	commitSPK, hash := script.P2SHCommitScriptPubKey(redeemScript)

	plan, err := txbuilder.PlanSendToScriptPubKey(cfg, fundingUTXOs, commitSPK, commitAmount, feeRateOverride, changeScriptPubKey)
	if err != nil {
		return nil, nil, err
	}

	pair := &CommitRevealPair{
		OperationJSON:      operationJSON,
		RedeemScript:       redeemScript,
		CommitScriptPubKey: commitSPK,
		CommitScriptHash:   hash,
		CommitAmount:       commitAmount,
		UseECDSA:           useECDSA,
	}
	return pair, plan, nil
}

// BuildReveal assembles the reveal transaction spending the commit's
// P2SH UTXO. commitUTXO must be the UTXO the commit transaction created
// at the P2SH scriptPubKey recorded in pair. The single output sends
// the remainder (commitAmount - revealFee - networkFee) to
// recipientScriptPubKey.
//
// The caller must sign the resulting transaction's single input with
// sighash computed against pair.CommitScriptPubKey — see the critical
// P2SH rule on sighash.UTXOInfo — and install the signature script as
// `push(sig‖0x01) push(redeemScript)`, which txbuilder.SignInputs does
// automatically when given an InputSignSpec.RedeemScript.
func BuildReveal(pair *CommitRevealPair, commitUTXO tx.UTXO, op string, recipientScriptPubKey []byte, networkFee uint64) (*tx.Transaction, error) {
	revealFee, err := RevealFeeForOp(op)
	if err != nil {
		return nil, err
	}
	totalFee := revealFee + networkFee
	if commitUTXO.Amount <= totalFee {
		return nil, &kerrors.InsufficientFunds{Required: totalFee, Available: commitUTXO.Amount}
	}

	outputAmount := commitUTXO.Amount - totalFee

	transaction := &tx.Transaction{
		Version: 0,
		Inputs: []tx.Input{{
			PreviousOutpoint: commitUTXO.Outpoint,
			SignatureScript:  nil,
			Sequence:         0,
			SigOpCount:       1,
		}},
		Outputs: []tx.Output{{
			Amount:          outputAmount,
			ScriptPublicKey: tx.ScriptPublicKey{Version: 0, Script: recipientScriptPubKey},
		}},
		LockTime:     0,
		SubnetworkID: tx.DefaultSubnetworkID,
		Gas:          0,
		Payload:      nil,
	}

	return transaction, nil
}
