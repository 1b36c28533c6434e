package txbuilder

import (
	"context"

	"github.com/blacktrace/kaspa-txcore/address"
	"github.com/blacktrace/kaspa-txcore/kerrors"
	"github.com/blacktrace/kaspa-txcore/oracle"
	"github.com/blacktrace/kaspa-txcore/script"
	"github.com/blacktrace/kaspa-txcore/sighash"
	"github.com/blacktrace/kaspa-txcore/tx"
)

// Config is the caller-supplied construction-time configuration: key
// identifier, API host, network prefix, and fee policy. Passed
// explicitly, never held as global mutable state — see
// SPEC_FULL.md §2.
type Config struct {
	KeyName        string
	APIHost        string
	Network        string // "mainnet" | "testnet"
	MaxFee         uint64
	DefaultFeeRate uint64
}

func (c Config) prefix() string {
	if c.Network == "testnet" {
		return address.TestnetPrefix
	}
	return address.MainnetPrefix
}

func (c Config) feeRate(override uint64) uint64 {
	if override != 0 {
		return override
	}
	if c.DefaultFeeRate != 0 {
		return c.DefaultFeeRate
	}
	return DefaultFeeRate
}

// SendPlan is the unsigned result of planning a plain send: the
// constructed transaction, the UTXOs it spends (in input order, needed
// again at signing time), and the fee actually charged.
type SendPlan struct {
	Transaction *tx.Transaction
	SpentUTXOs  []tx.UTXO
	Fee         uint64
}

// PlanSend selects coins, builds the recipient and (optional) change
// outputs, and returns an unsigned transaction ready for sighash
// computation and signing.
func PlanSend(cfg Config, utxos []tx.UTXO, toAddr string, amount uint64, feeRateOverride uint64, changeAddr string) (*SendPlan, error) {
	toInfo, err := address.Decode(toAddr)
	if err != nil {
		return nil, err
	}
	changeInfo, err := address.Decode(changeAddr)
	if err != nil {
		return nil, err
	}
	return PlanSendToScriptPubKey(cfg, utxos, toInfo.ScriptPubKey, amount, feeRateOverride, changeInfo.ScriptPubKey)
}

// PlanSendToScriptPubKey is PlanSend's address-agnostic core: it builds
// straight to raw scriptPubKey bytes rather than decoding a CashAddr
// string, so callers that synthesize a scriptPubKey directly (the
// KRC20 builder's P2SH commit output) don't need a throwaway address.
func PlanSendToScriptPubKey(cfg Config, utxos []tx.UTXO, toScriptPubKey []byte, amount uint64, feeRateOverride uint64, changeScriptPubKey []byte) (*SendPlan, error) {
	if err := ValidateAmount(amount, 1); err != nil {
		return nil, err
	}

	feeRate := cfg.feeRate(feeRateOverride)
	selection, err := SelectCoins(utxos, amount, feeRate)
	if err != nil {
		return nil, err
	}
	if err := ValidateFee(selection.Fee, 0, cfg.MaxFee); err != nil {
		return nil, err
	}

	outputs := []tx.Output{{
		Amount:          amount,
		ScriptPublicKey: tx.ScriptPublicKey{Version: 0, Script: toScriptPubKey},
	}}

	if selection.OutputCount == 2 {
		outputs = append(outputs, tx.Output{
			Amount:          selection.Change,
			ScriptPublicKey: tx.ScriptPublicKey{Version: 0, Script: changeScriptPubKey},
		})
	}

	inputs := make([]tx.Input, len(selection.Selected))
	for i, u := range selection.Selected {
		inputs[i] = tx.Input{
			PreviousOutpoint: u.Outpoint,
			SignatureScript:  nil,
			Sequence:         0,
			SigOpCount:       1,
		}
	}

	transaction := &tx.Transaction{
		Version:      0,
		Inputs:       inputs,
		Outputs:      outputs,
		LockTime:     0,
		SubnetworkID: tx.DefaultSubnetworkID,
		Gas:          0,
		Payload:      nil,
	}

	return &SendPlan{Transaction: transaction, SpentUTXOs: selection.Selected, Fee: selection.Fee}, nil
}

// InputSignSpec tells SignInputs how to sign one input: whether the
// spent output uses the ECDSA or Schnorr curve path, and the redeem
// script to attach for a P2SH spend (nil for a plain P2PK spend).
type InputSignSpec struct {
	UseECDSA     bool
	RedeemScript []byte
	Path         oracle.DerivationPath
}

// SignInputs computes the sighash digest for every input, obtains a
// signature from signer, and installs the resulting signature script.
// utxos must be in the same order as transaction.Inputs (the order
// SpentUTXOs/PlanSend produced) and specs must carry one entry per
// input. Fails atomically: signature scripts are installed only after
// every input's digest, oracle call, and encoding has succeeded, so on
// error no input of transaction is modified.
func SignInputs(ctx context.Context, transaction *tx.Transaction, utxos []tx.UTXO, specs []InputSignSpec, signer oracle.Signer, hashType byte) error {
	if len(utxos) != len(transaction.Inputs) || len(specs) != len(transaction.Inputs) {
		return &kerrors.InvalidTransaction{Message: "utxos/specs length must match inputs"}
	}

	sighashType := sighash.Type(hashType)
	if err := sighash.Validate(sighashType); err != nil {
		return err
	}

	cache := sighash.NewMidstateCache(transaction)
	sigScripts := make([][]byte, len(specs))

	for i, spec := range specs {
		utxoInfo := sighash.UTXOInfo{
			ScriptVersion:   utxos[i].ScriptVersion,
			ScriptPublicKey: utxos[i].ScriptPublicKey, // critical rule: always the scriptPubKey being spent, never a redeem script
			Amount:          utxos[i].Amount,
		}

		var digest [32]byte
		var err error
		if spec.UseECDSA {
			digest, err = sighash.ComputeECDSADigest(cache, transaction, i, utxoInfo, sighashType)
		} else {
			digest, err = sighash.ComputeSchnorrDigest(cache, transaction, i, utxoInfo, sighashType)
		}
		if err != nil {
			return err
		}

		rawSig, err := signer.Sign(ctx, digest, spec.Path)
		if err != nil {
			return &kerrors.CryptographicError{Message: "signing oracle: " + err.Error()}
		}

		var sigBytes []byte
		if spec.UseECDSA {
			der, err := EncodeDERLowS(rawSig)
			if err != nil {
				return err
			}
			sigBytes = der
		} else {
			sigBytes = append([]byte{}, rawSig[:]...)
		}
		sigBytes = append(sigBytes, hashType)

		if spec.RedeemScript != nil {
			sigScripts[i] = script.P2SHSignatureScript(sigBytes, spec.RedeemScript)
		} else {
			sigScripts[i] = script.Push(sigBytes)
		}
	}

	for i, s := range sigScripts {
		transaction.Inputs[i].SignatureScript = s
	}
	return nil
}
