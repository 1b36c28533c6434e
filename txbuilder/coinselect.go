// Package txbuilder assembles and signs Kaspa transactions: coin
// selection, fee estimation, output construction, and signature
// installation.
//
// Grounded in the teacher's coin-accumulation loop in
// connectors/zcash/transaction.go (walk UTXOs, accumulate until the
// target is covered, fail with a typed insufficient-funds error
// otherwise) and its sign-and-assemble flow in
// services/node/zcash_tx.go.
package txbuilder

import (
	"sort"

	"github.com/blacktrace/kaspa-txcore/kerrors"
	"github.com/blacktrace/kaspa-txcore/tx"
)

// sortUTXOs orders u descending by amount, ties broken ascending by
// (transaction_id, index), so selection is deterministic.
func sortUTXOs(u []tx.UTXO) []tx.UTXO {
	out := make([]tx.UTXO, len(u))
	copy(out, u)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Amount != out[j].Amount {
			return out[i].Amount > out[j].Amount
		}
		if out[i].Outpoint.TransactionID != out[j].Outpoint.TransactionID {
			return out[i].Outpoint.TransactionID < out[j].Outpoint.TransactionID
		}
		return out[i].Outpoint.Index < out[j].Outpoint.Index
	})
	return out
}

// SelectionResult is the outcome of coin selection: the chosen UTXOs,
// the final fee and output count, and the change amount (0 when
// outputCount is 1).
type SelectionResult struct {
	Selected    []tx.UTXO
	Fee         uint64
	OutputCount int
	Change      uint64
}

// SelectCoins greedily accumulates UTXOs, descending by amount, until
// their sum covers amount plus a fee estimate, then finalizes the fee
// and output count against the dust policy. Returns InsufficientFunds
// if the whole UTXO set cannot cover amount plus the fee for spending
// all of it.
func SelectCoins(utxos []tx.UTXO, amount, feeRate uint64) (*SelectionResult, error) {
	sorted := sortUTXOs(utxos)

	var selected []tx.UTXO
	var sum uint64
	for _, u := range sorted {
		selected = append(selected, u)
		sum += u.Amount

		// Assume two outputs (recipient + change) until proven otherwise;
		// finalized below once the input count is fixed.
		fee := EstimateFee(len(selected), 2, feeRate)
		if sum >= amount+fee {
			return finalizeSelection(selected, sum, amount, feeRate)
		}
	}

	fee := EstimateFee(len(selected), 2, feeRate)
	required := amount + fee
	return nil, &kerrors.InsufficientFunds{Required: required, Available: sum}
}

// SelectSingleUTXO is the single-input fast path for callers that must
// spend one specific UTXO rather than accumulate from a set.
func SelectSingleUTXO(utxo tx.UTXO, amount, feeRate uint64) (*SelectionResult, error) {
	return finalizeSelection([]tx.UTXO{utxo}, utxo.Amount, amount, feeRate)
}

func finalizeSelection(selected []tx.UTXO, sum, amount, feeRate uint64) (*SelectionResult, error) {
	feeTwoOutputs := EstimateFee(len(selected), 2, feeRate)
	if sum < amount+feeTwoOutputs {
		feeOneOutput := EstimateFee(len(selected), 1, feeRate)
		if sum < amount+feeOneOutput {
			return nil, &kerrors.InsufficientFunds{Required: amount + feeOneOutput, Available: sum}
		}
		// Residual below dust: no change output, the whole remainder is
		// the fee paid.
		return &SelectionResult{
			Selected:    selected,
			Fee:         sum - amount,
			OutputCount: 1,
			Change:      0,
		}, nil
	}

	change := sum - amount - feeTwoOutputs
	if change < DustThreshold {
		return &SelectionResult{
			Selected:    selected,
			Fee:         sum - amount,
			OutputCount: 1,
			Change:      0,
		}, nil
	}

	return &SelectionResult{
		Selected:    selected,
		Fee:         feeTwoOutputs,
		OutputCount: 2,
		Change:      change,
	}, nil
}
