package txbuilder

import "github.com/blacktrace/kaspa-txcore/kerrors"

// DustThreshold is the minimum change amount (sompi) worth its own
// output; anything smaller is folded into the fee instead.
const DustThreshold uint64 = 1000

// DefaultFeeRate is the fallback fee rate in sompi/byte when a caller
// supplies none.
const DefaultFeeRate uint64 = 1000

// MaxSupplySompi is 21,000,000 KAS expressed in sompi (1 KAS = 1e8 sompi).
const MaxSupplySompi uint64 = 21_000_000 * 1e8

// EstimateFee approximates the byte size of a transaction with
// numInputs inputs and numOutputs outputs and multiplies by feeRate.
func EstimateFee(numInputs, numOutputs int, feeRate uint64) uint64 {
	size := uint64(numInputs)*150 + uint64(numOutputs)*35 + 10
	return size * feeRate
}

// ValidateFee enforces min <= fee <= maxFee.
func ValidateFee(fee, minFee, maxFee uint64) error {
	if fee < minFee || fee > maxFee {
		return &kerrors.InvalidFee{Min: minFee, Max: maxFee, Actual: fee}
	}
	return nil
}

// ValidateAmount enforces an amount is within [min, MaxSupplySompi].
func ValidateAmount(amount, min uint64) error {
	if amount < min || amount > MaxSupplySompi {
		return &kerrors.InvalidAmount{Min: min, Max: MaxSupplySompi, Actual: amount}
	}
	return nil
}
