// Package kerrors defines the shared, tagged error kinds used across the
// transaction-construction core (everything except address.InvalidAddress,
// which predates this package and already plays the same role for the
// address codec).
//
// Grounded in the teacher's typed-error style in
// connectors/zcash/transaction.go (distinct error values per failure
// reason, checked with errors.As by callers) rather than bare
// fmt.Errorf strings.
package kerrors

import "fmt"

// InvalidPublicKey signals a public key of the wrong length or with an
// invalid ECDSA prefix byte.
type InvalidPublicKey struct {
	ExpectedLength int
	ActualLength   int
}

func (e *InvalidPublicKey) Error() string {
	return fmt.Sprintf("invalid public key: expected length %d, got %d", e.ExpectedLength, e.ActualLength)
}

// InvalidAmount signals an amount outside the allowed range: below dust,
// above the maximum supply, or zero where zero is disallowed.
type InvalidAmount struct {
	Min, Max, Actual uint64
}

func (e *InvalidAmount) Error() string {
	return fmt.Sprintf("invalid amount %d: must be between %d and %d", e.Actual, e.Min, e.Max)
}

// InvalidFee signals a fee outside the configured policy bounds.
type InvalidFee struct {
	Min, Max, Actual uint64
}

func (e *InvalidFee) Error() string {
	return fmt.Sprintf("invalid fee %d: must be between %d and %d", e.Actual, e.Min, e.Max)
}

// InvalidSighashType signals a sighash type byte outside the six legal
// values (All, None, Single, and their AnyOneCanPay combinations).
type InvalidSighashType struct {
	Type byte
}

func (e *InvalidSighashType) Error() string {
	return fmt.Sprintf("invalid sighash type 0x%02x", e.Type)
}

// InsufficientFunds signals that coin selection could not cover the
// requested amount plus fee from the supplied UTXO set.
type InsufficientFunds struct {
	Required, Available uint64
}

func (e *InsufficientFunds) Error() string {
	return fmt.Sprintf("insufficient funds: required %d, available %d", e.Required, e.Available)
}

// CryptographicError wraps a digest, signature, or signing-oracle
// failure.
type CryptographicError struct {
	Message string
}

func (e *CryptographicError) Error() string { return "cryptographic error: " + e.Message }

// NetworkError wraps an HTTP transport failure or non-200 response.
type NetworkError struct {
	Message    string
	StatusCode int
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("network error (status %d): %s", e.StatusCode, e.Message)
	}
	return "network error: " + e.Message
}

// InvalidTransaction signals a builder invariant broken by caller input,
// such as a reveal referencing an unknown UTXO.
type InvalidTransaction struct {
	Message string
}

func (e *InvalidTransaction) Error() string { return "invalid transaction: " + e.Message }

// InternalError wraps a parse failure of external JSON or a config
// inconsistency.
type InternalError struct {
	Message string
}

func (e *InternalError) Error() string { return "internal error: " + e.Message }
