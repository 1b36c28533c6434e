package txbuilder

import "testing"

func TestEstimateFeeFormula(t *testing.T) {
	got := EstimateFee(2, 2, 1000)
	want := uint64((2*150+2*35+10)*1000)
	if got != want {
		t.Fatalf("got %d want %d", got, want)
	}
}

func TestValidateFeeBounds(t *testing.T) {
	if err := ValidateFee(500, 0, 1000); err != nil {
		t.Fatalf("expected in-range fee to pass: %v", err)
	}
	if err := ValidateFee(1500, 0, 1000); err == nil {
		t.Fatalf("expected over-ceiling fee to fail")
	}
}

func TestValidateAmountBounds(t *testing.T) {
	if err := ValidateAmount(0, 1); err == nil {
		t.Fatalf("expected zero amount to fail when min is 1")
	}
	if err := ValidateAmount(MaxSupplySompi+1, 1); err == nil {
		t.Fatalf("expected over-supply amount to fail")
	}
	if err := ValidateAmount(1000, 1); err != nil {
		t.Fatalf("expected in-range amount to pass: %v", err)
	}
}
