package quality

import (
	"errors"
	"testing"
)

func TestPrecisionExhausted_IsErrPrecisionExhausted(t *testing.T) {
	err := precisionExhausted("vertex at %v coincides with an existing vertex", 1)
	if !errors.Is(err, ErrPrecisionExhausted) {
		t.Errorf("errors.Is(precisionExhausted(...), ErrPrecisionExhausted) = false, want true")
	}

	var re *RefinementError
	if !errors.As(err, &re) {
		t.Fatalf("errors.As(precisionExhausted(...), *RefinementError) = false, want true")
	}
	if re.Kind != PrecisionExhausted {
		t.Errorf("re.Kind = %v, want PrecisionExhausted", re.Kind)
	}
}
