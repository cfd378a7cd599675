package trip

import (
	"testing"
	"time"
)

func TestFareCalculator_Calculate(t *testing.T) {
	calc := NewFareCalculator(5.0, 0.5, "EGP")

	cases := []struct {
		name    string
		elapsed time.Duration
		want    float64
	}{
		{"zero elapsed charges one minute", 0, 5.5},
		{"thirty seconds charges one minute", 30 * time.Second, 5.5},
		{"exactly one minute", time.Minute, 5.5},
		{"just over two minutes rounds up to three", 125 * time.Second, 6.5},
		{"ten minutes", 10 * time.Minute, 10.0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := calc.Calculate(tc.elapsed)
			if got != tc.want {
				t.Errorf("Calculate(%v) = %v, want %v", tc.elapsed, got, tc.want)
			}
		})
	}
}

func TestNewFareCalculator_DefaultCurrency(t *testing.T) {
	calc := NewFareCalculator(5.0, 0.5, "")
	if calc.Currency != "EGP" {
		t.Errorf("Currency = %s, want EGP", calc.Currency)
	}
}
