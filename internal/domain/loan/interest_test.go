package loan

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestTotalRepayable(t *testing.T) {
	tests := []struct {
		name      string
		principal string
		rate      string
		want      string
	}{
		{"flat five percent", "10000", "5", "10500"},
		{"zero rate", "10000", "0", "10000"},
		{"zero principal", "0", "12", "0"},
		{"fractional rate", "1000", "12.5", "1125"},
		{"rounds to minor unit", "333.33", "10", "366.66"}, // 366.663 -> 366.66
		{"rounds half away from zero", "0.50", "5", "0.53"}, // 0.525 -> 0.53
		{"small principal", "0.01", "5", "0.01"},            // 0.0105 -> 0.01
		{"large principal", "123456789.99", "18", "145679012.19"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := TotalRepayable(dec(tt.principal), dec(tt.rate))
			if !got.Equal(dec(tt.want)) {
				t.Fatalf("TotalRepayable(%s, %s%%) = %s, want %s", tt.principal, tt.rate, got, tt.want)
			}
		})
	}
}

// The derived total must always equal round2(p * (1 + r/100)) for any
// non-negative principal and rate.
func TestTotalRepayable_Property(t *testing.T) {
	principals := []string{"0", "0.01", "1", "99.99", "250", "10000", "33333.33", "1000000"}
	rates := []string{"0", "0.5", "1", "5", "7.25", "10", "22", "100"}

	for _, p := range principals {
		for _, r := range rates {
			pd, rd := dec(p), dec(r)
			want := pd.Mul(decimal.NewFromInt(1).Add(rd.Div(decimal.NewFromInt(100)))).Round(2)
			if got := TotalRepayable(pd, rd); !got.Equal(want) {
				t.Errorf("TotalRepayable(%s, %s) = %s, want %s", p, r, got, want)
			}
		}
	}
}

// A total is never smaller than the principal for non-negative rates.
func TestTotalRepayable_NeverBelowPrincipal(t *testing.T) {
	for _, p := range []string{"0.01", "500", "9999.99"} {
		for _, r := range []string{"0", "3", "50"} {
			if TotalRepayable(dec(p), dec(r)).LessThan(dec(p)) {
				t.Errorf("total below principal for p=%s r=%s", p, r)
			}
		}
	}
}
