package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFromDecimal(t *testing.T) {
	d := decimal.NewFromFloat(10.125)
	m := FromDecimal(d)
	if !m.Decimal.Equal(d) {
		t.Fatalf("FromDecimal mismatch: got %s want %s", m.Decimal, d)
	}
	if m.String() != "10.13" { // rounded for display
		t.Fatalf("display mismatch: got %s", m.String())
	}
}

func TestRounding(t *testing.T) {
	cases := []struct{ in, out string }{
		{"2.344", "2.34"},
		{"2.345", "2.35"},
		{"2.355", "2.36"},
		{"2.365", "2.37"},
	}
	for _, c := range cases {
		d, err := decimal.NewFromString(c.in)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got := FromDecimal(d).Round().String()
		if got != c.out {
			t.Fatalf("round(%s) got %s want %s", c.in, got, c.out)
		}
	}
}

func TestPeriodConversions(t *testing.T) {
	m := FromDecimal(decimal.NewFromInt(100))
	if got := m.Annual().String(); got != "1200.00" {
		t.Fatalf("Annual got %s", got)
	}
	if got := m.Annual().Monthly().String(); got != "100.00" {
		t.Fatalf("Monthly after Annual got %s", got)
	}
}

func TestFormatting(t *testing.T) {
	m := FromDecimal(decimal.NewFromFloat(1234.5))
	if got := m.Format(); got != "$1234.50" {
		t.Fatalf("Format got %s", got)
	}
	if got := m.FormatWhole(); got != "$1235" {
		t.Fatalf("FormatWhole got %s", got)
	}
}
