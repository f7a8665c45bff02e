package decimal

import (
	"testing"

	stddec "github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

func TestConstructors(t *testing.T) {
	m := NewMoney(12.345)
	if m.String() != "12.35" { // rounded for display
		t.Fatalf("NewMoney display mismatch: got %s", m.String())
	}

	d := stddec.NewFromFloat(10.125)
	m2 := NewMoneyFromDecimal(d)
	if !m2.Decimal.Equal(d) {
		t.Fatalf("NewMoneyFromDecimal mismatch: got %s want %s", m2.Decimal, d)
	}

	m3, err := NewMoneyFromString("123.45")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m3.String() != "123.45" {
		t.Fatalf("NewMoneyFromString display mismatch: got %s", m3.String())
	}

	if _, err := NewMoneyFromString("not-a-number"); err == nil {
		t.Fatalf("expected error for invalid string")
	}
}

func TestRounding(t *testing.T) {
	cases := []struct{ in, out string }{
		{"2.344", "2.34"},
		{"2.345", "2.35"},
		{"60.2739726", "60.27"},
		{"0.005", "0.01"},
	}
	for _, c := range cases {
		m, _ := NewMoneyFromString(c.in)
		got := m.Round().String()
		if got != c.out {
			t.Fatalf("round(%s) got %s want %s", c.in, got, c.out)
		}
	}
}

func TestPercentAndHalf(t *testing.T) {
	owed := NewMoneyFromInt(1000)
	if got := owed.Percent(stddec.NewFromInt(3)).String(); got != "30.00" {
		t.Fatalf("Percent got %s want 30.00", got)
	}
	if got := NewMoneyFromInt(100000).Half().String(); got != "50000.00" {
		t.Fatalf("Half got %s want 50000.00", got)
	}
}

func TestArithmetic(t *testing.T) {
	a := NewMoney(10.10)
	b := NewMoney(5.05)
	if got := a.Add(b).String(); got != "15.15" {
		t.Fatalf("Add got %s", got)
	}
	if got := a.Sub(b).String(); got != "5.05" {
		t.Fatalf("Sub got %s", got)
	}
	if got := a.Mul(stddec.NewFromFloat(2.5)).String(); got != "25.25" {
		t.Fatalf("Mul got %s", got)
	}
	if got := a.Div(stddec.NewFromInt(2)).String(); got != "5.05" {
		t.Fatalf("Div got %s", got)
	}
	if !Max(a, b).Equal(a) {
		t.Fatalf("Max should pick the larger amount")
	}
	if !Zero().IsZero() {
		t.Fatalf("Zero should be zero")
	}
}

func TestFormat(t *testing.T) {
	cases := []struct {
		in   Money
		want string
	}{
		{NewMoneyFromInt(0), "£0.00"},
		{NewMoney(1234.5), "£1,234.50"},
		{NewMoneyFromInt(50000), "£50,000.00"},
		{NewMoney(-42.1), "-£42.10"},
	}
	for _, c := range cases {
		if got := c.in.Format(); got != c.want {
			t.Fatalf("Format(%s) got %q want %q", c.in, got, c.want)
		}
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	var holder struct {
		Amount Money `yaml:"amount"`
	}
	if err := yaml.Unmarshal([]byte("amount: 1234.56\n"), &holder); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if holder.Amount.String() != "1234.56" {
		t.Fatalf("got %s", holder.Amount)
	}
}
