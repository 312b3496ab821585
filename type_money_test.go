package folio

import (
	"encoding/json"
	"testing"
)

func TestMoney(t *testing.T) {
	tests := []struct {
		name  string
		m     Money
		str   string
		fixed string
	}{
		{"usd", USD(1300), "$1,300.00", "1300.00"},
		{"half cent rounds away from zero", USD(0.125), "$0.13", "0.13"},
		{"negative", USD(-12.5), "-$12.50", "-12.50"},
		{"eur", M(150, "EUR"), "€150.00", "150.00"},
		{"no currency", NO(1234.5), "", "1234.50"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.String(); tt.str != "" && got != tt.str {
				t.Errorf("String() = %q, want %q", got, tt.str)
			}
			if got := tt.m.Fixed(); got != tt.fixed {
				t.Errorf("Fixed() = %q, want %q", got, tt.fixed)
			}
		})
	}
}

func TestMoney_Arithmetic(t *testing.T) {
	if got := USD(130).Mul(Q(10)); !got.Equal(USD(1300)) {
		t.Errorf("Mul() = %v, want 1300", got)
	}
	if got := USD(1300).Div(Q(10)); !got.Equal(USD(130)) {
		t.Errorf("Div() = %v, want 130", got)
	}
	// The no currency is neutral.
	if got := NO(0).Add(USD(5)); !got.Equal(USD(5)) {
		t.Errorf("Add() = %v, want 5 USD", got)
	}
	if got := USD(200).PercentOf(USD(1300)); !got.Equal(15.384615) {
		t.Errorf("PercentOf() = %v, want 15.38%%", got)
	}
	if got := USD(200).PercentOf(USD(0)); got != 0 {
		t.Errorf("PercentOf(0) = %v, want 0", got)
	}
	if got := USD(1.005).Round(2); !got.Equal(USD(1.01)) {
		t.Errorf("Round(2) = %v, want 1.01", got)
	}
}

func TestMoney_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(USD(1300.456))
	if err != nil {
		t.Fatal(err)
	}
	if want := `{"currency":"USD","amount":"1300.46"}`; string(b) != want {
		t.Errorf("MarshalJSON() = %s, want %s", b, want)
	}
}

func TestPercent(t *testing.T) {
	p := Percent(15.384615)
	if got := p.Round(); got != 15.38 {
		t.Errorf("Round() = %v, want 15.38", got)
	}
	if got := p.String(); got != "15.38%" {
		t.Errorf("String() = %q, want 15.38%%", got)
	}
	if got := p.SignedString(); got != "+15.38%" {
		t.Errorf("SignedString() = %q, want +15.38%%", got)
	}
	if got := Percent(0).SignedString(); got != "-" {
		t.Errorf("SignedString() of zero = %q, want -", got)
	}
	if got := Percent(-2.5).Fixed(); got != "-2.50" {
		t.Errorf("Fixed() = %q, want -2.50", got)
	}
}

func TestMoney_UnmarshalJSON(t *testing.T) {
	var m Money
	if err := json.Unmarshal([]byte(`{"currency":"USD","amount":"1300.46"}`), &m); err != nil {
		t.Fatal(err)
	}
	if !m.Equal(USD(1300.46)) {
		t.Errorf("UnmarshalJSON() = %v, want $1,300.46", m)
	}
}
