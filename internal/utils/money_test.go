package utils

import (
	"testing"

	"marketplace/internal/domain"
)

func TestFormatINRGrouping(t *testing.T) {
	cases := []struct {
		in   domain.Money
		want string
	}{
		{0, "₹0"},
		{999, "₹999"},
		{1000, "₹1,000"},
		{100000, "₹1,00,000"},
		{1234567, "₹12,34,567"},
		{-5000, "-₹5,000"},
	}
	for _, c := range cases {
		if got := FormatINR(c.in); got != c.want {
			t.Fatalf("FormatINR(%d) = %s, want %s", c.in, got, c.want)
		}
	}
}

func TestParseINRRoundTrip(t *testing.T) {
	for _, v := range []domain.Money{0, 999, 1000, 100000, 1234567} {
		parsed, err := ParseINR(FormatINR(v))
		if err != nil {
			t.Fatalf("parse %d: %v", v, err)
		}
		if parsed != v {
			t.Fatalf("round trip %d -> %d", v, parsed)
		}
	}

	if _, err := ParseINR(""); err == nil {
		t.Fatalf("empty string should not parse")
	}
}
