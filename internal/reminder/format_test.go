package reminder

import (
	"testing"
	"time"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{600, "600"},
		{1000, "1,000"},
		{1234.5, "1,234.5"},
		{1234567.89, "1,234,567.89"},
		{0, "0"},
	}

	for _, tt := range tests {
		if got := formatAmount(tt.in); got != tt.want {
			t.Errorf("formatAmount(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatMoney(t *testing.T) {
	if got := formatMoney("KSh", 600); got != "KSh 600" {
		t.Errorf("formatMoney = %q, want %q", got, "KSh 600")
	}
	if got := formatMoney("", 600); got != "600" {
		t.Errorf("formatMoney with empty symbol = %q, want %q", got, "600")
	}
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)
	if got := formatDate(d); got != "10 Jan 2024" {
		t.Errorf("formatDate = %q, want %q", got, "10 Jan 2024")
	}
	if got := formatDate(time.Time{}); got != "" {
		t.Errorf("formatDate(zero) = %q, want empty", got)
	}
}
