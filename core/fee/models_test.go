package fee

import (
	"regexp"
	"testing"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name         string
		amount, paid float64
		want         Status
	}{
		{name: "nothing paid", amount: 5000, paid: 0, want: Unpaid},
		{name: "partial", amount: 5000, paid: 2500, want: Partial},
		{name: "almost", amount: 5000, paid: 4999.99, want: Partial},
		{name: "exact", amount: 5000, paid: 5000, want: Paid},
		{name: "overpaid", amount: 5000, paid: 6000, want: Paid},
		{name: "free fee", amount: 0, paid: 0, want: Paid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusOf(tt.amount, tt.paid); got != tt.want {
				t.Errorf("StatusOf(%v, %v) = %s; want %s", tt.amount, tt.paid, got, tt.want)
			}
		})
	}
}

func TestNewReceiptNo(t *testing.T) {
	re := regexp.MustCompile(`^R-[0-9A-F]{8}$`)
	a, b := NewReceiptNo(), NewReceiptNo()
	if !re.MatchString(a) {
		t.Errorf("NewReceiptNo() = %s; want match %v", a, re)
	}
	if a == b {
		t.Errorf("NewReceiptNo() returned %s twice", a)
	}
}
