package notify

import (
	"strings"
	"testing"
	"time"
)

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{950, "950"},
		{1300, "1,300"},
		{650000, "650,000"},
		{1300000, "1,300,000"},
		{-45000, "-45,000"},
	}
	for _, tc := range cases {
		if got := FormatAmount(tc.in); got != tc.want {
			t.Errorf("FormatAmount(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestRenderWithBalanceForCycle(t *testing.T) {
	r := Receipt{
		TenantName: "Alice Okello",
		Amount:     400000,
		Remaining:  250000,
		CycleName:  "Semester 1 2024/2025",
		SenderID:   "Hilltop Hostel",
	}
	msg := r.Render()

	for _, want := range []string{
		"Dear Alice Okello",
		"payment of 400,000",
		"remaining balance is 250,000",
		"This payment is for Semester 1 2024/2025",
		"Thank you, Hilltop Hostel.",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q missing %q", msg, want)
		}
	}
}

func TestRenderFullyPaidRollingContract(t *testing.T) {
	end := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)
	r := Receipt{
		TenantName: "Brian",
		Amount:     650000,
		Remaining:  0,
		CycleName:  "Recess 2024/2025",
		OwnEndDate: &end,
		SenderID:   "Hilltop Hostel",
	}
	msg := r.Render()

	if !strings.Contains(msg, "You are fully paid up.") {
		t.Errorf("message %q missing paid-up line", msg)
	}
	if !strings.Contains(msg, "Your stay runs until 2025-03-15.") {
		t.Errorf("message %q missing stay-until line", msg)
	}
	if strings.Contains(msg, "Recess 2024/2025") {
		t.Errorf("rolling contract message %q should not name the cycle", msg)
	}
}

func TestRenderOverpaymentReadsFullyPaid(t *testing.T) {
	r := Receipt{TenantName: "Cara", Amount: 900000, Remaining: -100000, SenderID: "Hilltop"}
	if msg := r.Render(); !strings.Contains(msg, "You are fully paid up.") {
		t.Errorf("message %q missing paid-up line for overpayment", msg)
	}
}

func TestValidContact(t *testing.T) {
	cases := []struct {
		contact string
		want    bool
	}{
		{"0772123456", true},
		{"+256772123456", true},
		{" 0772123456 ", true},
		{"12345678", false},
		{"", false},
		{"call me later", false},
		{"0772-123-456", false},
		{"07721+3456", false},
	}
	for _, tc := range cases {
		if got := ValidContact(tc.contact); got != tc.want {
			t.Errorf("ValidContact(%q) = %v, want %v", tc.contact, got, tc.want)
		}
	}
}
