package notify

import (
	"fmt"
	"strings"

	cycledomain "github.com/Ed-Isingoma/hostelmgrserv/internal/billingcycle/domain"
	"time"
)

// Receipt is everything the message template needs, resolved from the
// payment the outbox event points at.
type Receipt struct {
	TenantName string
	Contact    string
	Amount     int64
	Remaining  int64
	CycleName  string
	OwnEndDate *time.Time
	SenderID   string
}

// Render produces the receipt text sent to the tenant. Rolling
// contracts name their paid-up date instead of the cycle.
func (r Receipt) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s, we have received your payment of %s.", r.TenantName, FormatAmount(r.Amount))
	if r.Remaining > 0 {
		fmt.Fprintf(&b, " Your remaining balance is %s.", FormatAmount(r.Remaining))
	} else {
		b.WriteString(" You are fully paid up.")
	}
	if r.OwnEndDate != nil {
		fmt.Fprintf(&b, " Your stay runs until %s.", r.OwnEndDate.Format(cycledomain.DateFormat))
	} else if r.CycleName != "" {
		fmt.Fprintf(&b, " This payment is for %s.", r.CycleName)
	}
	fmt.Fprintf(&b, " Thank you, %s.", r.SenderID)
	return b.String()
}

// FormatAmount renders a money value with thousands separators, the
// way amounts appear on printed receipts.
func FormatAmount(v int64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := fmt.Sprintf("%d", v)
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := strings.Join(parts, ",")
	if neg {
		out = "-" + out
	}
	return out
}

// ValidContact reports whether a stored contact looks like a phone
// number we can hand to the gateway.
func ValidContact(contact string) bool {
	trimmed := strings.TrimSpace(contact)
	if len(trimmed) < 9 {
		return false
	}
	for i, r := range trimmed {
		if r == '+' && i == 0 {
			continue
		}
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
