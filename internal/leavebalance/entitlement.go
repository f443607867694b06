package leavebalance

import (
	"strings"
	"time"
)

const annualLeave = 12

// EntitlementOnCreate is used when onboarding creates the ledger.
// It excludes the joining month: 12 - (m0 + 1).
func EntitlementOnCreate(joining time.Time) int {
	return annualLeave - (monthIndex(joining) + 1)
}

// EntitlementOnUpdate is used when the joining date is edited after creation.
// It includes the joining month: 12 - m0.
func EntitlementOnUpdate(joining time.Time) int {
	return annualLeave - monthIndex(joining)
}

func monthIndex(t time.Time) int {
	return int(t.Month()) - 1
}

// ParseMonth accepts an English month name in any case.
func ParseMonth(name string) (time.Month, bool) {
	name = strings.TrimSpace(name)
	for m := time.January; m <= time.December; m++ {
		if strings.EqualFold(m.String(), name) {
			return m, true
		}
	}
	return 0, false
}
