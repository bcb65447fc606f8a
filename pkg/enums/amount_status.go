package enums

import (
	"fmt"
	"strconv"
	"strings"
)

// AmountStatus is the coarse fill level of an inventory item, stored as its percentage.
type AmountStatus int

const (
	AmountStatusZero        AmountStatus = 0
	AmountStatusTwentyFive  AmountStatus = 25
	AmountStatusFifty       AmountStatus = 50
	AmountStatusSeventyFive AmountStatus = 75
	AmountStatusFull        AmountStatus = 100
)

var validAmountStatuses = []AmountStatus{
	AmountStatusZero,
	AmountStatusTwentyFive,
	AmountStatusFifty,
	AmountStatusSeventyFive,
	AmountStatusFull,
}

// AmountStatuses lists the allowed values in ascending order.
func AmountStatuses() []AmountStatus {
	return append([]AmountStatus(nil), validAmountStatuses...)
}

// IsValid reports whether the value is one of the five allowed percentages.
func (a AmountStatus) IsValid() bool {
	for _, candidate := range validAmountStatuses {
		if candidate == a {
			return true
		}
	}
	return false
}

// Percent returns the raw percentage value.
func (a AmountStatus) Percent() int {
	return int(a)
}

// String renders the display label, e.g. "75%".
func (a AmountStatus) String() string {
	return fmt.Sprintf("%d%%", int(a))
}

// ParseAmountStatus accepts "50", "50%" or " 50 % ".
func ParseAmountStatus(value string) (AmountStatus, error) {
	trimmed := strings.TrimSpace(value)
	trimmed = strings.TrimSpace(strings.TrimSuffix(trimmed, "%"))
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("invalid amount status %q", value)
	}
	status := AmountStatus(n)
	if !status.IsValid() {
		return 0, fmt.Errorf("invalid amount status %q", value)
	}
	return status, nil
}

// UnmarshalJSON accepts a bare number (75) or a label ("75%"). Range checks
// are left to the caller.
func (a *AmountStatus) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return nil
	}
	if unquoted, err := strconv.Unquote(raw); err == nil {
		parsed, err := ParseAmountStatus(unquoted)
		if err != nil {
			return err
		}
		*a = parsed
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("invalid amount status %s", raw)
	}
	*a = AmountStatus(n)
	return nil
}
