package enums

import "fmt"

// ApprovalFlag mirrors the external approval marker customers set on an order.
// It gates deletion, not workflow transitions.
type ApprovalFlag string

const (
	ApprovalFlagYes ApprovalFlag = "yes"
	ApprovalFlagNo  ApprovalFlag = "no"
)

var validApprovalFlags = []ApprovalFlag{
	ApprovalFlagYes,
	ApprovalFlagNo,
}

// String implements fmt.Stringer.
func (a ApprovalFlag) String() string {
	return string(a)
}

// IsValid reports whether the value is a known ApprovalFlag.
func (a ApprovalFlag) IsValid() bool {
	for _, candidate := range validApprovalFlags {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseApprovalFlag converts raw input into an ApprovalFlag.
func ParseApprovalFlag(value string) (ApprovalFlag, error) {
	for _, candidate := range validApprovalFlags {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid approval flag %q", value)
}
