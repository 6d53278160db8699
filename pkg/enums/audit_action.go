package enums

import "fmt"

// AuditAction is the human-readable action recorded in the audit trail.
type AuditAction string

const (
	AuditActionOrderConfirmed  AuditAction = "Order Confirmed"
	AuditActionOrderRejected   AuditAction = "Order Rejected"
	AuditActionOrderInProgress AuditAction = "Order In Progress"
	AuditActionOrderDelivered  AuditAction = "Order Delivered"
	AuditActionOrderUpdated    AuditAction = "Order Updated"
	AuditActionOrderDeleted    AuditAction = "Order Deleted"
)

var validAuditActions = []AuditAction{
	AuditActionOrderConfirmed,
	AuditActionOrderRejected,
	AuditActionOrderInProgress,
	AuditActionOrderDelivered,
	AuditActionOrderUpdated,
	AuditActionOrderDeleted,
}

// AuditCategory groups audit entries by the record kind they reference.
type AuditCategory string

const (
	AuditCategoryOrder AuditCategory = "Order"
)

// String implements fmt.Stringer.
func (a AuditAction) String() string {
	return string(a)
}

// IsValid reports whether the value is a known AuditAction.
func (a AuditAction) IsValid() bool {
	for _, candidate := range validAuditActions {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseAuditAction converts raw input into an AuditAction.
func ParseAuditAction(value string) (AuditAction, error) {
	for _, candidate := range validAuditActions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid audit action %q", value)
}
