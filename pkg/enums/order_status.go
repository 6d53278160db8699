package enums

import "fmt"

// OrderStatus tracks the lifecycle of an order through the approval workflow.
type OrderStatus string

const (
	OrderStatusNewRequest OrderStatus = "new_request"
	OrderStatusConfirm    OrderStatus = "order_confirm"
	OrderStatusInProgress OrderStatus = "order_in_progress"
	OrderStatusDelivered  OrderStatus = "order_delivered"
	OrderStatusCancel     OrderStatus = "order_cancel"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusNewRequest,
	OrderStatusConfirm,
	OrderStatusInProgress,
	OrderStatusDelivered,
	OrderStatusCancel,
}

// String implements fmt.Stringer.
func (o OrderStatus) String() string {
	return string(o)
}

// IsValid reports whether the value is a known OrderStatus.
func (o OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == o {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further status transition is permitted.
func (o OrderStatus) IsTerminal() bool {
	return o == OrderStatusDelivered || o == OrderStatusCancel
}

// ParseOrderStatus converts raw input into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}
