package enums

import "fmt"

// OrderCommand names a transition an actor can request against an order.
type OrderCommand string

const (
	OrderCommandApprove       OrderCommand = "approve"
	OrderCommandReject        OrderCommand = "reject"
	OrderCommandStartProgress OrderCommand = "start_progress"
	OrderCommandDeliver       OrderCommand = "deliver"
)

var validOrderCommands = []OrderCommand{
	OrderCommandApprove,
	OrderCommandReject,
	OrderCommandStartProgress,
	OrderCommandDeliver,
}

// String implements fmt.Stringer.
func (o OrderCommand) String() string {
	return string(o)
}

// IsValid reports whether the value is a known OrderCommand.
func (o OrderCommand) IsValid() bool {
	for _, candidate := range validOrderCommands {
		if candidate == o {
			return true
		}
	}
	return false
}

// ParseOrderCommand converts raw input into an OrderCommand.
func ParseOrderCommand(value string) (OrderCommand, error) {
	for _, candidate := range validOrderCommands {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order command %q", value)
}
