package orders

import "github.com/sanda94/super-admin-backend/pkg/enums"

// transition is one edge of the order state machine. The table below is the
// single source of truth for allowed moves; anything not listed is rejected.
type transition struct {
	from   enums.OrderStatus
	to     enums.OrderStatus
	action enums.AuditAction
}

var transitionTable = map[enums.OrderCommand]transition{
	enums.OrderCommandApprove: {
		from:   enums.OrderStatusNewRequest,
		to:     enums.OrderStatusConfirm,
		action: enums.AuditActionOrderConfirmed,
	},
	enums.OrderCommandReject: {
		from:   enums.OrderStatusNewRequest,
		to:     enums.OrderStatusCancel,
		action: enums.AuditActionOrderRejected,
	},
	enums.OrderCommandStartProgress: {
		from:   enums.OrderStatusConfirm,
		to:     enums.OrderStatusInProgress,
		action: enums.AuditActionOrderInProgress,
	},
	enums.OrderCommandDeliver: {
		from:   enums.OrderStatusInProgress,
		to:     enums.OrderStatusDelivered,
		action: enums.AuditActionOrderDelivered,
	},
}
