package enums

import "testing"

func TestOrderStatusTerminal(t *testing.T) {
	tests := []struct {
		status   OrderStatus
		terminal bool
	}{
		{OrderStatusNewRequest, false},
		{OrderStatusConfirm, false},
		{OrderStatusInProgress, false},
		{OrderStatusDelivered, true},
		{OrderStatusCancel, true},
	}
	for _, tt := range tests {
		if tt.status.IsTerminal() != tt.terminal {
			t.Fatalf("%s: expected terminal=%v", tt.status, tt.terminal)
		}
		if !tt.status.IsValid() {
			t.Fatalf("%s should be valid", tt.status)
		}
	}
}

func TestParseOrderStatus(t *testing.T) {
	status, err := ParseOrderStatus("order_confirm")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if status != OrderStatusConfirm {
		t.Fatalf("unexpected status %s", status)
	}
	if _, err := ParseOrderStatus("shipped"); err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestParseOrderCommand(t *testing.T) {
	command, err := ParseOrderCommand("start_progress")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if command != OrderCommandStartProgress {
		t.Fatalf("unexpected command %s", command)
	}
	if _, err := ParseOrderCommand("undo"); err == nil {
		t.Fatal("expected error for unknown command")
	}
}

func TestMemberRoleElevation(t *testing.T) {
	if !MemberRoleAdmin.IsElevated() {
		t.Fatal("admin must be elevated")
	}
	if MemberRoleManager.IsElevated() || MemberRoleCustomer.IsElevated() {
		t.Fatal("only admin is elevated")
	}
}
