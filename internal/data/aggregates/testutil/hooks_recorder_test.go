package testutil

import (
	"testing"
	"time"
)

func TestHooksRecorder_CapturesSignals(t *testing.T) {
	h := &HooksRecorder{}
	h.ObserveOperation("Billing.Account.Pay", "success", 10*time.Millisecond)
	h.IncConflict("Billing.Account.Pay")
	h.IncRetry("Billing.Account.Pay")

	if len(h.Operations) != 1 {
		t.Fatalf("expected 1 op event, got %d", len(h.Operations))
	}
	if h.Operations[0].Name != "Billing.Account.Pay" || h.Operations[0].Status != "success" {
		t.Fatalf("unexpected op event: %+v", h.Operations[0])
	}
	if len(h.Conflicts) != 1 || h.Conflicts[0] != "Billing.Account.Pay" {
		t.Fatalf("unexpected conflicts: %+v", h.Conflicts)
	}
	if len(h.Retries) != 1 || h.Retries[0] != "Billing.Account.Pay" {
		t.Fatalf("unexpected retries: %+v", h.Retries)
	}
}
