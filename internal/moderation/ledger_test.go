package moderation

import (
	"fmt"
	"sync"
	"testing"
)

func TestAddWarningIncrementsCount(t *testing.T) {
	ledger := NewWarningLedger()

	if count := ledger.AddWarning("user1", "Mod#1", "spam"); count != 1 {
		t.Errorf("Expected count 1, got %d", count)
	}
	if count := ledger.AddWarning("user1", "Mod#1", "spam again"); count != 2 {
		t.Errorf("Expected count 2, got %d", count)
	}
	if count := ledger.AddWarning("user2", "Mod#2", "flooding"); count != 1 {
		t.Errorf("Expected independent count 1 for second user, got %d", count)
	}
}

func TestListWarningsPreservesOrder(t *testing.T) {
	ledger := NewWarningLedger()
	ledger.AddWarning("user1", "Mod#1", "first")
	ledger.AddWarning("user1", "Mod#2", "second")
	ledger.AddWarning("user1", "Mod#1", "third")

	records := ledger.ListWarnings("user1")
	if len(records) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(records))
	}

	reasons := []string{"first", "second", "third"}
	for i, want := range reasons {
		if records[i].Reason != want {
			t.Errorf("Record %d: expected reason %q, got %q", i, want, records[i].Reason)
		}
	}
}

func TestListWarningsReturnsCopy(t *testing.T) {
	ledger := NewWarningLedger()
	ledger.AddWarning("user1", "Mod#1", "original")

	records := ledger.ListWarnings("user1")
	records[0].Reason = "tampered"

	fresh := ledger.ListWarnings("user1")
	if fresh[0].Reason != "original" {
		t.Error("Mutating the returned slice should not affect the ledger")
	}
}

func TestListWarningsUnknownUser(t *testing.T) {
	ledger := NewWarningLedger()
	if records := ledger.ListWarnings("ghost"); len(records) != 0 {
		t.Errorf("Expected no records for unknown user, got %d", len(records))
	}
}

func TestClearWarnings(t *testing.T) {
	ledger := NewWarningLedger()
	ledger.AddWarning("user1", "Mod#1", "spam")
	ledger.AddWarning("user1", "Mod#1", "spam")

	if !ledger.ClearWarnings("user1") {
		t.Error("Expected ClearWarnings to report an existing record set")
	}
	if count := ledger.CountWarnings("user1"); count != 0 {
		t.Errorf("Expected 0 warnings after clear, got %d", count)
	}
	if ledger.ClearWarnings("user1") {
		t.Error("Expected ClearWarnings to report false for an empty user")
	}
}

func TestLedgerConcurrentAppends(t *testing.T) {
	ledger := NewWarningLedger()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			ledger.AddWarning("user1", "Mod#1", fmt.Sprintf("reason %d", n))
		}(i)
	}
	wg.Wait()

	if count := ledger.CountWarnings("user1"); count != 50 {
		t.Errorf("Expected 50 warnings, got %d", count)
	}
}
