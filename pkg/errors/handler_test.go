package errors

import "testing"

func TestIncrementErrorCountsPerSource(t *testing.T) {
	h := NewErrorHandler("", nil)
	defer h.Stop()

	h.IncrementError(SourcePrivilege)
	h.IncrementError(SourcePrivilege)
	h.IncrementError(SourceResource)

	if got := h.SourceCount(SourcePrivilege); got != 2 {
		t.Errorf("SourceCount(privilege) = %d, want 2", got)
	}
	if got := h.SourceCount(SourceResource); got != 1 {
		t.Errorf("SourceCount(resource) = %d, want 1", got)
	}
	if got := h.SourceCount(SourceMigration); got != 0 {
		t.Errorf("SourceCount(migration) = %d, want 0", got)
	}
}

func TestHandlePanicCountsAgainstPanicSource(t *testing.T) {
	h := NewErrorHandler("", nil)
	defer h.Stop()

	h.HandlePanic("boom")

	if got := h.SourceCount(SourcePanic); got != 1 {
		t.Errorf("SourceCount(panic) = %d, want 1", got)
	}
}

func TestBreakdownRendersEverySource(t *testing.T) {
	h := NewErrorHandler("", nil)
	defer h.Stop()

	h.IncrementError(SourceResource)
	h.IncrementError(SourceMigration)

	fields := h.breakdown()
	if len(fields) != 2 {
		t.Fatalf("Expected 2 breakdown fields, got %d", len(fields))
	}
	seen := make(map[string]string)
	for _, field := range fields {
		seen[field.Name] = field.Value
	}
	if seen[SourceResource] != "1" || seen[SourceMigration] != "1" {
		t.Errorf("Unexpected breakdown: %v", seen)
	}
}

func TestTrackWithoutGlobalHandlerIsSafe(t *testing.T) {
	// The global handler is not initialized in tests
	Track(SourceResource)
}
