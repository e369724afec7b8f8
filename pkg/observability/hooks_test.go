package observability

import "testing"

func TestNoopHooksDoNotPanic(t *testing.T) {
	h := NoopNavigationHooks{}
	h.OnPresented("settings", "sheet", 1)
	h.OnDismissed(2, 1, false)
	h.OnQueued("profile", 3)
	h.OnQueueCapacityExceeded("profile", 10)
	h.OnRetryScheduled(1, 5)
	h.OnRetryExhausted(5)
	h.OnAmbiguousMatch("settings", 2)
	h.OnNoOp(ReasonEmptyStack)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	if _, ok := Navigation().(NoopNavigationHooks); !ok {
		t.Error("Navigation() should return NoopNavigationHooks by default")
	}

	custom := &testNavigationHooks{}
	SetNavigationHooks(custom)
	if Navigation() != custom {
		t.Error("SetNavigationHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Navigation().(NoopNavigationHooks); !ok {
		t.Error("Reset() should restore NoopNavigationHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testNavigationHooks{}
	SetNavigationHooks(custom)

	// Setting nil should be ignored
	SetNavigationHooks(nil)

	if Navigation() != custom {
		t.Error("SetNavigationHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementation
type testNavigationHooks struct{ NoopNavigationHooks }
