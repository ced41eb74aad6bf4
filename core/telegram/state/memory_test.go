package state

import "testing"

func TestMemoryManagerStateLifecycle(t *testing.T) {
	mgr := NewMemoryManager()
	const user int64 = 42

	if mgr.HasState(user) {
		t.Fatalf("fresh manager reported active state")
	}
	if got := mgr.GetState(user); got != StateIdle {
		t.Fatalf("fresh state = %q, want %q", got, StateIdle)
	}

	mgr.SetState(user, State("awaiting_comment"))
	if !mgr.HasState(user) {
		t.Fatalf("state not active after SetState")
	}
	if !mgr.InProgress(user) {
		t.Fatalf("InProgress = false with active state")
	}
	if got := mgr.GetState(user); got != State("awaiting_comment") {
		t.Fatalf("state = %q, want awaiting_comment", got)
	}

	mgr.ClearState(user)
	if mgr.HasState(user) {
		t.Fatalf("state still active after ClearState")
	}
}

func TestMemoryManagerTempData(t *testing.T) {
	mgr := NewMemoryManager()
	const user int64 = 7

	if _, ok := mgr.GetTemp(user, "confession_id"); ok {
		t.Fatalf("GetTemp returned value for empty session")
	}

	mgr.SetTemp(user, "confession_id", int64(15))
	got, ok := mgr.GetTempInt64(user, "confession_id")
	if !ok || got != 15 {
		t.Fatalf("GetTempInt64 = (%d, %v), want (15, true)", got, ok)
	}

	// Wrong-type values must not be reported as int64.
	mgr.SetTemp(user, "note", "text")
	if _, ok := mgr.GetTempInt64(user, "note"); ok {
		t.Fatalf("GetTempInt64 accepted a string value")
	}

	mgr.ClearTemp(user, "confession_id")
	if _, ok := mgr.GetTemp(user, "confession_id"); ok {
		t.Fatalf("temp value survived ClearTemp")
	}
}

func TestMemoryManagerClearRemovesSession(t *testing.T) {
	mgr := NewMemoryManager()
	const user int64 = 9

	mgr.SetState(user, State("awaiting_comment"))
	mgr.SetTemp(user, "confession_id", int64(3))
	mgr.Clear(user)

	if mgr.HasState(user) {
		t.Fatalf("state survived Clear")
	}
	if _, ok := mgr.GetTemp(user, "confession_id"); ok {
		t.Fatalf("temp data survived Clear")
	}
}

func TestMemoryManagerUsersIndependent(t *testing.T) {
	mgr := NewMemoryManager()

	mgr.SetState(1, State("awaiting_comment"))
	if mgr.HasState(2) {
		t.Fatalf("state leaked between users")
	}
}
