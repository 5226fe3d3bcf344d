package platform

import (
	"reflect"
	"testing"
)

func resetDropState() {
	dropMu.Lock()
	dropHandler = nil
	pendingDrop = nil
	dropMu.Unlock()
}

func TestDeliverDropDirect(t *testing.T) {
	resetDropState()

	var got []string
	var gotX, gotY int
	SetDropHandler(func(paths []string, x, y int) {
		got = paths
		gotX, gotY = x, y
	})

	deliverDrop([]string{"/tmp/a.txt", "/tmp/b.txt"}, 120, 48)

	if !reflect.DeepEqual(got, []string{"/tmp/a.txt", "/tmp/b.txt"}) {
		t.Errorf("handler got %v", got)
	}
	if gotX != 120 || gotY != 48 {
		t.Errorf("handler got point (%d, %d), expected (120, 48)", gotX, gotY)
	}
}

func TestDropQueuedUntilHandlerSet(t *testing.T) {
	resetDropState()

	deliverDrop([]string{"/tmp/early.txt"}, -1, -1)

	var calls [][]string
	SetDropHandler(func(paths []string, x, y int) {
		calls = append(calls, paths)
	})

	if len(calls) != 1 || calls[0][0] != "/tmp/early.txt" {
		t.Errorf("expected queued drop delivered on registration, got %v", calls)
	}

	// Queue drains once
	SetDropHandler(func(paths []string, x, y int) {
		t.Errorf("unexpected redelivery: %v", paths)
	})
}

func TestEmptyDropIgnored(t *testing.T) {
	resetDropState()

	deliverDrop(nil, 0, 0)

	SetDropHandler(func(paths []string, x, y int) {
		t.Errorf("unexpected delivery: %v", paths)
	})
}
