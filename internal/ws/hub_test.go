package ws

import (
	"encoding/json"
	"io"
	"log"
	"testing"
	"time"
)

func newTestHub() *Hub {
	h := NewHub(log.New(io.Discard, "", 0))
	go h.Run()
	return h
}

func waitForClients(t *testing.T, h *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if h.ClientCount() == want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("client count: want %d, got %d", want, h.ClientCount())
}

func TestHub_BroadcastReachesClients(t *testing.T) {
	h := newTestHub()

	c := &Client{hub: h, send: make(chan []byte, 1)}
	h.Register(c)
	waitForClients(t, h, 1)

	h.Broadcast([]byte("hello"))

	select {
	case msg := <-c.send:
		if string(msg) != "hello" {
			t.Fatalf("got %q", msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no message delivered")
	}

	h.Unregister(c)
	waitForClients(t, h, 0)

	if _, open := <-c.send; open {
		t.Fatalf("send channel still open after unregister")
	}
}

func TestNotifySyncCompleted(t *testing.T) {
	h := newTestHub()

	c := &Client{hub: h, send: make(chan []byte, 1)}
	h.Register(c)
	waitForClients(t, h, 1)

	NotifySyncCompleted(h, 3, 2, 1)

	select {
	case msg := <-c.send:
		var evt SyncCompletedEvent
		if err := json.Unmarshal(msg, &evt); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if evt.Type != "sync_completed" {
			t.Fatalf("type: got %q", evt.Type)
		}
		if evt.Created != 3 || evt.Updated != 2 || evt.Deactivated != 1 {
			t.Fatalf("counts: got %+v", evt)
		}
		if evt.Timestamp == "" {
			t.Fatalf("missing timestamp")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no event delivered")
	}

	// Nil hub is a no-op.
	NotifySyncCompleted(nil, 1, 1, 1)
}
