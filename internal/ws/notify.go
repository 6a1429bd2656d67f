package ws

import (
	"encoding/json"
	"time"
)

type SyncCompletedEvent struct {
	Type        string `json:"type"`
	Created     int64  `json:"created"`
	Updated     int64  `json:"updated"`
	Deactivated int64  `json:"deactivated"`
	Timestamp   string `json:"timestamp"`
}

// NotifySyncCompleted tells connected clients that a sync cycle finished
// and the job catalog may have changed.
func NotifySyncCompleted(h *Hub, created, updated, deactivated int64) {
	if h == nil {
		return
	}

	evt := SyncCompletedEvent{
		Type:        "sync_completed",
		Created:     created,
		Updated:     updated,
		Deactivated: deactivated,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	h.Broadcast(b)
}
