package realtime

import (
	"encoding/json"
	"log"

	"github.com/google/uuid"
)

// Event describes a change to a stored item.
type Event struct {
	Type    string `json:"type"`
	Kind    string `json:"kind"`
	ID      int    `json:"id"`
	EventID string `json:"eventId"`
	Version int    `json:"version"`
}

// Publish broadcasts a change event on topic. A nil hub is a no-op.
func (h *Hub) Publish(topic, eventType, kind string, id int) {
	if h == nil {
		return
	}
	evt := Event{
		Type:    eventType,
		Kind:    kind,
		ID:      id,
		EventID: uuid.NewString(),
		Version: 1,
	}
	bytes, err := json.Marshal(evt)
	if err != nil {
		log.Println("realtime: marshal event:", err)
		return
	}
	h.Broadcast(topic, bytes)
}
