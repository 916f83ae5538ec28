package trackhub

import (
	"encoding/json"
	"log"

	"gocart/backend/internal/models"
)

// StartEventListener starts a goroutine that subscribes to the Redis Pub/Sub
// events channel and feeds every tracking event into the hub's broadcast
// flow. Producers publish through storage.PublishEvent (any instance, any
// language); each hub instance fans out only to its own local rooms.
func (h *Hub) StartEventListener() {
	go func() {
		pubsub := h.Storage.SubscribeEvents()
		defer pubsub.Close()

		ch := pubsub.Channel()

		for msg := range ch {
			var ev models.TrackingEvent
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				log.Printf("Error unmarshalling tracking event from Redis: %v", err)
				continue
			}
			if ev.OrderID == "" {
				log.Printf("Dropping tracking event with empty order id")
				continue
			}

			select {
			case h.EventCh <- ev:
			case <-h.done:
				return
			}
		}
	}()
}
