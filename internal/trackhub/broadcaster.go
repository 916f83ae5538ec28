package trackhub

import (
	"log"

	"gocart/backend/internal/models"
)

// DeliveryReport summarizes one fan-out: how many members got the event and
// which connection ids failed. Failures are per recipient; they never abort
// the publish.
type DeliveryReport struct {
	OrderID   string
	Delivered int
	Failed    []string
}

// Broadcaster fans one tracking event out to every current member of the
// target order's room. Delivery order across members is unspecified; order
// of successive events to the same member is preserved by the member's
// single outbound queue. Failed recipients are not retried; a missed event
// is superseded by the next push, not backfilled.
type Broadcaster struct {
	registry *Registry
	rooms    *RoomIndex
}

func NewBroadcaster(registry *Registry, rooms *RoomIndex) *Broadcaster {
	return &Broadcaster{registry: registry, rooms: rooms}
}

// Publish delivers the event to the room's current members. A room with no
// members (or no room at all) reports zero recipients, not an error.
func (b *Broadcaster) Publish(ev models.TrackingEvent) DeliveryReport {
	report := DeliveryReport{OrderID: ev.OrderID}

	members := b.rooms.Members(ev.OrderID)
	if len(members) == 0 {
		return report
	}

	frame := models.PushFrame(ev)
	for _, connID := range members {
		if err := b.registry.Send(connID, frame); err != nil {
			report.Failed = append(report.Failed, connID)
			continue
		}
		report.Delivered++
	}

	if len(report.Failed) > 0 {
		log.Printf("broadcast for order %s: delivered %d, failed %d", ev.OrderID, report.Delivered, len(report.Failed))
	}
	return report
}
