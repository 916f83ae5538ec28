package trackhub_test

import (
	"encoding/json"
	"testing"

	"gocart/backend/internal/models"
	"gocart/backend/internal/trackhub"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statusEvent(orderID, status string) models.TrackingEvent {
	payload, _ := json.Marshal(map[string]string{"status": status})
	return models.TrackingEvent{
		OrderID: orderID,
		Kind:    models.EventStatusChanged,
		Payload: payload,
	}
}

func TestBroadcaster_FanOutToAllMembers(t *testing.T) {
	reg := trackhub.NewRegistry(0)
	rooms := trackhub.NewRoomIndex()
	b := trackhub.NewBroadcaster(reg, rooms)

	clientA := newMockClient("user-A", models.RoleCustomer)
	clientB := newMockClient("user-B", models.RoleAgent)
	idA, _ := reg.Register(clientA)
	idB, _ := reg.Register(clientB)
	rooms.Join("order-1", idA)
	rooms.Join("order-1", idB)

	report := b.Publish(statusEvent("order-1", "picked_up"))

	assert.Equal(t, 2, report.Delivered)
	assert.Empty(t, report.Failed)

	frameA := <-clientA.RecvChannel
	frameB := <-clientB.RecvChannel
	assert.Equal(t, "order-1", frameA.OrderID)
	assert.Equal(t, models.EventStatusChanged, frameB.Kind)
}

func TestBroadcaster_DisconnectedMemberIsDropped(t *testing.T) {
	reg := trackhub.NewRegistry(0)
	rooms := trackhub.NewRoomIndex()
	b := trackhub.NewBroadcaster(reg, rooms)

	clientA := newMockClient("user-A", models.RoleCustomer)
	clientB := newMockClient("user-B", models.RoleAgent)
	idA, _ := reg.Register(clientA)
	idB, _ := reg.Register(clientB)
	rooms.Join("order-1", idA)
	rooms.Join("order-1", idB)

	report := b.Publish(statusEvent("order-1", "picked_up"))
	require.Equal(t, 2, report.Delivered)

	// A disconnects: membership goes first, then the registry entry.
	rooms.LeaveAll(idA)
	reg.Unregister(idA)

	report = b.Publish(statusEvent("order-1", "delivered"))
	assert.Equal(t, 1, report.Delivered)
	assert.Empty(t, report.Failed)

	assert.Len(t, clientB.RecvChannel, 2)
	assert.Len(t, clientA.RecvChannel, 1)
}

func TestBroadcaster_NoCrossRoomLeakage(t *testing.T) {
	reg := trackhub.NewRegistry(0)
	rooms := trackhub.NewRoomIndex()
	b := trackhub.NewBroadcaster(reg, rooms)

	clientA := newMockClient("user-A", models.RoleCustomer)
	clientB := newMockClient("user-B", models.RoleCustomer)
	idA, _ := reg.Register(clientA)
	idB, _ := reg.Register(clientB)
	rooms.Join("order-1", idA)
	rooms.Join("order-2", idB)

	report := b.Publish(statusEvent("order-1", "picked_up"))

	assert.Equal(t, 1, report.Delivered)
	assert.Len(t, clientA.RecvChannel, 1)
	assert.Len(t, clientB.RecvChannel, 0)
}

func TestBroadcaster_EmptyRoomReportsZeroRecipients(t *testing.T) {
	reg := trackhub.NewRegistry(0)
	rooms := trackhub.NewRoomIndex()
	b := trackhub.NewBroadcaster(reg, rooms)

	report := b.Publish(statusEvent("order-5", "picked_up"))

	assert.Equal(t, 0, report.Delivered)
	assert.Empty(t, report.Failed)
}

func TestBroadcaster_PerConnectionOrderPreserved(t *testing.T) {
	reg := trackhub.NewRegistry(0)
	rooms := trackhub.NewRoomIndex()
	b := trackhub.NewBroadcaster(reg, rooms)

	clientA := newMockClient("user-A", models.RoleCustomer)
	idA, _ := reg.Register(clientA)
	rooms.Join("order-1", idA)

	b.Publish(statusEvent("order-1", "picked_up"))
	b.Publish(statusEvent("order-1", "delivered"))

	first := <-clientA.RecvChannel
	second := <-clientA.RecvChannel

	var p1, p2 map[string]string
	require.NoError(t, json.Unmarshal(first.Payload, &p1))
	require.NoError(t, json.Unmarshal(second.Payload, &p2))
	assert.Equal(t, "picked_up", p1["status"])
	assert.Equal(t, "delivered", p2["status"])
}

func TestBroadcaster_SlowMemberFailsWithoutAbortingPublish(t *testing.T) {
	reg := trackhub.NewRegistry(0)
	rooms := trackhub.NewRoomIndex()
	b := trackhub.NewBroadcaster(reg, rooms)

	slow := newSlowMockClient("user-A", models.RoleCustomer)
	healthy := newMockClient("user-B", models.RoleAgent)
	idSlow, _ := reg.Register(slow)
	idHealthy, _ := reg.Register(healthy)
	rooms.Join("order-1", idSlow)
	rooms.Join("order-1", idHealthy)

	// Saturate the slow member's buffer.
	b.Publish(statusEvent("order-1", "picked_up"))

	report := b.Publish(statusEvent("order-1", "delivered"))

	assert.Equal(t, 1, report.Delivered)
	assert.Equal(t, []string{idSlow}, report.Failed)
	assert.Len(t, healthy.RecvChannel, 2)
}
