package handler

import (
	"gocart/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) SaveOrder(order *models.Order) error {
	args := m.Called(order)
	return args.Error(0)
}

func (m *mockStore) GetOrderByID(orderID string) (*models.Order, error) {
	args := m.Called(orderID)
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *mockStore) AssignAgent(orderID, agentID string) error {
	args := m.Called(orderID, agentID)
	return args.Error(0)
}

func (m *mockStore) CloseOrder(orderID string) error {
	args := m.Called(orderID)
	return args.Error(0)
}

func (m *mockStore) GetActiveOrderIDs() ([]string, error) {
	args := m.Called()
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockStore) CanViewOrder(userID, role, orderID string) (bool, error) {
	args := m.Called(userID, role, orderID)
	return args.Bool(0), args.Error(1)
}

func (m *mockStore) SaveDeliveryLog(entry *models.DeliveryLogEntry) error {
	args := m.Called(entry)
	return args.Error(0)
}

func (m *mockStore) PublishEvent(ev models.TrackingEvent) error {
	args := m.Called(ev)
	return args.Error(0)
}

func (m *mockStore) SubscribeEvents() *redis.PubSub {
	args := m.Called()
	return args.Get(0).(*redis.PubSub)
}

func (m *mockStore) AddActiveConnection(connID string) error {
	args := m.Called(connID)
	return args.Error(0)
}

func (m *mockStore) RemoveActiveConnection(connID string) error {
	args := m.Called(connID)
	return args.Error(0)
}

func (m *mockStore) GetActiveConnectionIDs() ([]string, error) {
	args := m.Called()
	return args.Get(0).([]string), args.Error(1)
}
