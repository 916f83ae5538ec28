package trackhub_test

import (
	"gocart/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) SaveOrder(order *models.Order) error {
	args := m.Called(order)
	return args.Error(0)
}

func (m *MockStorage) GetOrderByID(orderID string) (*models.Order, error) {
	args := m.Called(orderID)
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockStorage) AssignAgent(orderID, agentID string) error {
	args := m.Called(orderID, agentID)
	return args.Error(0)
}

func (m *MockStorage) CloseOrder(orderID string) error {
	args := m.Called(orderID)
	return args.Error(0)
}

func (m *MockStorage) GetActiveOrderIDs() ([]string, error) {
	args := m.Called()
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockStorage) CanViewOrder(userID, role, orderID string) (bool, error) {
	args := m.Called(userID, role, orderID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorage) SaveDeliveryLog(entry *models.DeliveryLogEntry) error {
	args := m.Called(entry)
	return args.Error(0)
}

func (m *MockStorage) PublishEvent(ev models.TrackingEvent) error {
	args := m.Called(ev)
	return args.Error(0)
}

func (m *MockStorage) SubscribeEvents() *redis.PubSub {
	args := m.Called()
	return args.Get(0).(*redis.PubSub)
}

func (m *MockStorage) AddActiveConnection(connID string) error {
	args := m.Called(connID)
	return args.Error(0)
}

func (m *MockStorage) RemoveActiveConnection(connID string) error {
	args := m.Called(connID)
	return args.Error(0)
}

func (m *MockStorage) GetActiveConnectionIDs() ([]string, error) {
	args := m.Called()
	return args.Get(0).([]string), args.Error(1)
}
