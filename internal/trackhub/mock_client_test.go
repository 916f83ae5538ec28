package trackhub_test

import (
	"gocart/backend/internal/models"
)

type MockClient struct {
	connID      string
	userID      string
	role        string
	closed      int
	RecvChannel chan models.ServerFrame
}

func newMockClient(userID, role string) *MockClient {
	return &MockClient{
		userID:      userID,
		role:        role,
		RecvChannel: make(chan models.ServerFrame, 10),
	}
}

// newSlowMockClient has room for a single frame; the second send to it fails.
func newSlowMockClient(userID, role string) *MockClient {
	return &MockClient{
		userID:      userID,
		role:        role,
		RecvChannel: make(chan models.ServerFrame, 1),
	}
}

func (c *MockClient) GetConnID() string {
	return c.connID
}

func (c *MockClient) SetConnID(id string) {
	c.connID = id
}

func (c *MockClient) GetUserID() string {
	return c.userID
}

func (c *MockClient) GetRole() string {
	return c.role
}

func (c *MockClient) GetSendChannel() chan<- models.ServerFrame {
	return c.RecvChannel
}

func (c *MockClient) Run() {
	// Not needed for testing
}

func (c *MockClient) Close() {
	c.closed++
}
