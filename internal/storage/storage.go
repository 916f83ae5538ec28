package storage

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"gocart/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// EventsChannel is the Redis Pub/Sub channel carrying tracking events from
// upstream producers to every hub instance.
const EventsChannel = "orders:events"

// presenceKey is the Redis set holding the ids of live connections on all
// instances.
const presenceKey = "presence:connections"

type Storage interface {
	SaveOrder(order *models.Order) error
	GetOrderByID(orderID string) (*models.Order, error)
	AssignAgent(orderID, agentID string) error
	CloseOrder(orderID string) error
	GetActiveOrderIDs() ([]string, error)

	CanViewOrder(userID, role, orderID string) (bool, error)

	SaveDeliveryLog(entry *models.DeliveryLogEntry) error
	PublishEvent(ev models.TrackingEvent) error
	SubscribeEvents() *redis.PubSub

	AddActiveConnection(connID string) error
	RemoveActiveConnection(connID string) error
	GetActiveConnectionIDs() ([]string, error)
}

type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewStorageService Constructor
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

// SaveOrder persists an order record in PostgreSQL.
func (s *Service) SaveOrder(order *models.Order) error {
	return s.DB.Save(order).Error
}

// GetOrderByID loads one order record.
func (s *Service) GetOrderByID(orderID string) (*models.Order, error) {
	var order models.Order

	err := s.DB.Where("order_id = ?", orderID).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		log.Printf("ERROR: Failed to get order %s: %v", orderID, err)
		return nil, err
	}
	return &order, nil
}

// AssignAgent sets the delivery agent on an order.
func (s *Service) AssignAgent(orderID, agentID string) error {
	return s.DB.Model(&models.Order{}).
		Where("order_id = ?", orderID).
		Update("agent_id", agentID).Error
}

// CloseOrder marks an order delivered/cancelled, setting IsActive = false.
func (s *Service) CloseOrder(orderID string) error {
	return s.DB.Model(&models.Order{}).
		Where("order_id = ?", orderID).
		Updates(map[string]interface{}{
			"is_active": false,
			"closed_at": gorm.Expr("NOW()"),
		}).Error
}

// GetActiveOrderIDs returns every order id still in flight.
func (s *Service) GetActiveOrderIDs() ([]string, error) {
	var orderIDs []string

	if err := s.DB.Model(&models.Order{}).
		Where("is_active = ?", true).
		Pluck("order_id", &orderIDs).Error; err != nil {

		log.Printf("ERROR: Failed to retrieve active order IDs: %v", err)
		return nil, err
	}
	return orderIDs, nil
}

// CanViewOrder is the authorization policy behind join requests: the ordering
// customer and the assigned agent may watch a room. An order id with no
// record passes for any role: the id namespace is opaque to this service and
// existence is not this check's concern.
func (s *Service) CanViewOrder(userID, role, orderID string) (bool, error) {
	order, err := s.GetOrderByID(orderID)
	if err != nil {
		return false, err
	}
	if order == nil {
		return true, nil
	}

	switch role {
	case models.RoleCustomer:
		return order.CustomerID == userID, nil
	case models.RoleAgent:
		return order.AgentID == userID, nil
	default:
		return false, nil
	}
}

// SaveDeliveryLog writes the audit row for a submitted tracking event.
func (s *Service) SaveDeliveryLog(entry *models.DeliveryLogEntry) error {
	if err := s.DB.Create(entry).Error; err != nil {
		log.Printf("ERROR: Failed to save delivery log for order %s: %v", entry.OrderID, err)
		return err
	}
	return nil
}

// PublishEvent puts a tracking event on the Redis Pub/Sub channel so every
// hub instance can fan it out to its local rooms.
func (s *Service) PublishEvent(ev models.TrackingEvent) error {
	evBytes, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	if err := s.Redis.Publish(s.Ctx, EventsChannel, string(evBytes)).Err(); err != nil {
		return err
	}

	return nil
}

func (s *Service) SubscribeEvents() *redis.PubSub {
	return s.Redis.Subscribe(s.Ctx, EventsChannel)
}

// AddActiveConnection records a live connection in the Redis presence set.
func (s *Service) AddActiveConnection(connID string) error {
	return s.Redis.SAdd(s.Ctx, presenceKey, connID).Err()
}

// RemoveActiveConnection drops a connection from the Redis presence set.
func (s *Service) RemoveActiveConnection(connID string) error {
	return s.Redis.SRem(s.Ctx, presenceKey, connID).Err()
}

// GetActiveConnectionIDs returns every live connection id across instances.
func (s *Service) GetActiveConnectionIDs() ([]string, error) {
	return s.Redis.SMembers(s.Ctx, presenceKey).Result()
}
