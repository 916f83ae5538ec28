package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"gocart/backend/internal/models"
	"gocart/backend/internal/storage"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	storageSvc := storage.NewStorageService(db, nil) // No redis needed for admin CLI

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		fmt.Println("Commands: create <customer_id>, assign <order_id> <agent_id>, close <order_id>, active")
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "create":
		if len(os.Args) < 3 {
			log.Fatal("Usage: admin create <customer_id>")
		}
		order := &models.Order{
			CustomerID: os.Args[2],
			Status:     "placed",
			IsActive:   true,
			PlacedAt:   time.Now(),
		}
		if err := storageSvc.SaveOrder(order); err != nil {
			log.Fatalf("failed to create order: %v", err)
		}
		fmt.Printf("Created order %s for customer %s\n", order.OrderID, order.CustomerID)

	case "assign":
		if len(os.Args) < 4 {
			log.Fatal("Usage: admin assign <order_id> <agent_id>")
		}
		if err := storageSvc.AssignAgent(os.Args[2], os.Args[3]); err != nil {
			log.Fatalf("failed to assign agent: %v", err)
		}
		fmt.Printf("Assigned agent %s to order %s\n", os.Args[3], os.Args[2])

	case "close":
		if len(os.Args) < 3 {
			log.Fatal("Usage: admin close <order_id>")
		}
		if err := storageSvc.CloseOrder(os.Args[2]); err != nil {
			log.Fatalf("failed to close order: %v", err)
		}
		fmt.Printf("Closed order %s\n", os.Args[2])

	case "active":
		orderIDs, err := storageSvc.GetActiveOrderIDs()
		if err != nil {
			log.Fatalf("failed to list active orders: %v", err)
		}
		for _, id := range orderIDs {
			fmt.Println(id)
		}
		fmt.Printf("%d active orders\n", len(orderIDs))

	default:
		log.Fatalf("unknown command %q", command)
	}
}
