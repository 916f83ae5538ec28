package handler

import (
	"gocart/backend/internal/config"
	"gocart/backend/internal/storage"
	"gocart/backend/internal/trackhub"
)

// Handler holds the dependencies shared by the HTTP endpoints.
type Handler struct {
	Hub       *trackhub.Hub
	Store     storage.Storage
	Cfg       config.Realtime
	JWTSecret []byte
}

func NewHandler(hub *trackhub.Hub, store storage.Storage, cfg config.Realtime, jwtSecret []byte) *Handler {
	return &Handler{Hub: hub, Store: store, Cfg: cfg, JWTSecret: jwtSecret}
}
