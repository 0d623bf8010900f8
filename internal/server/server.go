package server

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/sketchdash/sketchdash-backend/internal/game"
)

type Server struct {
	port int

	registry *game.Registry
	gateway  *game.Gateway
}

// NewServer wires the HTTP edge around an existing registry and gateway.
// The listen port comes from PORT, defaulting to 8080.
func NewServer(registry *game.Registry, gateway *game.Gateway) *http.Server {
	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err != nil || port <= 0 {
		port = 8080
	}

	srv := &Server{
		port:     port,
		registry: registry,
		gateway:  gateway,
	}

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", srv.port),
		Handler:      srv.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}
