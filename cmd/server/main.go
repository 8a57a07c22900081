package main

import (
	"log"

	_ "github.com/FullUproar/ravenloomai-sub001/docs"
	"github.com/FullUproar/ravenloomai-sub001/internal/config"
	"github.com/FullUproar/ravenloomai-sub001/internal/server"
)

// @title           RavenLoom Priority Engine API
// @version         1.0
// @description     Priority scoring, inheritance and conflict engine for RavenLoom teams.

// @contact.name   FullUproar
// @contact.url    https://github.com/FullUproar

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @schemes http
func main() {
	cfg := config.Load()

	s, err := server.Init(cfg)
	if err != nil {
		log.Fatalf("❌ Server initialization failed: %v", err)
	}

	s.Run()
}
