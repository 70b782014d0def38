package main

import (
	"os"

	"github.com/osei/edushield/internal/pkg/logger"
	"github.com/osei/edushield/internal/server"
)

// @title EduShield API
// @version 1.0
// @description Shared registry for schools to report and verify outstanding
// @description student obligations and teacher engagement records.

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully")
}
