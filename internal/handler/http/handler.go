package http

import (
	"context"

	"github.com/avdeenko/bookclub/internal/config"
	"github.com/avdeenko/bookclub/internal/logger"
	"github.com/avdeenko/bookclub/internal/service"
	"github.com/avdeenko/bookclub/models"
)

// Pinger reports backend liveness for the health endpoint.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handler struct {
	services  *service.Services
	serverCfg config.Server
	buildInfo models.AppBuildInfo
	db        Pinger

	logger *logger.Logger
}

func NewHandler(services *service.Services, serverCfg config.Server, buildInfo models.AppBuildInfo, db Pinger, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:  services,
		serverCfg: serverCfg,
		buildInfo: buildInfo,
		db:        db,
		logger:    logger,
	}
}
