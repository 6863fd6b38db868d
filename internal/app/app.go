package app

import (
	"log/slog"

	"github.com/zkreview/zkr-cli/internal/domain/config"
	"github.com/zkreview/zkr-cli/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig
	Log    *slog.Logger

	// Use cases
	DeployProtocol *usecase.DeployProtocol
	ShowDeployment *usecase.ShowDeployment
	ListNetworks   *usecase.ListNetworks
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	log *slog.Logger,
	deployProtocol *usecase.DeployProtocol,
	showDeployment *usecase.ShowDeployment,
	listNetworks *usecase.ListNetworks,
) (*App, error) {
	return &App{
		Config:         cfg,
		Log:            log,
		DeployProtocol: deployProtocol,
		ShowDeployment: showDeployment,
		ListNetworks:   listNetworks,
	}, nil
}
