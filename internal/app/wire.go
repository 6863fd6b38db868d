//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/viper"
	"github.com/zkreview/zkr-cli/internal/adapters"
	"github.com/zkreview/zkr-cli/internal/config"
	"github.com/zkreview/zkr-cli/internal/logging"
	"github.com/zkreview/zkr-cli/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper, sink usecase.ProgressSink) (*App, error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewDeployProtocol,
		usecase.NewShowDeployment,
		usecase.NewListNetworks,

		// App
		NewApp,
	)
	return nil, nil
}
