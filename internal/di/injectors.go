//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"twsave/internal/packer"
	"twsave/internal/providers"
	"twsave/internal/savefile"
	"twsave/internal/services"
	"twsave/internal/structures"
)

func InitConverter(cfg *structures.CliFlags) (services.ConverterServiceInterface, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		packer.NewPacker,
		services.NewConverterService,
	)

	return nil, nil
}

func InitFileManager(cfg *structures.CliFlags) (*savefile.FileManager, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,

		savefile.NewZstdCompressor,
		savefile.NewFileManager,
	)

	return nil, nil
}
