//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/Sanat-Jha/Truely-FAQ/internal/bootstrap"
	"github.com/Sanat-Jha/Truely-FAQ/internal/domain/consolidation"
	"github.com/Sanat-Jha/Truely-FAQ/internal/infra/config"
	httpiface "github.com/Sanat-Jha/Truely-FAQ/internal/interface/http"
	"github.com/Sanat-Jha/Truely-FAQ/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideConsolidationConfig,
		providePgxPool,
		provideRepositories,
		provideQuestionRepository,
		provideFAQRepository,
		providePublicCache,
		provideSimilarityProvider,
		consolidation.NewEngine,
		consolidation.NewService,
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
