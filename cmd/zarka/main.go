package main

import (
	"os"

	"github.com/gin-gonic/gin"

	"github.com/wacky444/Zarka-sub000/internal/api"
	"github.com/wacky444/Zarka-sub000/internal/constants"
	"github.com/wacky444/Zarka-sub000/internal/engine"
	"github.com/wacky444/Zarka-sub000/internal/logging"
	"github.com/wacky444/Zarka-sub000/internal/service"
)

func main() {
	// Path may be provided via ZARKA_CONFIG or defaults to
	// ./zarka_config.json in the current working directory.
	configPath := os.Getenv(constants.EnvConfigPath)
	if configPath == "" {
		configPath = "./zarka_config.json"
	}
	cfg := loadConfigOrExit(configPath)

	// Allow the DB path to be configured via ZARKA_DB. Default to a
	// data/ directory for local development.
	dbPath := os.Getenv(constants.EnvDBPath)
	if dbPath == "" {
		dbPath = "./data/zarka.db"
	}
	repo := createRepositoryOrExit(dbPath)

	eng := engine.New(cfg.Actions, cfg.Locations)
	svc := service.New(repo, eng, cfg, nil)
	handler := api.NewGameHandler(svc)

	startCutoffScanner(svc)

	router := gin.Default()

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		apiRoutes.GET(constants.RouteVersion, api.Version)
		apiRoutes.POST(constants.RouteMatches, handler.CreateMatch)
		apiRoutes.GET(constants.RouteMatches, handler.ListMatches)
		apiRoutes.GET(constants.RouteMatchByCode, handler.GetMatch)
		apiRoutes.POST(constants.RouteMatchJoin, handler.JoinMatch)
		apiRoutes.POST(constants.RouteMatchStart, handler.StartMatch)
		apiRoutes.POST(constants.RouteMatchPlan, handler.SubmitPlan)
		apiRoutes.GET(constants.RouteMatchReplay, handler.GetReplay)
	}

	addr := cfg.ServerAddress
	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: addr})
	if err := router.Run(addr); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}
