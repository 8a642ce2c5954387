package main

import (
	"time"

	"github.com/wacky444/Zarka-sub000/internal/config"
	"github.com/wacky444/Zarka-sub000/internal/logging"
	"github.com/wacky444/Zarka-sub000/internal/service"
	"github.com/wacky444/Zarka-sub000/internal/storage"
)

func loadConfigOrExit(path string) *config.Loaded {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		logging.Fatal("Missing or invalid zarka configuration", err, logging.Fields{"config_path": path})
	}
	return cfg
}

func createRepositoryOrExit(dbPath string) storage.Repository {
	db, err := storage.OpenAndMigrate(dbPath)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}
	return storage.NewSQLiteRepository(db)
}

// startCutoffScanner periodically resolves turns whose deadline passed so
// a match never stalls on an absent player.
func startCutoffScanner(svc *service.Service) {
	go func() {
		ticker := time.NewTicker(5 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			svc.ResolveExpiredMatches(time.Now())
		}
	}()
}
