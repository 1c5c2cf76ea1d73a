package main

import (
	"flag"
	"os"

	"github.com/oggyb/accountadate/internal/config"
	"github.com/oggyb/accountadate/internal/db"
	"github.com/oggyb/accountadate/internal/logger"
)

func main() {
	users := flag.Int("users", 20, "number of accounts to create")
	seed := flag.Int64("seed", 0, "random seed, 0 picks one")
	flag.Parse()

	// Load configuration
	cfg := config.New()
	logger.InitFromConfig(cfg)

	database, err := db.NewDB(cfg)
	if err != nil {
		logger.Error("failed to init db", "err", err)
		os.Exit(1)
	}

	if err := db.SeedTestData(database, *users, *seed); err != nil {
		logger.Error("failed to seed", "err", err)
		os.Exit(1)
	}

	logger.Info("seeding completed", "users", *users, "password", db.SeedPassword)
}
