package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/cppla/pixmarket/config"
	"github.com/cppla/pixmarket/market"
	"github.com/cppla/pixmarket/models"
	"github.com/cppla/pixmarket/repository"
	"github.com/cppla/pixmarket/routes"
	"github.com/cppla/pixmarket/utils"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Auto-migrate all tables and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if err := utils.InitLogger(cfg); err != nil {
			return err
		}
		dialector, err := config.Dialector(cfg)
		if err != nil {
			return err
		}
		db, err := config.Open(dialector, cfg.LogLevel)
		if err != nil {
			return err
		}
		if err := config.Migrate(db, models.All()...); err != nil {
			return err
		}
		utils.Sugar.Infof("migrated %d models on %s", len(models.All()), cfg.DBDriver)
		return nil
	},
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := config.Load()
	if err := utils.InitLogger(cfg); err != nil {
		return err
	}
	defer func() { _ = utils.Logger.Sync() }()

	db, err := config.InitDatabase(models.All()...)
	if err != nil {
		return err
	}

	engine := market.NewEngine(
		repository.NewGormStore(db),
		utils.Logger.Named("market"),
		market.WithMaxDurationHours(cfg.MarketMaxDurationHours),
	)

	// Keep the interface nil when Redis is off so controllers skip caching.
	var cache utils.Cache
	if rc := utils.NewRedisCache(utils.GetRedis()); rc != nil {
		cache = rc
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if cfg.SweepIntervalSeconds > 0 {
		market.NewSweeper(engine, time.Duration(cfg.SweepIntervalSeconds)*time.Second, nil).Start(ctx)
	}

	r := routes.SetupRouter(db, engine, cache)
	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	return utils.GraceServer(ctx, utils.NewServer(":"+cfg.AppPort, r))
}
