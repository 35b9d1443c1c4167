package main

import (
	"context"
	"log"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/curvelabs/launchpool/internal/config"
	"github.com/curvelabs/launchpool/internal/ledger"
	"github.com/curvelabs/launchpool/internal/pool"
	"github.com/curvelabs/launchpool/internal/service"
	"github.com/curvelabs/launchpool/internal/store"
	transport "github.com/curvelabs/launchpool/internal/transport/http"
)

// operator is the account funded for the startup launch bootstrap.
var operator = common.HexToAddress("0x0000000000000000000000000000000000000001")

func main() {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "cfg/config.yaml"
	}

	cfg := config.Load(path)

	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatalf("zapcore.ParseLevel: %v", err)
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	logger, err := zcfg.Build()
	if err != nil {
		log.Fatalf("zap build: %v", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	books := ledger.NewMemory()
	pools := store.NewMemory()
	events := pool.NewZapEmitter(logger)

	controller, err := pool.NewController(pools, books, events, logger, cfg.FeeNumerator, cfg.FeeDenominator)
	if err != nil {
		logger.Fatal("pool.NewController", zap.Error(err))
	}

	if cfg.Launch != nil {
		if err := bootstrapLaunch(controller, books, cfg.Launch); err != nil {
			logger.Fatal("launch bootstrap", zap.Error(err))
		}
	}

	svc := service.NewPoolService(controller)
	srv := transport.NewServer(svc, logger, cfg)

	if err := srv.ListenAndServe(cfg.ListenAddr); err != nil {
		logger.Fatal("srv.ListenAndServe", zap.Error(err))
	}
}

// bootstrapLaunch funds the operator and opens the configured launch pool so
// the server starts with a tradable market.
func bootstrapLaunch(c *pool.Controller, books *ledger.Memory, lc *config.LaunchConfig) error {
	ctx := context.Background()

	if err := books.Mint(ctx, operator, ledger.NativeAsset, lc.SeedBase); err != nil {
		return err
	}
	_, err := c.InitializeLaunch(ctx, operator, common.HexToAddress(lc.QuoteAsset), lc.SeedBase, pool.LaunchParams{
		TotalSupply:     lc.TotalSupply,
		CreatorShareBps: lc.CreatorShareBps,
	})
	return err
}
