package main

import (
	"context"
	"flag"

	"github.com/lintang-b-s/roadgraph/pkg/engine"
	"github.com/lintang-b-s/roadgraph/pkg/http"
	"github.com/lintang-b-s/roadgraph/pkg/http/usecases"
	"github.com/lintang-b-s/roadgraph/pkg/logger"
	"github.com/lintang-b-s/roadgraph/pkg/spatialindex"
	"github.com/lintang-b-s/roadgraph/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	configPath   = flag.String("config", "./data/", "directory containing config.yaml")
	useRateLimit = flag.Bool("rate_limit", false, "enable the api rate limiter (RATE_LIMIT_RPS, RATE_LIMIT_BURST)")
)

func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := util.ReadConfig(*configPath); err != nil {
		logger.Fatal("can't read config", zap.Error(err))
	}

	routingEngine, err := engine.NewEngine(viper.GetString("MAP_FILE"), viper.GetString("HEURISTIC"), logger)
	if err != nil {
		logger.Fatal("can't start query engine", zap.Error(err))
	}

	rtree := spatialindex.NewRtree()
	rtree.Build(routingEngine.GetGraph(), logger)

	api := http.NewServer(logger)

	routingService := usecases.NewRoutingService(logger, routingEngine, rtree, viper.GetFloat64("SNAP_RADIUS"))
	ctx, cleanup, err := NewContext()
	if err != nil {
		panic(err)
	}
	if _, err := api.Use(ctx, logger, *useRateLimit, routingService); err != nil {
		logger.Fatal("can't start api", zap.Error(err))
	}

	go func() {
		if err := api.Wait(); err != nil && err != context.Canceled {
			logger.Error("api stopped", zap.Error(err))
		}
	}()

	signal := http.GracefulShutdown()

	logger.Info("roadgraph server stopped", zap.String("signal", signal.String()))
	cleanup()
}

func NewContext() (context.Context, func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	cb := func() {
		cancel()
	}

	return ctx, cb, nil
}
