package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/bikeshare-eda/internal/api"
	"github.com/jengzang/bikeshare-eda/internal/config"
	"github.com/jengzang/bikeshare-eda/internal/logging"
	"github.com/jengzang/bikeshare-eda/internal/service"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	// 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	logger := logging.New(cfg)

	if logging.ParseLevel(cfg.LogLevel) > slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 加载数据
	res, table, err := service.Prepare(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("Failed to prepare dataset", "path", cfg.DataPath, "error", err)
		os.Exit(1)
	}

	// 初始化路由
	router := api.SetupRouter(cfg, logger, api.NewServices(cfg, table, res.Frame))

	// 启动服务器
	logger.Info("Server starting", "port", cfg.Port, "rows", table.Len())
	if err := router.Run(cfg.Port); err != nil {
		logger.Error("Failed to start server", "error", err)
		os.Exit(1)
	}
}
