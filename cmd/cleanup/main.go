package main

import (
	"flag"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/qs3c/shelf_server/config"
	"github.com/qs3c/shelf_server/internal/database"
	"github.com/qs3c/shelf_server/internal/pkg/cron"
	"github.com/qs3c/shelf_server/internal/pkg/logger"
	"github.com/qs3c/shelf_server/internal/repository"
)

var (
	dryRun    = flag.Bool("dry-run", true, "Dry run mode, only report orphan activities")
	batchSize = flag.Int("batch", 0, "Activities deleted per statement, 0 uses cleanup.batch_size")
)

// 一次性清理引用已不存在的动态，用于历史数据或直接改库后的修复
func main() {
	flag.Parse()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zl, err := logger.Init(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zl.Sync()

	db, err := database.Open(&cfg.Database, false)
	if err != nil {
		zl.Fatal("Failed to connect database", zap.Error(err))
	}

	size := *batchSize
	if size <= 0 {
		size = cfg.Cleanup.BatchSize
	}
	svc := cron.NewService(repository.NewActivityRepository(db), 0, size)

	zl.Info("Starting orphan activity cleanup", zap.Bool("dry_run", *dryRun))

	result, err := svc.PruneOrphans(*dryRun)
	if err != nil {
		zl.Fatal("Cleanup failed", zap.Error(err))
	}

	if *dryRun {
		zl.Info("Dry run, nothing deleted. Run with -dry-run=false to delete",
			zap.Int("found", result.Found))
		return
	}
	zl.Info("Cleanup completed",
		zap.Int("found", result.Found),
		zap.Int64("deleted", result.Deleted))
}
