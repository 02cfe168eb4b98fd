package cron

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/qs3c/shelf_server/internal/repository"
)

const defaultBatchSize = 500

// PruneResult 一次清理的统计
type PruneResult struct {
	Found   int
	Deleted int64
}

// Service 定时清理引用已不存在的动态
type Service struct {
	activityRepo *repository.ActivityRepository
	interval     time.Duration
	batchSize    int
	stopChan     chan struct{}
	stopOnce     sync.Once
}

func NewService(activityRepo *repository.ActivityRepository, interval time.Duration, batchSize int) *Service {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &Service{
		activityRepo: activityRepo,
		interval:     interval,
		batchSize:    batchSize,
		stopChan:     make(chan struct{}),
	}
}

// Start 启动定时任务，interval<=0 时不做任何事
func (s *Service) Start() {
	if s.interval <= 0 {
		zap.L().Info("Cron service disabled")
		return
	}
	go s.run()
	zap.L().Info("Cron service started", zap.Duration("interval", s.interval))
}

// Stop 停止定时任务，可重复调用
func (s *Service) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
		zap.L().Info("Cron service stopped")
	})
}

func (s *Service) run() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			result, err := s.PruneOrphans(false)
			if err != nil {
				zap.L().Error("Prune orphan activities failed", zap.Error(err))
				continue
			}
			if result.Found > 0 {
				zap.L().Info("Pruned orphan activities",
					zap.Int("found", result.Found),
					zap.Int64("deleted", result.Deleted))
			}
		}
	}
}

// PruneOrphans 查找并按批删除孤立动态；dryRun 时只统计
func (s *Service) PruneOrphans(dryRun bool) (*PruneResult, error) {
	ids, err := s.activityRepo.OrphanIDs()
	if err != nil {
		return nil, err
	}

	result := &PruneResult{Found: len(ids)}
	if dryRun {
		return result, nil
	}

	for start := 0; start < len(ids); start += s.batchSize {
		end := start + s.batchSize
		if end > len(ids) {
			end = len(ids)
		}
		n, err := s.activityRepo.DeleteByIDs(ids[start:end])
		result.Deleted += n
		if err != nil {
			return result, err
		}
	}
	return result, nil
}
