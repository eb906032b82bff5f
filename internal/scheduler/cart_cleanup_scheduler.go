package scheduler

import (
	"time"

	"github.com/flamingdiva/flamingdiva-backend/internal/app/repository"
	"github.com/flamingdiva/flamingdiva-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// Cart rows untouched for this long are considered abandoned.
const cartRetention = 30 * 24 * time.Hour

// CartCleanupScheduler prunes abandoned cart rows once a day.
type CartCleanupScheduler struct {
	cron     *cron.Cron
	cartRepo repository.CartRepository
}

func NewCartCleanupScheduler(cartRepo repository.CartRepository) *CartCleanupScheduler {
	return &CartCleanupScheduler{
		cron:     cron.New(),
		cartRepo: cartRepo,
	}
}

func (s *CartCleanupScheduler) Start() error {
	// Daily at 4 AM, when storefront traffic is lowest
	_, err := s.cron.AddFunc("0 4 * * *", func() {
		logger.Info("Starting scheduled cart cleanup", nil)

		cutoff := time.Now().Add(-cartRetention)
		deleted, err := s.cartRepo.DeleteOlderThan(cutoff)
		if err != nil {
			logger.Error("Failed to clean up abandoned carts", err)
			return
		}

		logger.Info("Abandoned cart cleanup finished", map[string]interface{}{
			"deleted": deleted,
			"cutoff":  cutoff,
		})
	})

	if err != nil {
		logger.Error("Failed to add cron job for cart cleanup", err)
		return err
	}

	s.cron.Start()
	logger.Info("Cart cleanup scheduler started successfully (daily at 4:00 AM)", nil)

	return nil
}

func (s *CartCleanupScheduler) Stop() {
	logger.Info("Stopping cart cleanup scheduler...", nil)
	s.cron.Stop()
	logger.Info("Cart cleanup scheduler stopped", nil)
}
