package scheduler

import (
	"github.com/amontenegro/gadgethub-backend/internal/app/service"
	"github.com/amontenegro/gadgethub-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// LowStockScheduler runs a daily sweep over the catalog and logs a warning
// for every available product whose stock fell under the threshold.
type LowStockScheduler struct {
	cron             *cron.Cron
	dashboardService service.DashboardService
}

func NewLowStockScheduler(dashboardService service.DashboardService) *LowStockScheduler {
	return &LowStockScheduler{
		cron:             cron.New(),
		dashboardService: dashboardService,
	}
}

func (s *LowStockScheduler) Start() error {
	// Every day at 9:00 server time
	_, err := s.cron.AddFunc("0 9 * * *", func() {
		logger.Info("Starting scheduled low stock check", nil)

		products, err := s.dashboardService.LowStockProducts()
		if err != nil {
			logger.Error("Scheduled low stock check failed", err, nil)
			return
		}

		for _, product := range products {
			logger.Warn("Product stock is low", map[string]interface{}{
				"product_id":  product.ID,
				"name":        product.Name,
				"stock_count": product.StockCount,
			})
		}

		logger.Info("Scheduled low stock check finished", map[string]interface{}{
			"low_stock_count": len(products),
		})
	})

	if err != nil {
		logger.Error("Failed to add cron job for low stock check", err, nil)
		return err
	}

	s.cron.Start()
	logger.Info("Low stock scheduler started (daily at 9:00 AM)", nil)

	return nil
}

func (s *LowStockScheduler) Stop() {
	logger.Info("Stopping low stock scheduler...", nil)
	s.cron.Stop()
	logger.Info("Low stock scheduler stopped", nil)
}
