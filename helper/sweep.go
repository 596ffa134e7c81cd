package helper

import (
	"log"
	"time"

	"kds_manager/constants"
	"kds_manager/database"
	"kds_manager/model"

	"github.com/robfig/cron/v3"
)

var sweeper *cron.Cron

// Orders that sit in NEW past this cutoff are treated as abandoned.
const staleOrderCutoff = 2 * time.Hour

func StartOrderSweeper() {
	sweeper = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	_, err := sweeper.AddFunc("*/5 * * * *", cancelStaleOrders)
	if err != nil {
		log.Printf("failed to start order sweeper: %v", err)
		return
	}

	sweeper.Start()
	log.Println("Stale order sweeper started (every 5 minutes)")
}

func cancelStaleOrders() {
	cutoff := time.Now().Add(-staleOrderCutoff)
	result := database.DB.Model(&model.Order{}).
		Where("status = ? AND created_at < ?", constants.STATUS_NEW, cutoff).
		Update("status", constants.STATUS_CANCELLED)

	if result.Error != nil {
		log.Printf("stale order sweep failed: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("cancelled %d stale orders", result.RowsAffected)
	}
}

func StopOrderSweeper() {
	if sweeper != nil {
		sweeper.Stop()
	}
}
