package helper

import (
	"log"
	"time"

	"kds_manager/constants"
	"kds_manager/database"
	"kds_manager/model"
	"kds_manager/square"

	"github.com/go-co-op/gocron/v2"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

var catalogScheduler gocron.Scheduler

// Items that arrive from Square with no local record get a conservative
// default cook time until a manager sets the real one.
const defaultCookSeconds = 300

// SyncCatalog upserts the Square catalog into menu_items, keyed by
// square_id. Station and cook time are local-only fields and are never
// overwritten by the sync.
func SyncCatalog(sq square.Client) {
	log.Println("[CRON] Square catalog sync triggered")

	items, err := sq.ListCatalog()
	if err != nil {
		log.Printf("catalog sync failed: %v", err)
		return
	}
	if len(items) == 0 {
		log.Println("catalog sync: nothing to import")
		return
	}

	db := database.DB
	for _, item := range items {
		var existing model.MenuItem
		err := db.Where("square_id = ?", item.SquareId).First(&existing).Error
		switch {
		case err == nil:
			updates := map[string]any{
				"name":        item.Name,
				"category":    item.Category,
				"price_cents": item.PriceCents,
			}
			if err := db.Model(&existing).Updates(updates).Error; err != nil {
				log.Printf("catalog sync: update of %q failed: %v", item.Name, err)
			}
		case err == gorm.ErrRecordNotFound:
			newItem := model.MenuItem{
				SquareId:    item.SquareId,
				Slug:        slug.Make(item.Name),
				Name:        item.Name,
				Category:    item.Category,
				Station:     constants.STATION_KITCHEN,
				CookSeconds: defaultCookSeconds,
				PriceCents:  item.PriceCents,
			}
			newItem.Slug = GenerateUniqueMenuItemSlug(db, item.Name)
			if err := db.Create(&newItem).Error; err != nil {
				log.Printf("catalog sync: create of %q failed: %v", item.Name, err)
			}
		default:
			log.Printf("catalog sync: lookup of %q failed: %v", item.Name, err)
		}
	}
	log.Printf("catalog sync: processed %d items", len(items))
}

func StartCatalogSyncScheduler(sq square.Client) {
	s, err := gocron.NewScheduler()
	if err != nil {
		log.Printf("failed to start catalog scheduler: %v", err)
		return
	}

	catalogScheduler = s

	_, err = s.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(SyncCatalog, sq),
	)
	if err != nil {
		log.Printf("failed to schedule catalog sync: %v", err)
		return
	}

	s.Start()
	log.Println("Square catalog sync scheduler started (hourly)")
}

func StopCatalogSyncScheduler() {
	if catalogScheduler != nil {
		_ = catalogScheduler.Shutdown()
	}
}
