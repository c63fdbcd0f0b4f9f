package jobs

import (
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"caseboard/config"
	"caseboard/services/scoreboard"
	"caseboard/storage"
)

// StartScheduler wires the recurring background work: the TV ticker refresh
// and the daily deadline reminder digest. A schedule that fails to register
// is logged and skipped; the ticker still refreshes on demand, so startup
// never aborts here.
func StartScheduler(cfg *config.Config, store *storage.FileStore, ticker *scoreboard.Cache) *cron.Cron {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))

	refreshSpec := fmt.Sprintf("@every %ds", cfg.TickerRefreshSecs)
	if _, err := c.AddFunc(refreshSpec, func() {
		ticker.Refresh()
	}); err != nil {
		log.Printf("[CRON] Failed to schedule ticker refresh (%s): %v", refreshSpec, err)
	}

	if cfg.RemindersEnabled {
		if _, err := c.AddFunc("0 7 * * *", func() {
			SendDeadlineReminders(store, cfg)
		}); err != nil {
			log.Printf("[CRON] Failed to schedule deadline reminders: %v", err)
		}
	}

	c.Start()
	log.Println("[CRON] Scheduler started")
	return c
}
