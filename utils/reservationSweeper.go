package utils

import (
	"certstock/database"
	"certstock/workflow"

	"github.com/robfig/cron/v3"
)

// InitializeReservationSweeper schedules the hourly reservation expiry sweep.
// Each tick runs exactly one sweep in its own transaction; a failed sweep is
// logged and retried on the next tick, never immediately.
func InitializeReservationSweeper() *cron.Cron {
	Log.Info("[RESERVATION-SWEEPER] Initializing reservation sweeper...")

	c := cron.New()

	// Run at the top of every hour
	c.AddFunc("0 * * * *", func() {
		swept, err := workflow.SweepExpiredReservations(database.Database.Db, Log)
		if err != nil {
			Log.Errorf("[RESERVATION-SWEEPER] Sweep failed: %v", err)
			return
		}
		if swept > 0 {
			Log.Infof("[RESERVATION-SWEEPER] Reclaimed %d expired reservations", swept)
		}
	})

	c.Start()
	Log.Info("[RESERVATION-SWEEPER] Reservation sweeper started - runs hourly")
	return c
}
