package helper

import (
	"time"

	"kds_manager/model"
)

// Fixed hand-off buffers added on top of cook time.
const (
	PrepBufferSeconds = 120
	ExpoBufferSeconds = 180
)

// ComputeTimerEnd derives the ticket countdown deadline at creation time.
// The slowest dish gates the whole ticket, so the deadline uses the max
// cook time across lines, never the sum.
func ComputeTimerEnd(items []model.MenuItem, now time.Time) time.Time {
	maxCook := 0
	for _, item := range items {
		if item.CookSeconds > maxCook {
			maxCook = item.CookSeconds
		}
	}
	total := maxCook + PrepBufferSeconds + ExpoBufferSeconds
	return now.Add(time.Duration(total) * time.Second)
}
