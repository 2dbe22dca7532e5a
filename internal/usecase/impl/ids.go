package impl

import (
	"math/rand/v2"
	"strconv"
	"time"
)

// generateOrderID derives a ledger ID from the placement instant.
func generateOrderID(now time.Time) string {
	return "ORD" + strconv.FormatInt(now.UnixMilli(), 10)
}

// generateTrackingNumber builds a carrier-style tracking number from the
// placement instant plus a random suffix.
func generateTrackingNumber(now time.Time) string {
	millis := strconv.FormatInt(now.UnixMilli(), 10)
	if len(millis) > 8 {
		millis = millis[len(millis)-8:]
	}

	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	suffix := make([]byte, 4)
	for i := range suffix {
		suffix[i] = letters[rand.IntN(len(letters))]
	}

	return "SH" + millis + string(suffix)
}

// estimateDelivery picks a uniform number of business days inside the window
// and walks forward from now, skipping weekends.
func estimateDelivery(now time.Time, minDays, maxDays int) time.Time {
	if minDays <= 0 {
		minDays = 3
	}
	if maxDays < minDays {
		maxDays = minDays
	}

	days := minDays
	if maxDays > minDays {
		days += rand.IntN(maxDays - minDays + 1)
	}

	estimate := now
	for remaining := days; remaining > 0; {
		estimate = estimate.AddDate(0, 0, 1)
		if wd := estimate.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		remaining--
	}

	return estimate
}
