package utils

import (
	"log"
	"time"
)

// TimeNowKST returns the current time in the Seoul market timezone.
func TimeNowKST() time.Time {
	loc, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		log.Fatal("Failed to load location", err)
	}
	return time.Now().In(loc)
}

// PrettyDate formats a time for human-readable alert messages.
func PrettyDate(t time.Time) string {
	return t.Format("Mon, 02 Jan 2006 15:04:05 MST")
}
