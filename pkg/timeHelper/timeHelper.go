package timehelper

import "time"

// NowMillis is the timestamp format of the live-update log.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}

func GetTodaysDateString() string {
	// Format the date to 'YYYY-MM-DD'
	return time.Now().Format("2006-01-02")
}
