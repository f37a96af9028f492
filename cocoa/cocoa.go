// Package cocoa converts timestamps from the Cocoa reference date used
// throughout the Photos library database.
//
// Cocoa (the Apple application framework) stores timestamps as seconds since
// 2001-01-01 00:00:00 UTC instead of the Unix epoch.
package cocoa

import "time"

// EpochDelta is the number of seconds between the Unix epoch and the Cocoa
// reference date (2001-01-01 00:00:00 UTC).
const EpochDelta int64 = 978307200

// TimestampToTime converts a Cocoa timestamp to a standard time.Time.
//
// The value is interpreted as seconds since the Unix epoch and then shifted
// forward by EpochDelta. This mirrors the arithmetic of earlier versions of
// this tool so that converted dates stay identical across deployments.
func TimestampToTime(timestamp float64) time.Time {
	return time.Unix(int64(timestamp), 0).UTC().Add(time.Duration(EpochDelta) * time.Second)
}
