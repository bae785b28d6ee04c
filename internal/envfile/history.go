package envfile

import "time"

// HistoryTimeFormat is the timestamp layout used in history comments.
const HistoryTimeFormat = "2006-01-02 15:04:05"

// HistoryComment returns the audit line recording oldLine, or "" when
// disabled.
func HistoryComment(oldLine string, enabled bool, now time.Time) string {
	if !enabled {
		return ""
	}
	return "# " + oldLine + " # Edited: " + now.Format(HistoryTimeFormat) + "\n"
}
