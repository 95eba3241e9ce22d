package utils

import (
	"time"
)

// FormatTime formats t in loc, or returns "" when t is nil.
func FormatTime(t *time.Time, loc *time.Location, layout string) string {
	if t == nil {
		return ""
	}
	return t.In(loc).Format(layout)
}

func FormatBoolean(yesno bool, yes string, no string) string {
	if yesno {
		return yes
	}
	return no
}
