package cli

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// parseDue принимает дату (YYYY-MM-DD, полночь UTC) или RFC3339
func parseDue(value string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid due date %q: use YYYY-MM-DD or RFC3339", value)
	}
	return t, nil
}

// formatDue печатает дату без времени, если время полночь UTC
func formatDue(t *time.Time) string {
	if t == nil {
		return ""
	}
	u := t.UTC()
	if u.Hour() == 0 && u.Minute() == 0 && u.Second() == 0 {
		return u.Format(dateLayout)
	}
	return t.Format(time.RFC3339)
}

func checkbox(completed bool) string {
	if completed {
		return "[x]"
	}
	return "[ ]"
}
