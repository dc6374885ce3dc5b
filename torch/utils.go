package torch

import (
	"fmt"
	"time"
)

// FormatRemaining renders a duration as mm:ss for display, rounding up so
// a torch with any time left never shows 00:00.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	sec := int((d + time.Second - 1) / time.Second)
	return fmt.Sprintf("%02d:%02d", sec/60, sec%60)
}
