package common

import (
	"fmt"
	"strings"
	"time"
)

// FormatBalance formats a coin amount with thousand separators
func FormatBalance(balance int64) string {
	str := fmt.Sprintf("%d", balance)

	negative := false
	if strings.HasPrefix(str, "-") {
		negative = true
		str = str[1:]
	}

	n := len(str)
	if n > 3 {
		var result strings.Builder
		for i, digit := range str {
			if i > 0 && (n-i)%3 == 0 {
				result.WriteRune(',')
			}
			result.WriteRune(digit)
		}
		str = result.String()
	}

	if negative {
		return "-" + str
	}
	return str
}

// FormatCooldown renders a remaining cooldown the way users read it:
// days and hours for long waits, hours and minutes otherwise.
func FormatCooldown(remaining time.Duration) string {
	if remaining >= 24*time.Hour {
		days := int(remaining / (24 * time.Hour))
		hours := int(remaining % (24 * time.Hour) / time.Hour)
		return fmt.Sprintf("%dd %dh", days, hours)
	}

	hours := int(remaining / time.Hour)
	minutes := int(remaining % time.Hour / time.Minute)
	return fmt.Sprintf("%dh %dm", hours, minutes)
}

// FormatDiscordTimestamp formats a time as a Discord timestamp that displays
// in the user's local timezone. Format types: "t" = short time, "T" = long
// time, "d" = short date, "D" = long date, "f" = short date/time, "F" = long
// date/time, "R" = relative time
func FormatDiscordTimestamp(t time.Time, format string) string {
	return fmt.Sprintf("<t:%d:%s>", t.Unix(), format)
}
