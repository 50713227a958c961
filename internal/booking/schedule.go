package booking

import (
    "fmt"
    "strings"
    "time"
)

// ParseScheduleRange converts a human-readable schedule string such
// as "9:00 AM - 10:00 AM" into 24-hour "HH:MM:SS" start and end
// times. The format is what the browser client embeds in checkout
// booking metadata. Both sides of the dash must parse; there is no
// silent fallback window.
func ParseScheduleRange(schedule string) (start, end string, err error) {
    parts := strings.SplitN(schedule, "-", 2)
    if len(parts) != 2 {
        return "", "", fmt.Errorf("schedule %q: expected \"<start> - <end>\"", schedule)
    }
    start, err = parseClock(parts[0])
    if err != nil {
        return "", "", fmt.Errorf("schedule %q: %w", schedule, err)
    }
    end, err = parseClock(parts[1])
    if err != nil {
        return "", "", fmt.Errorf("schedule %q: %w", schedule, err)
    }
    return start, end, nil
}

// parseClock parses a single 12-hour clock reading like "9:00 AM" or
// "12:00 pm" into "HH:MM:SS".
func parseClock(s string) (string, error) {
    s = strings.ToUpper(strings.TrimSpace(s))
    t, err := time.Parse("3:04 PM", s)
    if err != nil {
        return "", err
    }
    return t.Format("15:04:05"), nil
}
