package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// ClockTime is a time of day with minute precision, independent of any
// calendar date. Event start/end times are clock times: "09:30" on whatever
// day the event is placed on. Stored as minutes since midnight so ordering
// and overlap comparisons are plain integer comparisons.
type ClockTime int

// ParseClockTime parses "15:04" formatted input into a ClockTime.
func ParseClockTime(s string) (ClockTime, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("domain.ParseClockTime: %q: %w", s, err)
	}
	return ClockTime(t.Hour()*60 + t.Minute()), nil
}

// String formats the clock time as "15:04".
func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// Minutes returns the minutes-since-midnight value.
func (c ClockTime) Minutes() int { return int(c) }

// MarshalJSON encodes the clock time as a "15:04" string.
func (c ClockTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON decodes a "15:04" string.
func (c *ClockTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseClockTime(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
