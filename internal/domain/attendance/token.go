package attendance

import (
	"fmt"
	"strings"
	"time"
)

// A daily token looks like "Wforce_Attendance_20260829_0900": org prefix,
// the literal word Attendance, the date it is valid for, and the 24h time it
// was generated at. Lateness is measured from the generation time.
const (
	tokenDateLayout = "20060102"
	tokenTimeLayout = "20060102_1504"

	// LateThreshold is how long after token generation a check-in still
	// counts as present.
	LateThreshold = 2 * time.Hour
)

// GenerateToken builds the token for the given org at the given moment.
// Timestamps are taken in UTC.
func GenerateToken(org string, now time.Time) string {
	now = now.UTC()
	return fmt.Sprintf("%s_Attendance_%s_%s", org, now.Format(tokenDateLayout), now.Format("1504"))
}

// ParseToken validates a scanned token against the current time and returns
// the moment the token was generated.
//
// A token with anything other than four underscore-separated segments, or an
// unparseable time segment, is malformed. A well-formed token whose date is
// not today (UTC) is expired. The org and literal segments are not matched
// against: the date and time carry all the information the scan needs.
func ParseToken(token string, now time.Time) (time.Time, error) {
	parts := strings.Split(token, "_")
	if len(parts) != 4 {
		return time.Time{}, ErrMalformedToken
	}

	if parts[2] != now.UTC().Format(tokenDateLayout) {
		return time.Time{}, ErrExpiredToken
	}

	generatedAt, err := time.ParseInLocation(tokenTimeLayout, parts[2]+"_"+parts[3], time.UTC)
	if err != nil {
		return time.Time{}, ErrMalformedToken
	}
	return generatedAt, nil
}

// StatusForCheckIn applies the lateness policy: a scan more than
// LateThreshold after the token was generated is late.
func StatusForCheckIn(generatedAt, now time.Time) Status {
	if now.Sub(generatedAt) > LateThreshold {
		return StatusLate
	}
	return StatusPresent
}
