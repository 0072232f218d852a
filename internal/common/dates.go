package common

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Taipei is the fixed market timezone. Taiwan has no daylight saving.
var Taipei = time.FixedZone("Asia/Taipei", 8*60*60)

// ISODate is the canonical date layout used by every record shape.
const ISODate = "2006-01-02"

// CompactDate is the yyyyMMdd layout used by several upstream query strings.
const CompactDate = "20060102"

// ToCompact converts an ISO date string to yyyyMMdd.
func ToCompact(iso string) string {
	return strings.ReplaceAll(iso, "-", "")
}

// FromCompact converts a yyyyMMdd date to an ISO string. Inputs in any
// other shape, feed placeholders included, pass through unchanged.
func FromCompact(compact string) string {
	t, err := time.ParseInLocation(CompactDate, compact, Taipei)
	if err != nil {
		return compact
	}
	return t.Format(ISODate)
}

// ToROC converts an ISO date string to the ROC calendar form
// "{year-1911}/MM/dd" used by several upstream query strings.
func ToROC(iso string) string {
	t, err := time.ParseInLocation(ISODate, iso, Taipei)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%d/%02d/%02d", t.Year()-1911, int(t.Month()), t.Day())
}

// FromROC converts an ROC calendar date ("110/01/05", "110年01月" variants
// normalized by the caller) to an ISO date string. Returns "" when the
// input does not parse.
func FromROC(roc string) string {
	parts := strings.Split(strings.TrimSpace(roc), "/")
	if len(parts) != 3 {
		return ""
	}
	year, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return ""
	}
	month, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return ""
	}
	day, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", year+1911, month, day)
}

// EpochMillis builds an epoch-millisecond timestamp from an ISO date and a
// "HH:mm:ss" time of day in the market timezone.
func EpochMillis(isoDate, clock string) int64 {
	t, err := time.ParseInLocation(ISODate+" 15:04:05", isoDate+" "+clock, Taipei)
	if err != nil {
		return 0
	}
	return t.UnixMilli()
}

// Today returns today's date in the market timezone as an ISO string.
func Today() string {
	return time.Now().In(Taipei).Format(ISODate)
}
