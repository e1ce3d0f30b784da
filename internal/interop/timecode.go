package interop

import (
	"fmt"
	"strconv"
	"strings"
)

// parseClock parses "HH:MM:SS<sep>mmm" (hours optional when optHours)
// into milliseconds. sep is ',' for SRT and '.' for WebVTT.
func parseClock(s string, sep byte, optHours bool) (uint32, bool) {
	frac := ""
	if i := strings.LastIndexByte(s, sep); i >= 0 {
		frac = s[i+1:]
		s = s[:i]
	}
	if len(frac) != 3 {
		return 0, false
	}
	parts := strings.Split(s, ":")
	var h, m, sec string
	switch {
	case len(parts) == 3:
		h, m, sec = parts[0], parts[1], parts[2]
	case len(parts) == 2 && optHours:
		h, m, sec = "0", parts[0], parts[1]
	default:
		return 0, false
	}
	hv, err1 := strconv.ParseUint(h, 10, 32)
	mv, err2 := strconv.ParseUint(m, 10, 32)
	sv, err3 := strconv.ParseUint(sec, 10, 32)
	fv, err4 := strconv.ParseUint(frac, 10, 32)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return 0, false
	}
	if mv > 59 || sv > 59 {
		return 0, false
	}
	total := ((hv*60+mv)*60+sv)*1000 + fv
	if total > 1<<32-1 {
		return 0, false
	}
	return uint32(total), true
}

func formatClock(ms uint32, sep byte) string {
	h := ms / 3600000
	m := ms / 60000 % 60
	s := ms / 1000 % 60
	f := ms % 1000
	return fmt.Sprintf("%02d:%02d:%02d%c%03d", h, m, s, sep, f)
}

// parseLRCTime parses "mm:ss.xx" into milliseconds. The fraction may be
// one to three digits; minutes are unbounded. ':' is accepted as the
// fraction separator for old files.
func parseLRCTime(s string) (uint32, bool) {
	i := strings.IndexByte(s, ':')
	if i < 0 {
		return 0, false
	}
	min, err := strconv.ParseUint(s[:i], 10, 32)
	if err != nil {
		return 0, false
	}
	rest := s[i+1:]
	frac := ""
	if j := strings.IndexAny(rest, ".:"); j >= 0 {
		frac = rest[j+1:]
		rest = rest[:j]
	}
	sec, err := strconv.ParseUint(rest, 10, 32)
	if err != nil || sec > 59 {
		return 0, false
	}
	var fms uint64
	switch len(frac) {
	case 0:
		fms = 0
	case 1:
		n, err := strconv.ParseUint(frac, 10, 32)
		if err != nil {
			return 0, false
		}
		fms = n * 100
	case 2:
		n, err := strconv.ParseUint(frac, 10, 32)
		if err != nil {
			return 0, false
		}
		fms = n * 10
	case 3:
		n, err := strconv.ParseUint(frac, 10, 32)
		if err != nil {
			return 0, false
		}
		fms = n
	default:
		return 0, false
	}
	total := (min*60+sec)*1000 + fms
	if total > 1<<32-1 {
		return 0, false
	}
	return uint32(total), true
}

// formatLRCTime renders milliseconds as "mm:ss.xx" with centisecond
// precision, rounding half up.
func formatLRCTime(ms uint32) string {
	cs := (uint64(ms) + 5) / 10
	min := cs / 6000
	sec := cs / 100 % 60
	frac := cs % 100
	return fmt.Sprintf("%02d:%02d.%02d", min, sec, frac)
}
