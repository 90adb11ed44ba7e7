// Package lease computes the housing term assigned at signup.
package lease

import (
	"time"

	"github.com/Lordiod/NMUstudenthousing/config"
)

// Term returns the start and end dates of the lease assigned for a
// signup happening at now. Signups on or before the configured cutoff
// date fall in the autumn term, October 1 of the current year through
// January 20 of the next; later signups fall in the spring term,
// February 15 through June 15 of the next year.
//
// With the default cutoff of December 31 the autumn branch is always
// taken, mirroring the behavior of the system this replaces. The
// spring branch is kept reachable through configuration pending
// product clarification of the intended cutoff.
func Term(now time.Time, cfg config.LeaseConfig) (start, end time.Time) {
	month := int(now.Month())
	if month < cfg.CutoffMonth || (month == cfg.CutoffMonth && now.Day() <= cfg.CutoffDay) {
		start = time.Date(now.Year(), time.October, 1, 0, 0, 0, 0, time.UTC)
		end = time.Date(now.Year()+1, time.January, 20, 0, 0, 0, 0, time.UTC)
		return start, end
	}
	start = time.Date(now.Year()+1, time.February, 15, 0, 0, 0, 0, time.UTC)
	end = time.Date(now.Year()+1, time.June, 15, 0, 0, 0, 0, time.UTC)
	return start, end
}
