package core

import "time"

// Period names a date range used to bound aggregation queries.
type Period string

const (
	PeriodDaily    Period = "daily"
	PeriodMonthly  Period = "monthly"
	PeriodYearly   Period = "yearly"
	PeriodLifetime Period = "lifetime"
	PeriodCustom   Period = "custom"
)

// EpochDate is the lower bound used for lifetime aggregation.
const EpochDate = "1970-01-01"

// DateRange is an inclusive [Start, End] range of canonical date strings.
type DateRange struct {
	Start string
	End   string
}

// ResolvePeriod computes the date range for a period keyword relative to now.
// Custom requires both bounds; any unknown keyword, and custom with a missing
// bound, falls back to lifetime.
func ResolvePeriod(period Period, now time.Time, start, end string) DateRange {
	today := now.Format(DateLayout)
	switch period {
	case PeriodDaily:
		return DateRange{Start: today, End: today}
	case PeriodMonthly:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return DateRange{Start: first.Format(DateLayout), End: today}
	case PeriodYearly:
		first := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
		return DateRange{Start: first.Format(DateLayout), End: today}
	case PeriodCustom:
		if start != "" && end != "" {
			return DateRange{Start: start, End: end}
		}
	}
	return DateRange{Start: EpochDate, End: today}
}

// Days returns the inclusive day count of the range, never less than 1.
// Malformed bounds also resolve to 1 so that averages stay well-defined.
func (r DateRange) Days() int {
	start, err := time.Parse(DateLayout, r.Start)
	if err != nil {
		return 1
	}
	end, err := time.Parse(DateLayout, r.End)
	if err != nil {
		return 1
	}
	days := int(end.Sub(start).Hours()/24) + 1
	if days < 1 {
		return 1
	}
	return days
}

// IsLifetime reports whether the range starts at the epoch lower bound.
func (r DateRange) IsLifetime() bool {
	return r.Start == EpochDate
}
