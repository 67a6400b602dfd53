package core

import (
	"testing"
	"time"
)

func TestResolvePeriod(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)
	cases := []struct {
		name   string
		period Period
		start  string
		end    string
		want   DateRange
	}{
		{"daily", PeriodDaily, "", "", DateRange{"2024-06-15", "2024-06-15"}},
		{"monthly", PeriodMonthly, "", "", DateRange{"2024-06-01", "2024-06-15"}},
		{"yearly", PeriodYearly, "", "", DateRange{"2024-01-01", "2024-06-15"}},
		{"lifetime", PeriodLifetime, "", "", DateRange{"1970-01-01", "2024-06-15"}},
		{"custom", PeriodCustom, "2024-01-05", "2024-02-10", DateRange{"2024-01-05", "2024-02-10"}},
		{"custom missing end falls back to lifetime", PeriodCustom, "2024-01-05", "", DateRange{"1970-01-01", "2024-06-15"}},
		{"unknown keyword falls back to lifetime", Period("weekly"), "", "", DateRange{"1970-01-01", "2024-06-15"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ResolvePeriod(tc.period, now, tc.start, tc.end)
			if got != tc.want {
				t.Fatalf("ResolvePeriod(%q) = %+v, want %+v", tc.period, got, tc.want)
			}
		})
	}
}

func TestDateRangeDays(t *testing.T) {
	cases := []struct {
		r    DateRange
		want int
	}{
		{DateRange{"2024-06-15", "2024-06-15"}, 1},
		{DateRange{"2024-06-01", "2024-06-15"}, 15},
		{DateRange{"2024-01-01", "2024-12-31"}, 366}, // leap year
		{DateRange{"2024-06-15", "2024-06-01"}, 1},   // inverted range guards to 1
		{DateRange{"garbage", "2024-06-01"}, 1},
	}
	for _, tc := range cases {
		if got := tc.r.Days(); got != tc.want {
			t.Fatalf("Days(%+v) = %d, want %d", tc.r, got, tc.want)
		}
	}
}
