package core

import (
	"testing"
)

func TestFillDailyTrendIsDense(t *testing.T) {
	r := DateRange{Start: "2024-01-29", End: "2024-02-02"}
	labels, values := FillDailyTrend(r, map[string]float64{
		"2024-01-30": 12.5,
		"2024-02-02": 7,
	})

	wantLabels := []string{"2024-01-29", "2024-01-30", "2024-01-31", "2024-02-01", "2024-02-02"}
	if len(labels) != len(wantLabels) {
		t.Fatalf("expected %d labels, got %d", len(wantLabels), len(labels))
	}
	wantValues := []float64{0, 12.5, 0, 0, 7}
	for i := range wantLabels {
		if labels[i] != wantLabels[i] {
			t.Fatalf("label %d = %q, want %q", i, labels[i], wantLabels[i])
		}
		if values[i] != wantValues[i] {
			t.Fatalf("value %d = %v, want %v", i, values[i], wantValues[i])
		}
	}
}

func TestFillDailyTrendBadBounds(t *testing.T) {
	labels, values := FillDailyTrend(DateRange{Start: "nope", End: "2024-01-01"}, nil)
	if labels != nil || values != nil {
		t.Fatalf("expected empty series for malformed bounds")
	}
}

func TestMonthlySeriesUnionOfMonths(t *testing.T) {
	labels, income, expense := MonthlySeries(
		map[string]float64{"2024-01": 150, "2024-03": 40},
		map[string]float64{"2024-02": 1000, "2024-03": 200},
	)

	wantLabels := []string{"2024-01", "2024-02", "2024-03"}
	if len(labels) != 3 {
		t.Fatalf("expected 3 months, got %d", len(labels))
	}
	for i, m := range wantLabels {
		if labels[i] != m {
			t.Fatalf("label %d = %q, want %q", i, labels[i], m)
		}
	}
	if income[0] != 0 || income[1] != 1000 || income[2] != 200 {
		t.Fatalf("unexpected income series %v", income)
	}
	if expense[0] != 150 || expense[1] != 0 || expense[2] != 40 {
		t.Fatalf("unexpected expense series %v", expense)
	}
}

func TestHighestCategory(t *testing.T) {
	if _, ok := HighestCategory(nil); ok {
		t.Fatalf("expected no highest category for empty map")
	}
	name, ok := HighestCategory(map[string]float64{"Food": 150, "Transport": 30})
	if !ok || name != "Food" {
		t.Fatalf("got %q ok=%v, want Food", name, ok)
	}
	// Tie breaks to the lexicographically smaller name.
	name, _ = HighestCategory(map[string]float64{"Food": 50, "Entertainment": 50})
	if name != "Entertainment" {
		t.Fatalf("tie broke to %q, want Entertainment", name)
	}
}

func TestAvgDaily(t *testing.T) {
	if got := AvgDaily(150, 15); got != 10 {
		t.Fatalf("AvgDaily(150, 15) = %v, want 10", got)
	}
	if got := AvgDaily(150, 0); got != 0 {
		t.Fatalf("AvgDaily with zero days must not divide, got %v", got)
	}
	if got := AvgDaily(150, -3); got != 0 {
		t.Fatalf("AvgDaily with negative days must guard, got %v", got)
	}
}
