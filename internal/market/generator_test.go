package market

import (
	"math"
	"testing"
	"time"
)

func TestGenerateShape(t *testing.T) {
	gen := NewSeededGenerator(42)
	entities := Entities([]string{"A", "B"})

	dataset, err := gen.Generate(30, entities, RangeMonth)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if len(dataset) != 30 {
		t.Errorf("Expected 30 points, got %d", len(dataset))
	}

	if !dataset[0].Timestamp.Before(dataset[29].Timestamp) {
		t.Errorf("Expected first timestamp %v before last %v", dataset[0].Timestamp, dataset[29].Timestamp)
	}

	for i := 1; i < len(dataset); i++ {
		if !dataset[i-1].Timestamp.Before(dataset[i].Timestamp) {
			t.Errorf("Timestamps not strictly increasing at index %d", i)
		}
	}

	for _, e := range entities {
		if dataset[0].Values[e.Name].Price <= 0 {
			t.Errorf("Entity %s starts with non-positive price", e.Name)
		}
	}
}

func TestGenerateStepBound(t *testing.T) {
	gen := NewSeededGenerator(7)
	entities := Entities([]string{"ACME"})

	ranges := []TimeRange{RangeDay, RangeWeek, RangeMonth}
	for _, tr := range ranges {
		dataset, err := gen.Generate(50, entities, tr)
		if err != nil {
			t.Fatalf("Generate(%s) failed: %v", tr, err)
		}

		bound := stepFraction * tr.Multiplier()
		for i := 1; i < len(dataset); i++ {
			prev := dataset[i-1].Values["ACME"].Price
			cur := dataset[i].Values["ACME"].Price
			if math.Abs(cur-prev) > bound*prev*(1+1e-9) {
				t.Errorf("range %s: step %d exceeds bound: |%f - %f| > %f", tr, i, cur, prev, bound*prev)
			}
		}
	}
}

func TestGenerateVolumeBounds(t *testing.T) {
	gen := NewSeededGenerator(3)
	dataset, err := gen.Generate(100, Entities([]string{"A"}), RangeWeek)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	for i, p := range dataset {
		v := p.Values["A"].Volume
		if v < minVolume || v > maxVolume {
			t.Errorf("point %d: volume %f outside [%d, %d]", i, v, minVolume, maxVolume)
		}
	}
}

func TestGenerateChangeDerivedFromPrice(t *testing.T) {
	gen := NewSeededGenerator(11)
	dataset, err := gen.Generate(20, Entities([]string{"A"}), RangeDay)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if dataset[0].Values["A"].Change != 0 {
		t.Errorf("First point change should be 0, got %f", dataset[0].Values["A"].Change)
	}

	for i := 1; i < len(dataset); i++ {
		prev := dataset[i-1].Values["A"].Price
		cur := dataset[i].Values["A"].Price
		want := (cur - prev) / prev * 100
		got := dataset[i].Values["A"].Change
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("point %d: change %f, want %f", i, got, want)
		}
	}
}

func TestGenerateRejectsBadCount(t *testing.T) {
	gen := NewSeededGenerator(1)
	if _, err := gen.Generate(0, Entities([]string{"A"}), RangeDay); err == nil {
		t.Error("Expected error for zero point count")
	}
}

func TestEntitiesPositionalColors(t *testing.T) {
	list := Entities([]string{"X", "Y", "Z"})
	for i, e := range list {
		if e.ColorIndex != i {
			t.Errorf("Entity %s: color index %d, want %d", e.Name, e.ColorIndex, i)
		}
	}
}

func TestMetricValuesSkipsInvalidRows(t *testing.T) {
	dataset := Dataset{
		{}, // zero timestamp, dropped
		{Timestamp: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), Values: map[string]Sample{"A": {Price: 10}}},
	}

	values := dataset.MetricValues("A", MetricPrice)
	if !math.IsNaN(values[0]) {
		t.Errorf("Invalid row should yield NaN, got %f", values[0])
	}
	if values[1] != 10 {
		t.Errorf("Valid row should yield 10, got %f", values[1])
	}
}

func TestParseFallbacks(t *testing.T) {
	if got := ParseMetric("bogus"); got != MetricPrice {
		t.Errorf("ParseMetric fallback: got %s", got)
	}
	if got := ParseTimeRange(""); got != RangeMonth {
		t.Errorf("ParseTimeRange fallback: got %s", got)
	}
}
