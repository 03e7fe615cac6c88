package market

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

const (
	// stepFraction bounds each price step at ±5% of the previous value before
	// the range multiplier is applied.
	stepFraction = 0.05

	minVolume = 10_000
	maxVolume = 1_000_000

	minStartPrice = 50.0
	maxStartPrice = 250.0
)

// Generator synthesizes random-walk price series. Shape is deterministic for a
// given (count, entities, range) triple; values come from the seeded source.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// NewGenerator creates a generator seeded from the current time.
func NewGenerator() *Generator {
	return NewSeededGenerator(time.Now().UnixNano())
}

// NewSeededGenerator creates a generator with a fixed seed for reproducible runs.
func NewSeededGenerator(seed int64) *Generator {
	return &Generator{
		rng: rand.New(rand.NewSource(seed)),
		now: time.Now,
	}
}

// Generate produces count points for the given entities across the time range.
// Timestamps are strictly increasing and end at the current instant.
func (g *Generator) Generate(count int, entities []Entity, timeRange TimeRange) (Dataset, error) {
	if count < 1 {
		return nil, fmt.Errorf("point count must be >= 1, got %d", count)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	var (
		span       = timeRange.Span()
		step       = span / time.Duration(count)
		end        = g.now().Truncate(time.Second)
		start      = end.Add(-span + step)
		multiplier = timeRange.Multiplier()
	)

	// Per-entity walk state.
	prices := make(map[string]float64, len(entities))
	for _, e := range entities {
		prices[e.Name] = minStartPrice + g.rng.Float64()*(maxStartPrice-minStartPrice)
	}

	dataset := make(Dataset, 0, count)
	for i := 0; i < count; i++ {
		point := Point{
			Timestamp: start.Add(time.Duration(i) * step),
			Values:    make(map[string]Sample, len(entities)),
		}
		for _, e := range entities {
			prev := prices[e.Name]
			price := prev
			change := 0.0
			if i > 0 {
				delta := (g.rng.Float64()*2 - 1) * stepFraction * multiplier
				price = prev * (1 + delta)
				change = (price - prev) / prev * 100
			}
			prices[e.Name] = price

			point.Values[e.Name] = Sample{
				Price:  price,
				Volume: float64(minVolume + g.rng.Intn(maxVolume-minVolume+1)),
				Change: change,
			}
		}
		dataset = append(dataset, point)
	}

	return dataset, nil
}
