package integration

import (
	"sync"
	"testing"
	"time"

	"github.com/iwvelando/property-forecast/internal/forecast"
	"go.uber.org/zap"
)

// TestPerformance checks that a full evaluation stays interactive.
func TestPerformance(t *testing.T) {
	conf, table := loadFixture(t)
	engine := forecast.NewEngine(zap.NewNop(), conf.Recommendation)
	req := seaPointRequest(t, conf, table)

	const iterations = 200
	start := time.Now()
	for i := 0; i < iterations; i++ {
		if _, err := engine.Recompute(req); err != nil {
			t.Fatalf("Recompute() error = %v", err)
		}
	}
	elapsed := time.Since(start)

	// Each evaluation is a few hundred arithmetic steps.
	if perCall := elapsed / iterations; perCall > 50*time.Millisecond {
		t.Errorf("evaluation took %v per call, expected under 50ms", perCall)
	}
	t.Logf("%d evaluations in %v", iterations, elapsed)
}

// TestConcurrentEvaluations runs the shared engine from many goroutines.
func TestConcurrentEvaluations(t *testing.T) {
	conf, table := loadFixture(t)
	engine := forecast.NewEngine(zap.NewNop(), conf.Recommendation)
	req := seaPointRequest(t, conf, table)

	want, err := engine.Recompute(req)
	if err != nil {
		t.Fatalf("Recompute() error = %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan string, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := engine.Recompute(req)
			if err != nil {
				errs <- err.Error()
				return
			}
			for s := range got.Projections {
				if got.Projections[s].Summary.Year10Profit != want.Projections[s].Summary.Year10Profit {
					errs <- "year 10 profit differs between runs"
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	for msg := range errs {
		t.Error(msg)
	}
}

func BenchmarkRecompute(b *testing.B) {
	conf, table := loadFixture(b)
	engine := forecast.NewEngine(zap.NewNop(), conf.Recommendation)
	req := seaPointRequest(b, conf, table)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := engine.Recompute(req); err != nil {
			b.Fatal(err)
		}
	}
}
