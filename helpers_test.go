package reserial

import (
	"context"
	"sync"

	"github.com/unkn0wn-root/reserial/cache"
)

// Shared test collaborators. Verification is exercised with K=string, V=int
// throughout; the components register once per test binary.

type countingListener struct{ removed int }

func (l *countingListener) OnRemoval(string, int, cache.RemovalCause) { l.removed++ }

type differentListener struct{}

func (*differentListener) OnRemoval(string, int, cache.RemovalCause) {}

type lengthWeigher struct{}

func (lengthWeigher) Weigh(key string, _ int) int64 { return int64(len(key)) }

type squareLoader struct{}

func (squareLoader) Load(_ context.Context, key string) (int, error) {
	return len(key) * len(key), nil
}

type stepTicker struct{ nanos int64 }

func (t *stepTicker) Read() int64 { return t.nanos }

var sharedTicker = &stepTicker{}

var registerOnce sync.Once

func registerTestComponents() {
	registerOnce.Do(func() {
		cache.Register("test.listener.counting", func() any { return &countingListener{} })
		cache.Register("test.listener.different", func() any { return &differentListener{} })
		cache.Register("test.weigher.length", func() any { return lengthWeigher{} })
		cache.Register("test.loader.square", func() any { return squareLoader{} })
		cache.Register("test.ticker.step", func() any { return sharedTicker })
	})
}

// tamperTripper round-trips through the snapshot form but lets a test rewrite
// the snapshot in between, standing in for a reconstruction that drifts.
type tamperTripper struct {
	mutate func(s *cache.Snapshot)
}

func (t tamperTripper) Reserialize(_ context.Context, instance any) (any, error) {
	s, err := cache.Dehydrate[string, int](instance)
	if err != nil {
		return nil, err
	}
	if t.mutate != nil {
		t.mutate(s)
	}
	return cache.Rehydrate[string, int](s)
}

func failingFindings(rep *Report) []Finding {
	var out []Finding
	for _, f := range rep.Findings() {
		if !f.Passed {
			out = append(out, f)
		}
	}
	return out
}
