package distance

import (
	"context"
	"fmt"
	"sync"
	"time"
	"travel-time-service/internal/ports"
)

type MockPair struct {
	From, To string
	Meters   int
	Seconds  int
	// Err, when set, is returned instead of a result.
	Err error
	// Delay holds the lookup until the context is done or the delay passes.
	Delay time.Duration
}

// MockDistanceProvider answers from a fixed table keyed "from|to" and counts calls.
type MockDistanceProvider struct {
	m map[string]MockPair

	mu    sync.Mutex
	calls map[string]int
}

func NewMockDistanceProvider(pairs []MockPair) *MockDistanceProvider {
	m := make(map[string]MockPair, len(pairs))
	for _, p := range pairs {
		m[p.From+"|"+p.To] = p
	}
	return &MockDistanceProvider{m: m, calls: map[string]int{}}
}

func (p *MockDistanceProvider) Route(ctx context.Context, origin, destination string) (ports.RouteResult, error) {
	key := origin + "|" + destination

	p.mu.Lock()
	p.calls[key]++
	p.mu.Unlock()

	pair, ok := p.m[key]
	if !ok {
		return ports.RouteResult{}, fmt.Errorf("missing pair %q -> %q", origin, destination)
	}

	if pair.Delay > 0 {
		timer := time.NewTimer(pair.Delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ports.RouteResult{}, ctx.Err()
		case <-timer.C:
		}
	}

	if pair.Err != nil {
		return ports.RouteResult{}, pair.Err
	}

	return ports.RouteResult{
		DistanceMeters:  pair.Meters,
		DurationSeconds: pair.Seconds,
		DistanceText:    fmt.Sprintf("%.1f km", float64(pair.Meters)/1000),
		DurationText:    FormatDuration(time.Duration(pair.Seconds) * time.Second),
	}, nil
}

// Calls reports how many lookups were made for from -> to.
func (p *MockDistanceProvider) Calls(from, to string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls[from+"|"+to]
}
