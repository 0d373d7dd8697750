package review_test

import (
	"sync"
	"testing"
	"time"

	"github.com/yaklabco/snipreview/pkg/config"
	"github.com/yaklabco/snipreview/pkg/review"
	"github.com/yaklabco/snipreview/pkg/review/rules"
)

// fixedTime stamps every report produced in tests.
var fixedTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// seqRand replays scripted draws and fails the test if the engine draws more
// than scripted or asks for a bound the scripted value does not fit.
type seqRand struct {
	t      *testing.T
	mu     sync.Mutex
	ints   []int
	floats []float64
	bounds []int
}

func (s *seqRand) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.t.Helper()
	if len(s.ints) == 0 {
		s.t.Fatalf("unexpected IntN(%d) draw", n)
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	s.bounds = append(s.bounds, n)
	if v < 0 || v >= n {
		s.t.Fatalf("scripted value %d out of range for IntN(%d)", v, n)
	}
	return v
}

func (s *seqRand) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.t.Helper()
	if len(s.floats) == 0 {
		s.t.Fatal("unexpected Float64 draw")
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func newRegistry() *review.Registry {
	registry := review.NewRegistry()
	rules.RegisterAll(registry)
	rules.RegisterAliases(registry)
	return registry
}

// newEngine builds a deterministic engine over the built-in rules.
func newEngine(cfg *config.Config, opts ...review.EngineOption) *review.Engine {
	base := []review.EngineOption{
		review.WithRand(review.ZeroRand()),
		review.WithClock(func() time.Time { return fixedTime }),
		review.WithIDGenerator(func() string { return "review-1" }),
	}
	return review.NewEngine(newRegistry(), cfg, append(base, opts...)...)
}

func titles(issues []review.Issue) []string {
	out := make([]string, 0, len(issues))
	for _, issue := range issues {
		out = append(out, issue.Title)
	}
	return out
}

func suggestionTitles(suggestions []review.Suggestion) []string {
	out := make([]string, 0, len(suggestions))
	for _, s := range suggestions {
		out = append(out, s.Title)
	}
	return out
}

func intPtr(v int) *int {
	return &v
}
