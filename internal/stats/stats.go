// ABOUTME: Stats service over the shared snapshot row.
// ABOUTME: Seeds the table, reads the current snapshot, and simulates activity updates.
package stats

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/harperreed/fitness/internal/models"
	"github.com/harperreed/fitness/internal/storage"
)

// TargetRowID is the row SimulateUpdate rewrites. Current reads the row
// with the highest ID, so the two only agree while a single row exists.
const TargetRowID int64 = 1

// Range is an inclusive integer range.
type Range struct {
	Min int
	Max int
}

// Ranges bounds each field a simulated update draws.
type Ranges struct {
	Steps         Range
	Calories      Range
	ActiveMinutes Range
	HeartRate     Range
}

// DefaultRanges returns the bounds used for simulated updates.
func DefaultRanges() Ranges {
	return Ranges{
		Steps:         Range{Min: 5000, Max: 15000},
		Calories:      Range{Min: 400, Max: 1200},
		ActiveMinutes: Range{Min: 30, Max: 120},
		HeartRate:     Range{Min: 60, Max: 140},
	}
}

// Service reads and updates the stats snapshot.
type Service struct {
	store  storage.StatsStore
	ranges Ranges

	mu  sync.Mutex
	rng *rand.Rand
}

// Option configures a Service.
type Option func(*Service)

// WithRand sets the random source used by SimulateUpdate.
func WithRand(r *rand.Rand) Option {
	return func(s *Service) {
		s.rng = r
	}
}

// WithRanges overrides the simulated update bounds.
func WithRanges(r Ranges) Option {
	return func(s *Service) {
		s.ranges = r
	}
}

// NewService creates a stats service over store.
func NewService(store storage.StatsStore, opts ...Option) *Service {
	s := &Service{
		store:  store,
		ranges: DefaultRanges(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		seed := uint64(time.Now().UnixNano())
		s.rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	return s
}

// Initialize inserts the seed snapshot if no snapshot exists. It is safe
// to call on every start.
func (s *Service) Initialize(ctx context.Context) error {
	if _, err := s.store.SeedStats(ctx, models.SeedSnapshot()); err != nil {
		return fmt.Errorf("initialize stats: %w", err)
	}
	return nil
}

// Current returns the snapshot with the highest ID, or storage.ErrNoStats.
func (s *Service) Current(ctx context.Context) (*models.StatsSnapshot, error) {
	return s.store.CurrentStats(ctx)
}

// SimulateUpdate draws new steps, calories, active minutes and heart rate
// and writes them to TargetRowID. Sleep and weight are untouched.
func (s *Service) SimulateUpdate(ctx context.Context) (*models.StatsSnapshot, error) {
	update := s.draw()

	snap, err := s.store.UpdateActivity(ctx, TargetRowID, update)
	if err != nil {
		return nil, fmt.Errorf("simulate update: %w", err)
	}
	return snap, nil
}

func (s *Service) draw() models.ActivityUpdate {
	s.mu.Lock()
	defer s.mu.Unlock()

	return models.ActivityUpdate{
		Steps:         s.between(s.ranges.Steps),
		Calories:      s.between(s.ranges.Calories),
		ActiveMinutes: s.between(s.ranges.ActiveMinutes),
		HeartRate:     s.between(s.ranges.HeartRate),
	}
}

// between returns a uniform integer in [r.Min, r.Max]. Callers hold mu.
func (s *Service) between(r Range) int {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + s.rng.IntN(r.Max-r.Min+1)
}

// Contains reports whether v lies within r.
func (r Range) Contains(v int) bool {
	return v >= r.Min && v <= r.Max
}
