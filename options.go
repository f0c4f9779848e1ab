package posterize

import (
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/hupe1980/posterize/imageio"
	"github.com/hupe1980/posterize/internal/kmeans"
)

// DefaultMaxIterations is the default iteration ceiling.
const DefaultMaxIterations = 300

// Source is a random source for centroid seeding. *rand.Rand satisfies it.
type Source = kmeans.Source

// EmptyClusterPolicy decides what happens to a centroid that attracts no
// pixels during an iteration.
type EmptyClusterPolicy = kmeans.EmptyPolicy

const (
	// EmptyClusterFreeze keeps the centroid unchanged (default).
	EmptyClusterFreeze = kmeans.EmptyFreeze
	// EmptyClusterReseed moves the centroid to a random pixel.
	EmptyClusterReseed = kmeans.EmptyReseed
	// EmptyClusterZero sets the centroid to transparent black.
	EmptyClusterZero = kmeans.EmptyZero
)

type options struct {
	source           Source
	maxIterations    int
	bestEffort       bool
	emptyPolicy      EmptyClusterPolicy
	scanOrder        imageio.ScanOrder
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures a Quantizer.
type Option func(*options)

// WithSeed seeds the centroid initialization for reproducible results.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.source = newLockedSource(seed)
	}
}

// WithSource configures the random source used for centroid seeding.
// A Quantizer shared between goroutines needs a source that is safe for
// concurrent use (testutil.RNG is).
//
// If nil is passed, a time-seeded source is used.
func WithSource(src Source) Option {
	return func(o *options) {
		o.source = src
	}
}

// WithMaxIterations bounds the number of assignment/update cycles.
// Zero removes the bound; the loop then runs until the centroids settle.
//
// Default: DefaultMaxIterations.
func WithMaxIterations(n int) Option {
	return func(o *options) {
		if n < 0 {
			n = 0
		}
		o.maxIterations = n
	}
}

// WithBestEffort makes a run that hits the iteration ceiling write its last
// centroids instead of failing with ErrMaxIterationsExceeded.
func WithBestEffort() Option {
	return func(o *options) {
		o.bestEffort = true
	}
}

// WithEmptyClusterPolicy configures how empty clusters are handled.
//
// Default: EmptyClusterFreeze.
func WithEmptyClusterPolicy(p EmptyClusterPolicy) Option {
	return func(o *options) {
		o.emptyPolicy = p
	}
}

// WithScanOrder configures the order in which QuantizeImage flattens an
// image. Scan order only matters for reproducibility with a fixed seed.
//
// Default: imageio.ColumnMajor.
func WithScanOrder(order imageio.ScanOrder) Option {
	return func(o *options) {
		o.scanOrder = order
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &posterize.BasicMetricsCollector{}
//	q := posterize.New(posterize.WithMetricsCollector(metrics))
//	// ... use q ...
//	stats := metrics.GetStats()
//	fmt.Printf("Quantized: %d, Avg latency: %dns\n", stats.QuantizeCount, stats.QuantizeAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := posterize.NewJSONLogger(slog.LevelInfo)
//	q := posterize.New(posterize.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		maxIterations:    DefaultMaxIterations,
		emptyPolicy:      EmptyClusterFreeze,
		scanOrder:        imageio.ColumnMajor,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.source == nil {
		o.source = newLockedSource(time.Now().UnixNano())
	}
	return o
}

// lockedSource is a *rand.Rand guarded by a mutex.
type lockedSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

func newLockedSource(seed int64) *lockedSource {
	return &lockedSource{r: rand.New(rand.NewSource(seed))}
}

func (s *lockedSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Intn(n)
}
