package kmeans

import (
	"context"
	"errors"
	"math"
	"slices"

	"github.com/hupe1980/posterize/palette"
	"github.com/hupe1980/posterize/pixel"
)

var (
	// ErrInvalidK is returned when k is not in [1, len(pixels)].
	ErrInvalidK = errors.New("kmeans: invalid cluster count")

	// ErrMaxIterations is returned when the iteration ceiling is reached
	// before the centroids settle.
	ErrMaxIterations = errors.New("kmeans: maximum iterations exceeded")
)

// Source is the random source used for seeding and re-seeding centroids.
// *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// EmptyPolicy decides what happens to a centroid whose cluster received no
// pixels in an assignment phase.
type EmptyPolicy int

const (
	// EmptyFreeze keeps the centroid unchanged.
	EmptyFreeze EmptyPolicy = iota
	// EmptyReseed moves the centroid to a uniformly drawn pixel.
	EmptyReseed
	// EmptyZero sets the centroid to 0x00000000.
	EmptyZero
)

func (p EmptyPolicy) String() string {
	switch p {
	case EmptyFreeze:
		return "freeze"
	case EmptyReseed:
		return "reseed"
	case EmptyZero:
		return "zero"
	default:
		return "unknown"
	}
}

// Iteration describes one finished assignment/update cycle.
type Iteration struct {
	// Index is zero-based.
	Index int
	// Reassigned counts pixels whose cluster changed. On the first
	// iteration every pixel counts as reassigned.
	Reassigned int
	// Empty counts clusters that received no pixels.
	Empty int
}

// Config controls a training run.
type Config struct {
	// K is the requested number of clusters.
	K int
	// MaxIterations bounds the number of cycles. Zero means unbounded.
	MaxIterations int
	// EmptyPolicy handles clusters without members.
	EmptyPolicy EmptyPolicy
	// BestEffort returns the last centroids instead of ErrMaxIterations.
	BestEffort bool
	// Source drives centroid seeding. Required.
	Source Source
	// OnIteration, if set, is called after every cycle.
	OnIteration func(Iteration)
}

// Result is the outcome of Train.
type Result struct {
	// Centroids holds one colour per cluster.
	Centroids []pixel.Pixel
	// Assignments maps each pixel index to its centroid index.
	Assignments []int
	// Iterations is the number of completed cycles.
	Iterations int
	// Converged is false only for best-effort runs that hit the ceiling.
	Converged bool
	// EmptyClusters counts empty-cluster events over all cycles.
	EmptyClusters int
}

// Clusters returns the effective number of clusters, which is lower than
// the requested k when the image has fewer distinct colours.
func (r *Result) Clusters() int {
	return len(r.Centroids)
}

// Train clusters pixels without modifying them.
func Train(ctx context.Context, pixels []pixel.Pixel, cfg Config) (*Result, error) {
	n := len(pixels)
	if cfg.K < 1 || cfg.K > n {
		return nil, ErrInvalidK
	}

	centroids := InitCentroids(pixels, cfg.K, cfg.Source)
	k := len(centroids)

	res := &Result{
		Assignments: make([]int, n),
	}
	for i := range res.Assignments {
		res.Assignments[i] = -1
	}

	sums := make([]pixel.Accumulator, k)
	next := make([]pixel.Pixel, k)

	for iter := 0; cfg.MaxIterations == 0 || iter < cfg.MaxIterations; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		// Assignment step
		for j := range sums {
			sums[j].Reset()
		}
		reassigned := 0
		for i, p := range pixels {
			best := AssignPartition(p, centroids)
			if res.Assignments[i] != best {
				res.Assignments[i] = best
				reassigned++
			}
			sums[best].Add(p)
		}

		// Update step
		empty := updateCentroids(next, centroids, sums, pixels, &cfg)

		res.Iterations = iter + 1
		res.EmptyClusters += empty
		if cfg.OnIteration != nil {
			cfg.OnIteration(Iteration{Index: iter, Reassigned: reassigned, Empty: empty})
		}

		converged := slices.Equal(centroids, next)
		centroids, next = next, centroids
		if converged {
			res.Converged = true
			break
		}
	}

	res.Centroids = centroids
	if !res.Converged && !cfg.BestEffort {
		return res, ErrMaxIterations
	}
	return res, nil
}

// updateCentroids writes the mean of every cluster into next and returns
// the number of empty clusters.
func updateCentroids(next, centroids []pixel.Pixel, sums []pixel.Accumulator, pixels []pixel.Pixel, cfg *Config) int {
	empty := 0
	for j := range centroids {
		if mean, ok := sums[j].Mean(); ok {
			next[j] = mean
			continue
		}
		empty++
		switch cfg.EmptyPolicy {
		case EmptyReseed:
			next[j] = pixels[cfg.Source.Intn(len(pixels))]
		case EmptyZero:
			next[j] = 0
		default:
			next[j] = centroids[j]
		}
	}
	return empty
}

// Apply overwrites every pixel with the centroid it was assigned to.
// pixels must be the slice res was trained on.
func Apply(pixels []pixel.Pixel, res *Result) {
	for i, c := range res.Assignments {
		pixels[i] = res.Centroids[c]
	}
}

// maxDrawsPerCentroid bounds rejection sampling during seeding.
const maxDrawsPerCentroid = 64

// InitCentroids picks min(k, distinct colours) distinct centroid values by
// drawing pixels uniformly at random and rejecting duplicates. When the
// draw budget runs out, the remaining centroids are picked uniformly from
// the colours not chosen yet.
func InitCentroids(pixels []pixel.Pixel, k int, src Source) []pixel.Pixel {
	distinct := palette.Of(pixels)
	if distinct.Len() < k {
		k = distinct.Len()
	}

	chosen := palette.New()
	centroids := make([]pixel.Pixel, 0, k)
	for draws := 0; len(centroids) < k && draws < maxDrawsPerCentroid*k; draws++ {
		p := pixels[src.Intn(len(pixels))]
		if chosen.Add(p) {
			centroids = append(centroids, p)
		}
	}

	if len(centroids) < k {
		remaining := distinct.Difference(chosen)
		for len(centroids) < k {
			p, _ := remaining.Nth(src.Intn(remaining.Len()))
			remaining.Remove(p)
			centroids = append(centroids, p)
		}
	}

	return centroids
}

// AssignPartition returns the index of the centroid closest to p.
// Ties go to the lowest index.
func AssignPartition(p pixel.Pixel, centroids []pixel.Pixel) int {
	best := -1
	minDist := math.MaxInt
	for j, c := range centroids {
		d := pixel.SquaredDistance(p, c)
		if d < minDist {
			minDist = d
			best = j
		}
	}
	return best
}
