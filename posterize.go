package posterize

import (
	"context"
	"image"
	"slices"
	"time"

	"github.com/hupe1980/posterize/imageio"
	"github.com/hupe1980/posterize/internal/kmeans"
	"github.com/hupe1980/posterize/pixel"
)

// Result reports how a quantize call went.
type Result struct {
	// Centroids holds the final colour of every cluster.
	Centroids []pixel.Pixel
	// Clusters is the effective number of clusters. It is lower than the
	// requested k when the input has fewer distinct colours.
	Clusters int
	// Iterations is the number of assignment/update cycles run.
	Iterations int
	// Converged is false only for best-effort runs that hit the ceiling.
	Converged bool
	// EmptyClusters counts empty-cluster events over all cycles.
	EmptyClusters int
	// Duration is the wall time of the call.
	Duration time.Duration
}

// Quantizer reduces images to k colours with k-means clustering.
//
// A Quantizer is safe for concurrent use as long as its random source is.
// Each call clusters on the calling goroutine.
type Quantizer struct {
	opts options
}

// New creates a Quantizer.
func New(optFns ...Option) *Quantizer {
	return &Quantizer{opts: applyOptions(optFns)}
}

// Logger returns the configured logger.
func (q *Quantizer) Logger() *Logger {
	return q.opts.logger
}

// Quantize replaces every pixel with the mean colour of its cluster, in
// place. On error the pixels are left unmodified; the Result is still
// returned when clustering ran, e.g. with ErrMaxIterationsExceeded.
func (q *Quantizer) Quantize(ctx context.Context, pixels []pixel.Pixel, k int) (*Result, error) {
	start := time.Now()

	cfg := kmeans.Config{
		K:             k,
		MaxIterations: q.opts.maxIterations,
		EmptyPolicy:   q.opts.emptyPolicy,
		BestEffort:    q.opts.bestEffort,
		Source:        q.opts.source,
		OnIteration: func(it kmeans.Iteration) {
			q.opts.logger.LogIteration(ctx, it.Index, it.Reassigned, it.Empty)
		},
	}

	model, err := kmeans.Train(ctx, pixels, cfg)
	err = translateError(err, k, len(pixels))

	var res *Result
	if model != nil {
		res = &Result{
			Centroids:     model.Centroids,
			Clusters:      model.Clusters(),
			Iterations:    model.Iterations,
			Converged:     model.Converged,
			EmptyClusters: model.EmptyClusters,
		}
		if err == nil {
			kmeans.Apply(pixels, model)
		}
	}

	duration := time.Since(start)
	iterations := 0
	if res != nil {
		res.Duration = duration
		iterations = res.Iterations
	}

	q.opts.metricsCollector.RecordQuantize(k, len(pixels), iterations, duration, err)
	q.opts.logger.LogQuantize(ctx, k, len(pixels), res, err)

	return res, err
}

// Quantized is the pure form of Quantize: it returns a quantized copy and
// leaves pixels untouched.
func (q *Quantizer) Quantized(ctx context.Context, pixels []pixel.Pixel, k int) ([]pixel.Pixel, *Result, error) {
	out := slices.Clone(pixels)
	res, err := q.Quantize(ctx, out, k)
	if err != nil {
		return nil, res, err
	}
	return out, res, nil
}

// QuantizeImage returns a k-colour copy of img.
func (q *Quantizer) QuantizeImage(ctx context.Context, img image.Image, k int) (*image.NRGBA, *Result, error) {
	order := q.opts.scanOrder
	pixels := imageio.ToPixels(img, order)

	res, err := q.Quantize(ctx, pixels, k)
	if err != nil {
		return nil, res, err
	}

	out, err := imageio.FromPixels(pixels, img.Bounds(), order)
	if err != nil {
		return nil, nil, err
	}
	return out, res, nil
}

// Quantize clusters pixels in place with a one-off Quantizer.
func Quantize(ctx context.Context, pixels []pixel.Pixel, k int, optFns ...Option) (*Result, error) {
	return New(optFns...).Quantize(ctx, pixels, k)
}

// Quantized returns a quantized copy of pixels with a one-off Quantizer.
func Quantized(ctx context.Context, pixels []pixel.Pixel, k int, optFns ...Option) ([]pixel.Pixel, *Result, error) {
	return New(optFns...).Quantized(ctx, pixels, k)
}

// QuantizeImage returns a k-colour copy of img with a one-off Quantizer.
func QuantizeImage(ctx context.Context, img image.Image, k int, optFns ...Option) (*image.NRGBA, *Result, error) {
	return New(optFns...).QuantizeImage(ctx, img, k)
}
