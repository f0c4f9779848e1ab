package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/hupe1980/posterize"
	"github.com/hupe1980/posterize/blobstore"
	"github.com/hupe1980/posterize/blobstore/resolver"
	"github.com/hupe1980/posterize/imageio"
	"github.com/hupe1980/posterize/internal/resource"
	"github.com/hupe1980/posterize/palette"
	"golang.org/x/sync/errgroup"
)

// ErrNoImages is returned by Expand when a source prefix holds no images.
var ErrNoImages = errors.New("pipeline: no images found")

// bytesPerPixel covers the decoded image, the flattened pixels and the
// quantized copy.
const bytesPerPixel = 3 * 4

// Job quantizes one image.
type Job struct {
	Source      resolver.Location
	Destination resolver.Location
	K           int
}

// Runner executes jobs.
type Runner struct {
	// Quantizer does the clustering. Required.
	Quantizer *posterize.Quantizer
	// Logger receives one event per job. Defaults to NoopLogger.
	Logger *posterize.Logger
	// Metrics records one job event per job. Defaults to NoopMetricsCollector.
	Metrics posterize.MetricsCollector
	// Resources limits memory and store IO. Nil means unlimited.
	Resources *resource.Controller
	// Concurrency bounds the jobs in flight. Defaults to GOMAXPROCS.
	Concurrency int
	// Encode tunes the output encoders.
	Encode imageio.EncodeOptions
}

func (r *Runner) logger() *posterize.Logger {
	if r.Logger == nil {
		return posterize.NoopLogger()
	}
	return r.Logger
}

func (r *Runner) metrics() posterize.MetricsCollector {
	if r.Metrics == nil {
		return posterize.NoopMetricsCollector{}
	}
	return r.Metrics
}

// Run executes jobs concurrently and returns the first error.
func (r *Runner) Run(ctx context.Context, jobs []Job) error {
	if r.Quantizer == nil {
		return errors.New("pipeline: runner has no quantizer")
	}

	limit := r.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for _, job := range jobs {
		g.Go(func() error {
			return r.RunJob(ctx, job)
		})
	}

	return g.Wait()
}

// RunJob loads, quantizes and stores a single image.
func (r *Runner) RunJob(ctx context.Context, job Job) (err error) {
	start := time.Now()
	var before, after int

	defer func() {
		if err != nil {
			err = fmt.Errorf("%s: %w", job.Source, err)
		}
		r.metrics().RecordJob(time.Since(start), err)
		r.logger().WithK(job.K).LogJob(ctx, job.Source.String(), job.Destination.String(), before, after, err)
	}()

	srcFormat, err := imageio.FormatFromName(job.Source.Name)
	if err != nil {
		return err
	}
	dstFormat, err := imageio.FormatFromName(job.Destination.Name)
	if err != nil {
		return err
	}
	if !dstFormat.CanEncode() {
		return fmt.Errorf("%w: cannot encode %v", imageio.ErrUnknownFormat, dstFormat)
	}

	data, err := r.load(ctx, job.Source)
	if err != nil {
		return err
	}

	cfg, err := imageio.DecodeConfig(bytes.NewReader(data), srcFormat)
	if err != nil {
		return fmt.Errorf("decode %v header: %w", srcFormat, err)
	}

	mem := int64(cfg.Width) * int64(cfg.Height) * bytesPerPixel
	if err := r.Resources.AcquireMemory(ctx, mem); err != nil {
		return err
	}
	defer r.Resources.ReleaseMemory(mem)

	img, err := imageio.Decode(bytes.NewReader(data), srcFormat)
	if err != nil {
		return fmt.Errorf("decode %v: %w", srcFormat, err)
	}
	before = palette.Of(imageio.ToPixels(img, imageio.RowMajor)).Len()

	out, _, err := r.Quantizer.QuantizeImage(ctx, img, job.K)
	if err != nil {
		return err
	}
	after = palette.Of(imageio.ToPixels(out, imageio.RowMajor)).Len()

	var buf bytes.Buffer
	if err := imageio.Encode(&buf, out, dstFormat, r.Encode); err != nil {
		return fmt.Errorf("encode %v: %w", dstFormat, err)
	}

	return r.store(ctx, job.Destination, buf.Bytes())
}

func (r *Runner) load(ctx context.Context, loc resolver.Location) ([]byte, error) {
	if err := r.Resources.AcquireOp(ctx); err != nil {
		return nil, err
	}
	data, err := blobstore.ReadAll(ctx, loc.Store, loc.Name)
	if err != nil {
		return nil, err
	}
	if err := r.Resources.AcquireIO(ctx, len(data)); err != nil {
		return nil, err
	}
	return data, nil
}

func (r *Runner) store(ctx context.Context, loc resolver.Location, data []byte) error {
	if err := r.Resources.AcquireOp(ctx); err != nil {
		return err
	}
	if err := r.Resources.AcquireIO(ctx, len(data)); err != nil {
		return err
	}
	return loc.Store.Put(ctx, loc.Name, data)
}

// Expand turns a source into jobs. A single source maps to a single job.
// A source prefix maps to one job per image below it; the destination must
// then be a prefix too, and every output keeps its relative name.
func (r *Runner) Expand(ctx context.Context, src, dst resolver.Location, k int) ([]Job, error) {
	if !src.IsPrefix() {
		if dst.IsPrefix() {
			dst = dst.Join(baseName(src.Name))
		}
		return []Job{{Source: src, Destination: dst, K: k}}, nil
	}

	if !dst.IsPrefix() {
		return nil, fmt.Errorf("pipeline: destination %s must end with / when source %s is a prefix", dst, src)
	}

	if err := r.Resources.AcquireOp(ctx); err != nil {
		return nil, err
	}
	names, err := src.Store.List(ctx, src.Name)
	if err != nil {
		return nil, fmt.Errorf("pipeline: list %s: %w", src, err)
	}

	var jobs []Job
	for _, name := range names {
		if !imageio.IsImageName(name) {
			continue
		}
		rel := strings.TrimPrefix(name, src.Name)
		jobs = append(jobs, Job{
			Source:      src.Join(rel),
			Destination: dst.Join(rel),
			K:           k,
		})
	}

	if len(jobs) == 0 {
		return nil, fmt.Errorf("%w below %s", ErrNoImages, src)
	}
	return jobs, nil
}

func baseName(name string) string {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		return name[i+1:]
	}
	return name
}
