// Command posterize reduces images to k colours with k-means clustering.
//
// Usage:
//
//	posterize [flags] <input> <k> <output> [<input> <k> <output> ...]
//
// Inputs and outputs are local paths or s3://bucket/key,
// minio://endpoint/bucket/key and mem:// URIs. An input ending in "/" is a
// prefix: every image below it is quantized into the output prefix.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/hupe1980/posterize"
	"github.com/hupe1980/posterize/blobstore/resolver"
	"github.com/hupe1980/posterize/imageio"
	"github.com/hupe1980/posterize/internal/pipeline"
	"github.com/hupe1980/posterize/internal/resource"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "posterize: %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}

type config struct {
	seed        int64
	maxIter     int
	bestEffort  bool
	empty       string
	order       string
	jobs        int
	rate        float64
	memLimitMiB int64
	quality     int
	compress    string
	region      string
	minioSecure bool
	logLevel    string
	logJSON     bool
}

func parseFlags(args []string, stderr io.Writer) (*config, []string, error) {
	fs := flag.NewFlagSet("posterize", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: posterize [flags] <input> <k> <output> [<input> <k> <output> ...]")
		fs.PrintDefaults()
	}

	cfg := &config{}
	fs.Int64Var(&cfg.seed, "seed", 0, "random seed for centroid seeding (0 picks a time-based seed)")
	fs.IntVar(&cfg.maxIter, "max-iter", posterize.DefaultMaxIterations, "iteration ceiling (0 = unbounded)")
	fs.BoolVar(&cfg.bestEffort, "best-effort", false, "write the last centroids when the ceiling is hit")
	fs.StringVar(&cfg.empty, "empty", "freeze", "empty cluster policy: freeze, reseed or zero")
	fs.StringVar(&cfg.order, "order", "column", "pixel scan order: column or row")
	fs.IntVar(&cfg.jobs, "jobs", 0, "images processed concurrently (0 = GOMAXPROCS)")
	fs.Float64Var(&cfg.rate, "rate", 0, "blob store calls per second (0 = unlimited)")
	fs.Int64Var(&cfg.memLimitMiB, "mem", 0, "pixel memory budget in MiB (0 = unlimited)")
	fs.IntVar(&cfg.quality, "quality", 0, "JPEG quality 1-100 (0 = default)")
	fs.StringVar(&cfg.compress, "compress", "none", "argb output compression: none, lz4 or zstd")
	fs.StringVar(&cfg.region, "region", "", "AWS region for s3:// URIs")
	fs.BoolVar(&cfg.minioSecure, "minio-secure", true, "use HTTPS for minio:// URIs")
	fs.StringVar(&cfg.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	fs.BoolVar(&cfg.logJSON, "log-json", false, "log as JSON")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	rest := fs.Args()
	if len(rest) == 0 || len(rest)%3 != 0 {
		fs.Usage()
		return nil, nil, errors.New("expected <input> <k> <output> triples")
	}
	return cfg, rest, nil
}

func parseEmptyPolicy(s string) (posterize.EmptyClusterPolicy, error) {
	switch s {
	case "freeze":
		return posterize.EmptyClusterFreeze, nil
	case "reseed":
		return posterize.EmptyClusterReseed, nil
	case "zero":
		return posterize.EmptyClusterZero, nil
	default:
		return 0, fmt.Errorf("unknown empty cluster policy %q", s)
	}
}

func parseK(s string) (int, error) {
	k, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: k must be an integer, got %q", posterize.ErrInvalidClusterCount, s)
	}
	if k < 1 {
		return 0, fmt.Errorf("%w: k must be positive, got %d", posterize.ErrInvalidClusterCount, k)
	}
	return k, nil
}

func newLogger(cfg *config, w io.Writer) (*posterize.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.logLevel)); err != nil {
		return nil, fmt.Errorf("invalid log level %q", cfg.logLevel)
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.logJSON {
		return posterize.NewLogger(slog.NewJSONHandler(w, opts)), nil
	}
	return posterize.NewLogger(slog.NewTextHandler(w, opts)), nil
}

func run(ctx context.Context, args []string, stderr io.Writer) error {
	cfg, rest, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg, stderr)
	if err != nil {
		return err
	}

	empty, err := parseEmptyPolicy(cfg.empty)
	if err != nil {
		return err
	}
	order, err := imageio.ParseScanOrder(cfg.order)
	if err != nil {
		return err
	}
	compression, err := imageio.ParseCompression(cfg.compress)
	if err != nil {
		return err
	}

	seed := cfg.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	metrics := &posterize.BasicMetricsCollector{}
	opts := []posterize.Option{
		posterize.WithSeed(seed),
		posterize.WithMaxIterations(cfg.maxIter),
		posterize.WithEmptyClusterPolicy(empty),
		posterize.WithScanOrder(order),
		posterize.WithLogger(logger),
		posterize.WithMetricsCollector(metrics),
	}
	if cfg.bestEffort {
		opts = append(opts, posterize.WithBestEffort())
	}

	runner := &pipeline.Runner{
		Quantizer: posterize.New(opts...),
		Logger:    logger,
		Metrics:   metrics,
		Resources: resource.NewController(resource.Config{
			MemoryLimitBytes: cfg.memLimitMiB << 20,
			OpsPerSec:        cfg.rate,
		}),
		Concurrency: cfg.jobs,
		Encode: imageio.EncodeOptions{
			JPEGQuality: cfg.quality,
			Order:       order,
			Compression: compression,
		},
	}

	res := resolver.New(resolver.Options{Region: cfg.region, MinioSecure: cfg.minioSecure})

	// Validate every triple before touching any output.
	var jobs []pipeline.Job
	for i := 0; i < len(rest); i += 3 {
		k, err := parseK(rest[i+1])
		if err != nil {
			return err
		}
		src, err := res.Resolve(ctx, rest[i])
		if err != nil {
			return err
		}
		dst, err := res.Resolve(ctx, rest[i+2])
		if err != nil {
			return err
		}
		expanded, err := runner.Expand(ctx, src, dst, k)
		if err != nil {
			return err
		}
		jobs = append(jobs, expanded...)
	}

	logger.DebugContext(ctx, "starting batch", "jobs", len(jobs), "seed", seed)

	err = runner.Run(ctx, jobs)

	stats := metrics.GetStats()
	logger.InfoContext(ctx, "batch finished",
		"jobs", stats.JobCount,
		"job_errors", stats.JobErrors,
		"avg_job", time.Duration(stats.JobAvgNanos),
		"pixels", stats.QuantizePixels,
		"iterations", stats.QuantizeIterations,
	)

	return err
}
