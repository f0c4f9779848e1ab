package posterize

import (
	"errors"
	"fmt"

	"github.com/hupe1980/posterize/internal/kmeans"
)

var (
	// ErrInvalidClusterCount is returned when k is not positive or exceeds
	// the number of pixels. The pixels are left unmodified.
	ErrInvalidClusterCount = errors.New("invalid cluster count")

	// ErrMaxIterationsExceeded is returned when the iteration ceiling is
	// reached before the centroids settle and best effort is disabled.
	// The pixels are left unmodified.
	ErrMaxIterationsExceeded = errors.New("maximum iterations exceeded")
)

// ClusterCountError describes a rejected cluster count.
//
// It matches ErrInvalidClusterCount via errors.Is. The original underlying
// error (if any) can be accessed via errors.Unwrap.
type ClusterCountError struct {
	K      int
	Pixels int
	cause  error
}

func (e *ClusterCountError) Error() string {
	if e.K < 1 {
		return fmt.Sprintf("invalid cluster count: k must be positive, got %d", e.K)
	}
	return fmt.Sprintf("invalid cluster count: k=%d exceeds pixel count %d", e.K, e.Pixels)
}

func (e *ClusterCountError) Is(target error) bool { return target == ErrInvalidClusterCount }

func (e *ClusterCountError) Unwrap() error { return e.cause }

func translateError(err error, k, pixels int) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, kmeans.ErrInvalidK) {
		return &ClusterCountError{K: k, Pixels: pixels, cause: err}
	}
	if errors.Is(err, kmeans.ErrMaxIterations) {
		return fmt.Errorf("%w: %w", ErrMaxIterationsExceeded, err)
	}

	return err
}
