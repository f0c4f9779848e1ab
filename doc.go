// Package posterize reduces the colour palette of images with k-means
// clustering.
//
// Every pixel is a packed ARGB value (see package pixel). Clustering runs
// Lloyd's algorithm in four-dimensional ARGB space: centroids are seeded
// from distinct pixel colours, each pixel joins its nearest centroid, and
// each centroid moves to the truncated integer mean of its members until
// nothing moves.
//
// # Quick Start
//
// Quantizing raw pixels in place:
//
//	ctx := context.Background()
//	res, err := posterize.Quantize(ctx, pixels, 8, posterize.WithSeed(42))
//
// Quantizing a decoded image:
//
//	q := posterize.New(posterize.WithSeed(42))
//	out, res, err := q.QuantizeImage(ctx, img, 16)
//
// # Termination
//
// A run stops when the centroids are exactly unchanged between two
// iterations. A ceiling of DefaultMaxIterations applies unless changed with
// WithMaxIterations; hitting it returns ErrMaxIterationsExceeded and leaves
// the pixels untouched unless WithBestEffort is set.
//
// # Determinism
//
// Given the same random source, pixels and k, the output is identical.
// Images are flattened column by column unless WithScanOrder says otherwise.
//
// # Storage and batch jobs
//
// Package blobstore loads and stores images locally, in memory, on S3 or on
// MinIO. The posterize command quantizes batches of images concurrently.
package posterize
