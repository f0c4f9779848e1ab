// Package kmeans implements Lloyd's k-means clustering over packed ARGB
// pixels.
//
// Centroids are seeded from k distinct pixel values drawn uniformly at
// random, then refined by alternating assignment (nearest centroid by
// Euclidean distance, lowest index on ties) and update (truncated
// channel-wise mean) until no centroid changes.
package kmeans
