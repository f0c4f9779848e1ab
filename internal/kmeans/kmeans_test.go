package kmeans

import (
	"context"
	"math/rand"
	"testing"

	"github.com/hupe1980/posterize/palette"
	"github.com/hupe1980/posterize/pixel"
	"github.com/hupe1980/posterize/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func train(t *testing.T, pixels []pixel.Pixel, cfg Config) *Result {
	t.Helper()
	if cfg.Source == nil {
		cfg.Source = testutil.NewRNG(4711)
	}
	res, err := Train(context.Background(), pixels, cfg)
	require.NoError(t, err)
	return res
}

func TestTrain_SingletonClusters(t *testing.T) {
	pixels := []pixel.Pixel{0xFF000000, 0xFF0000FF}

	res := train(t, pixels, Config{K: 2})

	assert.True(t, res.Converged)
	assert.Equal(t, 1, res.Iterations)
	assert.ElementsMatch(t, pixels, res.Centroids)

	out := append([]pixel.Pixel(nil), pixels...)
	Apply(out, res)
	assert.Equal(t, pixels, out)
}

func TestTrain_SingleClusterMean(t *testing.T) {
	pixels := []pixel.Pixel{0xFF000000, 0xFF000000, 0xFF0000FF}

	res := train(t, pixels, Config{K: 1})

	require.Len(t, res.Centroids, 1)
	assert.Equal(t, pixel.Pixel(0xFF000055), res.Centroids[0])

	Apply(pixels, res)
	assert.Equal(t, []pixel.Pixel{0xFF000055, 0xFF000055, 0xFF000055}, pixels)
}

func TestTrain_KEqualsLen(t *testing.T) {
	rng := testutil.NewRNG(1)
	pixels := palette.Of(rng.Pixels(50)).Colors()
	rng.Shuffle(pixels)
	want := append([]pixel.Pixel(nil), pixels...)

	res := train(t, pixels, Config{K: len(pixels)})

	assert.Equal(t, 1, res.Iterations)
	Apply(pixels, res)
	assert.Equal(t, want, pixels)
}

func TestTrain_InvalidK(t *testing.T) {
	pixels := []pixel.Pixel{1, 2, 3}
	for _, k := range []int{-1, 0, 4} {
		_, err := Train(context.Background(), pixels, Config{K: k, Source: rand.New(rand.NewSource(1))})
		assert.ErrorIs(t, err, ErrInvalidK, "k=%d", k)
	}
	assert.Equal(t, []pixel.Pixel{1, 2, 3}, pixels)
}

func TestTrain_TwoBlobs(t *testing.T) {
	rng := testutil.NewRNG(42)
	dark, light := pixel.Pixel(0xFF101010), pixel.Pixel(0xFFE0E0E0)
	pixels := rng.ClusteredPixels(400, []pixel.Pixel{dark, light}, 6)

	// Seed one centroid in each blob.
	res := train(t, pixels, Config{K: 2, Source: &fixedSource{seq: []int{0, 1}}})

	require.Len(t, res.Centroids, 2)
	d0 := AssignPartition(dark, res.Centroids)
	d1 := AssignPartition(light, res.Centroids)
	assert.NotEqual(t, d0, d1)
	assert.LessOrEqual(t, pixel.SquaredDistance(res.Centroids[d0], dark), 4*6*6)
	assert.LessOrEqual(t, pixel.SquaredDistance(res.Centroids[d1], light), 4*6*6)
}

func TestTrain_OutputCardinality(t *testing.T) {
	rng := testutil.NewRNG(7)
	pixels := rng.Pixels(1000)

	for _, k := range []int{1, 2, 5, 16} {
		px := append([]pixel.Pixel(nil), pixels...)
		res := train(t, px, Config{K: k, Source: rng})
		Apply(px, res)
		assert.LessOrEqual(t, palette.Of(px).Len(), k)
	}
}

func TestTrain_RequantizeConvergesImmediately(t *testing.T) {
	rng := testutil.NewRNG(3)
	colors := []pixel.Pixel{0xFF000000, 0xFFFF0000, 0xFF00FF00, 0xFF0000FF}
	pixels := rng.PalettePixels(200, colors)

	res := train(t, pixels, Config{K: len(colors), Source: rng})

	assert.Equal(t, 1, res.Iterations)
	assert.ElementsMatch(t, colors, res.Centroids)
}

func TestTrain_Deterministic(t *testing.T) {
	pixels := testutil.NewRNG(9).Pixels(500)

	a := train(t, pixels, Config{K: 8, Source: testutil.NewRNG(11)})
	b := train(t, pixels, Config{K: 8, Source: testutil.NewRNG(11)})

	assert.Equal(t, a.Centroids, b.Centroids)
	assert.Equal(t, a.Assignments, b.Assignments)
	assert.Equal(t, a.Iterations, b.Iterations)
}

func TestTrain_FewerDistinctColorsThanK(t *testing.T) {
	pixels := []pixel.Pixel{5, 5, 5, 9, 9}

	res := train(t, pixels, Config{K: 4})

	assert.Equal(t, 2, res.Clusters())
	assert.ElementsMatch(t, []pixel.Pixel{5, 9}, res.Centroids)
}

func TestTrain_TransparentBlackIsValidCentroid(t *testing.T) {
	pixels := []pixel.Pixel{0x00000000, 0xFFFFFFFF}

	res := train(t, pixels, Config{K: 2})

	assert.ElementsMatch(t, pixels, res.Centroids)
}

func TestTrain_IterationHook(t *testing.T) {
	pixels := testutil.NewRNG(5).Pixels(300)
	var seen []Iteration

	res := train(t, pixels, Config{K: 4, OnIteration: func(it Iteration) {
		seen = append(seen, it)
	}})

	require.Len(t, seen, res.Iterations)
	assert.Equal(t, 0, seen[0].Index)
	assert.Equal(t, len(pixels), seen[0].Reassigned)

	empty := 0
	for _, it := range seen {
		empty += it.Empty
	}
	assert.Equal(t, res.EmptyClusters, empty)
}

func TestTrain_MaxIterations(t *testing.T) {
	pixels := testutil.NewRNG(5).Pixels(2000)
	cfg := Config{K: 32, MaxIterations: 1, Source: testutil.NewRNG(5)}

	res, err := Train(context.Background(), pixels, cfg)
	require.ErrorIs(t, err, ErrMaxIterations)
	assert.False(t, res.Converged)
	assert.Equal(t, 1, res.Iterations)

	cfg.BestEffort = true
	cfg.Source = testutil.NewRNG(5)
	res, err = Train(context.Background(), pixels, cfg)
	require.NoError(t, err)
	assert.False(t, res.Converged)
	assert.Len(t, res.Centroids, 32)
}

func TestTrain_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pixels := testutil.NewRNG(1).Pixels(100)

	_, err := Train(ctx, pixels, Config{K: 2, Source: testutil.NewRNG(1)})
	assert.ErrorIs(t, err, context.Canceled)
}

// fixedSource replays a fixed sequence of indices.
type fixedSource struct {
	seq []int
	pos int
}

func (s *fixedSource) Intn(n int) int {
	v := s.seq[s.pos%len(s.seq)] % n
	s.pos++
	return v
}

func TestUpdateCentroids_EmptyClusterPolicies(t *testing.T) {
	pixels := []pixel.Pixel{0xFF000000, 0xFF000002, 0xFFFFFFFF}
	centroids := []pixel.Pixel{0xFF000001, 0xFF000002, 0xFFFFFFFF}

	sums := make([]pixel.Accumulator, 3)
	sums[0].Add(0xFF000000)
	sums[0].Add(0xFF000002)
	sums[2].Add(0xFFFFFFFF)

	tests := []struct {
		name   string
		policy EmptyPolicy
		want   pixel.Pixel
	}{
		{"Freeze", EmptyFreeze, 0xFF000002},
		{"Zero", EmptyZero, 0},
		{"Reseed", EmptyReseed, 0xFFFFFFFF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := make([]pixel.Pixel, 3)
			cfg := &Config{EmptyPolicy: tt.policy, Source: &fixedSource{seq: []int{2}}}

			empty := updateCentroids(next, centroids, sums, pixels, cfg)

			assert.Equal(t, 1, empty)
			assert.Equal(t, pixel.Pixel(0xFF000001), next[0])
			assert.Equal(t, tt.want, next[1])
			assert.Equal(t, pixel.Pixel(0xFFFFFFFF), next[2])
		})
	}
}

func TestInitCentroids_Distinct(t *testing.T) {
	rng := testutil.NewRNG(8)
	// Heavily skewed population: one colour dominates.
	pixels := make([]pixel.Pixel, 10000)
	for i := range pixels {
		pixels[i] = 0xFF000000
	}
	pixels[1234] = 0xFF0000FF
	pixels[5678] = 0xFFFF0000

	centroids := InitCentroids(pixels, 3, rng)

	assert.ElementsMatch(t, []pixel.Pixel{0xFF000000, 0xFF0000FF, 0xFFFF0000}, centroids)
}

func TestAssignPartition_TieGoesToLowestIndex(t *testing.T) {
	centroids := []pixel.Pixel{0xFF000002, 0xFF000000, 0xFF000002}

	assert.Equal(t, 0, AssignPartition(0xFF000001, centroids))
	assert.Equal(t, 1, AssignPartition(0xFF000000, centroids))
	assert.Equal(t, -1, AssignPartition(0, nil))
}

func TestEmptyPolicy_String(t *testing.T) {
	assert.Equal(t, "freeze", EmptyFreeze.String())
	assert.Equal(t, "reseed", EmptyReseed.String())
	assert.Equal(t, "zero", EmptyZero.String())
	assert.Equal(t, "unknown", EmptyPolicy(99).String())
}
