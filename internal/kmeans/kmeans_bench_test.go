package kmeans

import (
	"context"
	"fmt"
	"testing"

	"github.com/hupe1980/posterize/pixel"
	"github.com/hupe1980/posterize/testutil"
)

var benchCenters = []pixel.Pixel{
	0xFF101010, 0xFFF0F0F0, 0xFFC03020, 0xFF20A040,
	0xFF2040C0, 0xFFE0C020, 0x80808080, 0xFF603090,
}

func BenchmarkTrain(b *testing.B) {
	for _, k := range []int{2, 8, 32} {
		b.Run(fmt.Sprintf("k=%d", k), func(b *testing.B) {
			rng := testutil.NewRNG(42)
			px := rng.ClusteredPixels(64*64, benchCenters, 24)
			b.ReportAllocs()
			b.SetBytes(int64(len(px) * 4))

			for b.Loop() {
				rng.Reset()
				_, err := Train(context.Background(), px, Config{
					K:             k,
					MaxIterations: 300,
					BestEffort:    true,
					Source:        rng,
				})
				if err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkAssignPartition(b *testing.B) {
	centroids := testutil.NewRNG(7).Pixels(64)
	p := pixel.Pixel(0xFF336699)

	var sink int
	for b.Loop() {
		sink = AssignPartition(p, centroids)
	}
	_ = sink
}

func BenchmarkInitCentroids(b *testing.B) {
	rng := testutil.NewRNG(9)
	px := rng.PalettePixels(256*256, rng.Pixels(512))
	b.ReportAllocs()

	for b.Loop() {
		_ = InitCentroids(px, 256, rng)
	}
}
