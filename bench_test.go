package interpolator

import (
	"context"
	"testing"
)

// BenchmarkEvaluateSequential benchmarks per-frame evaluation on one goroutine.
func BenchmarkEvaluateSequential(b *testing.B) {
	benchmarkEvaluate(b, false)
}

// BenchmarkEvaluateParallel benchmarks per-frame evaluation with poses fanned out.
func BenchmarkEvaluateParallel(b *testing.B) {
	benchmarkEvaluate(b, true)
}

func benchmarkEvaluate(b *testing.B, parallel bool) {
	b.Helper()
	const poses = 32

	ctx := context.Background()
	ip, _ := newMultiPose(b, poses, parallel)
	if err := ip.Bind(ctx); err != nil {
		b.Fatalf("Failed to bind: %v", err)
	}

	b.ResetTimer()
	b.ReportAllocs()
	for b.Loop() {
		if _, err := ip.Evaluate(ctx); err != nil {
			b.Fatalf("Evaluate failed: %v", err)
		}
	}
}
