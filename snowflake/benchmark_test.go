package snowflake

import "testing"

// ========================================
// Generator Benchmark
// ========================================

func BenchmarkGenerator_Next(b *testing.B) {
	gen, _ := New(&Config{WorkerID: 1})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		gen.Next()
	}
}

func BenchmarkGenerator_Next_Parallel(b *testing.B) {
	gen, _ := New(&Config{WorkerID: 1})
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			gen.Next()
		}
	})
}

func BenchmarkGenerator_NextString(b *testing.B) {
	gen, _ := New(&Config{WorkerID: 1})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		gen.NextString()
	}
}

// ========================================
// Codec Benchmark
// ========================================

func BenchmarkDecode(b *testing.B) {
	id := Encode(123456789, 5, 10, 42)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Decode(id, DefaultEpoch)
	}
}
