package scene

import (
	"math/rand/v2"
	"testing"
)

// benchQuads returns n quads scattered over a 1920x1080 frame, the same
// for every run.
func benchQuads(n int) []Quad {
	rng := rand.New(rand.NewPCG(42, 42))
	quads := make([]Quad, n)
	for i := range quads {
		r := NewRect(rng.Float32()*1920, rng.Float32()*1080, 4+rng.Float32()*96, 4+rng.Float32()*96)
		c := RGBA(rng.Float32(), rng.Float32(), rng.Float32(), 0.5+rng.Float32()/2)
		quads[i] = NewQuad(r, c)
	}
	return quads
}

// ---------------------------------------------------------------------------
// Scene Building Benchmarks
// ---------------------------------------------------------------------------

func benchmarkBuild(b *testing.B, n int) {
	quads := benchQuads(n)
	b.ReportAllocs()
	for b.Loop() {
		s := New()
		for _, q := range quads {
			s.PushQuad(q)
		}
	}
}

func BenchmarkScene_Build_100Quads(b *testing.B)   { benchmarkBuild(b, 100) }
func BenchmarkScene_Build_1000Quads(b *testing.B)  { benchmarkBuild(b, 1000) }
func BenchmarkScene_Build_10000Quads(b *testing.B) { benchmarkBuild(b, 10000) }

// Rebuilding a cleared scene reuses its storage.
func BenchmarkScene_Rebuild_10000Quads(b *testing.B) {
	quads := benchQuads(10000)
	s := New()
	b.ReportAllocs()
	for b.Loop() {
		s.Clear()
		for _, q := range quads {
			s.PushQuad(q)
		}
	}
}

// Logical-pixel layout scaled to device pixels, as a HiDPI host would.
func BenchmarkScene_Build_Scaled(b *testing.B) {
	quads := benchQuads(10000)
	scale := ScaleFactor(2)
	s := New()
	b.ReportAllocs()
	for b.Loop() {
		s.Clear()
		for _, q := range quads {
			q.Bounds = scale.ScaleRect(q.Bounds)
			s.PushQuad(q)
		}
	}
}

func BenchmarkScene_Clear(b *testing.B) {
	quads := benchQuads(10000)
	s := New()
	b.ReportAllocs()
	for b.Loop() {
		for _, q := range quads {
			s.PushQuad(q)
		}
		s.Clear()
	}
}
