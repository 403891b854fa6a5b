package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/gogpu/gesso/scene"
)

func TestParseCount(t *testing.T) {
	tests := []struct {
		in   string
		want int
		err  bool
	}{
		{"1000", 1000, false},
		{"1k", 1000, false},
		{"10K", 10000, false},
		{"1m", 1000000, false},
		{"k", 0, true},
		{"-5", 0, true},
		{"lots", 0, true},
	}
	for _, tt := range tests {
		got, err := parseCount(tt.in)
		if (err != nil) != tt.err || got != tt.want {
			t.Errorf("parseCount(%q) = %d, %v; want %d, err=%v", tt.in, got, err, tt.want, tt.err)
		}
	}
}

func TestBuildScene(t *testing.T) {
	s := scene.New()
	buildScene(s, 500, 320, 240, 7)
	if s.QuadCount() != 500 {
		t.Fatalf("QuadCount = %d", s.QuadCount())
	}
	for i, q := range s.Quads() {
		b := q.Bounds
		if b.Width() < 4 || b.Width() > 24 || b.Height() < 4 || b.Height() > 24 {
			t.Fatalf("quad %d size %vx%v out of range", i, b.Width(), b.Height())
		}
		if b.X() < 0 || b.Y() < 0 || b.Max().X > 320 || b.Max().Y > 240 {
			t.Fatalf("quad %d bounds %+v outside the viewport", i, b)
		}
		if q.Background.A < 0.5 || q.Background.A > 1 {
			t.Fatalf("quad %d alpha %v", i, q.Background.A)
		}
	}

	again := scene.New()
	buildScene(again, 500, 320, 240, 7)
	if again.Quads()[499] != s.Quads()[499] {
		t.Error("same seed should produce the same scene")
	}
	buildScene(again, 500, 320, 240, 8)
	if again.Quads()[0] == s.Quads()[0] {
		t.Error("different seeds should differ")
	}
}

func TestSummarize(t *testing.T) {
	var d []time.Duration
	for i := 1; i <= 100; i++ {
		d = append(d, time.Duration(i)*time.Millisecond)
	}
	s := summarize(d)
	if s.min != time.Millisecond || s.max != 100*time.Millisecond {
		t.Errorf("min/max = %v/%v", s.min, s.max)
	}
	if s.p50 != 51*time.Millisecond || s.p99 != 100*time.Millisecond {
		t.Errorf("p50/p99 = %v/%v", s.p50, s.p99)
	}
	if s.avg != 50500*time.Microsecond {
		t.Errorf("avg = %v", s.avg)
	}
	if (summarize(nil) != summary{}) {
		t.Error("empty series should be zero")
	}
}

func TestRun(t *testing.T) {
	var out bytes.Buffer
	b := benchmark{out: &out}
	args := []string{"-backend", "software", "-quads", "200", "-frames", "3", "-warmup", "1", "-width", "64", "-height", "48", "-quiet"}
	if err := b.run(args); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "200 quads, 3 frames (after 1 warmup)") {
		t.Errorf("report = %q", out.String())
	}

	if err := (&benchmark{out: &out}).run([]string{"-frames", "0"}); err == nil {
		t.Error("-frames 0 should fail")
	}
}
