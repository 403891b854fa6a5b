package main

import (
	"fmt"
	"io"
	"slices"
	"time"
)

// frameStats collects per-frame timings.
type frameStats struct {
	frame  []time.Duration
	build  []time.Duration
	render []time.Duration
}

func newFrameStats(n int) *frameStats {
	return &frameStats{
		frame:  make([]time.Duration, 0, n),
		build:  make([]time.Duration, 0, n),
		render: make([]time.Duration, 0, n),
	}
}

func (s *frameStats) record(frame, build, render time.Duration) {
	s.frame = append(s.frame, frame)
	s.build = append(s.build, build)
	s.render = append(s.render, render)
}

// summary is the distribution of one timing series.
type summary struct {
	avg, min, max, p50, p99 time.Duration
}

func summarize(d []time.Duration) summary {
	if len(d) == 0 {
		return summary{}
	}
	sorted := slices.Clone(d)
	slices.Sort(sorted)

	var total time.Duration
	for _, v := range sorted {
		total += v
	}
	return summary{
		avg: total / time.Duration(len(sorted)),
		min: sorted[0],
		max: sorted[len(sorted)-1],
		p50: sorted[len(sorted)/2],
		p99: sorted[min(len(sorted)*99/100, len(sorted)-1)],
	}
}

func (s *frameStats) report(w io.Writer, quads, warmup int) {
	frame := summarize(s.frame)
	build := summarize(s.build)
	render := summarize(s.render)

	fps := 0.0
	if frame.avg > 0 {
		fps = 1 / frame.avg.Seconds()
	}

	fmt.Fprintf(w, "\n%d quads, %d frames (after %d warmup)\n\n", quads, len(s.frame), warmup)
	fmt.Fprintf(w, "frame   avg %10v  (%.1f fps)\n", frame.avg, fps)
	fmt.Fprintf(w, "        min %10v  max %10v\n", frame.min, frame.max)
	fmt.Fprintf(w, "        p50 %10v  p99 %10v\n", frame.p50, frame.p99)
	fmt.Fprintf(w, "build   avg %10v  min %10v  max %10v\n", build.avg, build.min, build.max)
	fmt.Fprintf(w, "render  avg %10v  min %10v  max %10v\n", render.avg, render.min, render.max)
}
