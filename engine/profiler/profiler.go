package profiler

import (
	"log"
	"runtime"
	"time"
)

// Profiler tracks the composed-frame rate, worst frame time, and memory
// statistics, logging a summary line at a configurable interval.
type Profiler struct {
	frames         int
	worstFrame     time.Duration
	lastTick       time.Time
	windowStart    time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
}

// ProfilerOption is a functional option for configuring a Profiler.
type ProfilerOption func(*Profiler)

// WithUpdateInterval sets how often the profiler logs a summary line.
// Values <= 0 are ignored and the 1 second default is kept.
//
// Parameters:
//   - interval: the logging interval
//
// Returns:
//   - ProfilerOption: option function to apply
func WithUpdateInterval(interval time.Duration) ProfilerOption {
	return func(p *Profiler) {
		if interval > 0 {
			p.updateInterval = interval
		}
	}
}

// NewProfiler creates a new Profiler. The logging interval defaults to
// 1 second.
//
// Parameters:
//   - opts: a variadic list of ProfilerOption functions to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(opts ...ProfilerOption) *Profiler {
	now := time.Now()
	p := &Profiler{
		lastTick:       now,
		windowStart:    now,
		updateInterval: time.Second,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Tick records one composed frame. Call it once per presented frame; it logs
// a summary line covering frame rate, the slowest frame in the window, heap
// usage, allocation rate, and GC pauses once the update interval has elapsed.
//
// Returns:
//   - bool: true if a summary was logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	now := time.Now()
	frameTime := now.Sub(p.lastTick)
	p.lastTick = now
	p.frames++
	if frameTime > p.worstFrame {
		p.worstFrame = frameTime
	}

	elapsed := now.Sub(p.windowStart)
	if elapsed < p.updateInterval {
		return false
	}

	fps := float64(p.frames) / elapsed.Seconds()

	runtime.ReadMemStats(&p.memStats)
	heapMB := float64(p.memStats.Alloc) / 1024 / 1024
	sysMB := float64(p.memStats.Sys) / 1024 / 1024

	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	allocRateMB := float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	// PauseNs is a circular buffer of the last 256 GC pauses.
	gcCount := p.memStats.NumGC
	var lastPauseUs, maxPauseUs uint64
	if gcCount > 0 {
		lastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000

		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			pause := p.memStats.PauseNs[i%256] / 1000
			if pause > maxPauseUs {
				maxPauseUs = pause
			}
		}
	}

	log.Printf("[frame-profiler] %.2f fps (worst frame %.2f ms) | heap: %.2f MB | alloc rate: %.2f MB/s | gc: %d (last: %d µs, max: %d µs) | sys: %.2f MB",
		fps, float64(p.worstFrame.Microseconds())/1000, heapMB, allocRateMB, gcCount, lastPauseUs, maxPauseUs, sysMB)

	p.frames = 0
	p.worstFrame = 0
	p.windowStart = now
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}
