package engine

import (
	"log"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-hybrid/engine/composer"
	"github.com/Carmen-Shannon/oxy-hybrid/engine/profiler"
	"github.com/Carmen-Shannon/oxy-hybrid/engine/window"
)

// engine implements the Engine interface.
// Frames render on the window's message loop thread; the fixed-rate tick loop
// runs on its own goroutine for logic updates.
type engine struct {
	tickRateChannel chan time.Duration // Channel for dynamic tick rate updates

	running bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window window.Window

	frameComposer composer.FrameComposer

	profiler         *profiler.Profiler
	profilingEnabled bool

	engineTickRate time.Duration
	tickCallback   func(deltaTime float32)
	drawCallback   func(deltaTime float32) error

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
}

// Engine is the main entry point for the application.
// It orchestrates the tick loop, the per-frame draw, and window management.
//
// GPU work happens on the window's message loop thread since the surface is
// bound to the thread that created the window. The tick loop is for logic only
// and must not touch GPU resources directly.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Composer returns the frame composer driven each frame, or nil if the
	// engine was built without one.
	//
	// Returns:
	//   - composer.FrameComposer: the frame composer
	Composer() composer.FrameComposer

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the engine tick rate in ticks per second.
	// The tick callback will be called at this rate for logic updates.
	//
	// Parameters:
	//   - fps: target ticks per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetTickCallback registers the function called each engine tick.
	// Use this for logic, input processing, and animation state updates.
	//
	// Parameters:
	//   - callback: function to call at the configured tick rate, receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetDrawCallback registers the function called once per frame on the
	// window thread, replacing the default of driving the frame composer.
	// Use this when the application needs custom frame orchestration.
	//
	// Parameters:
	//   - callback: function to call each frame, receiving the delta time in seconds
	SetDrawCallback(callback func(deltaTime float32) error)

	// SetRenderFrameLimit sets an optional frame rate cap in frames per second.
	// Pass 0 to uncap the frame loop (default). VSync present mode caps frames
	// at the display refresh rate regardless of this setting.
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Run starts the main loop (blocks until the window closes).
	Run()

	// Quit signals the engine to stop and closes the window.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine instance with the provided options.
//
// Parameters:
//   - options: functional options for engine configuration (window, composer, profiling, tick rate)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		tickRateChannel:  make(chan time.Duration, 1),
		quitChannel:      make(chan struct{}),
		running:          false,
		wg:               sync.WaitGroup{},
		profiler:         profiler.NewProfiler(),
		profilingEnabled: false,
		engineTickRate:   time.Second / 60,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.window != nil && e.frameComposer != nil {
		e.window.SetResizeCallback(e.frameComposer.OnResize)
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Composer() composer.FrameComposer {
	return e.frameComposer
}

func (e *engine) Run() {
	e.running = true

	e.wg.Add(2)
	go e.handleTick()
	go e.handleQuit()

	lastFrame := time.Now()
	e.window.SetUpdateCallback(func() {
		now := time.Now()
		dt := float32(now.Sub(lastFrame).Seconds())
		lastFrame = now
		e.renderFrame(dt)

		// Frame rate limiting
		if e.renderFrameLimit > 0 {
			elapsed := time.Since(lastFrame)
			if remaining := e.renderFrameLimit - elapsed; remaining > 0 {
				time.Sleep(remaining)
			}
		}
	})

	// Blocks until the window closes.
	e.window.ProcessMessages()

	e.signalQuit()
	e.wg.Wait()
}

// renderFrame draws one frame on the window thread. Frame errors are logged and
// the loop keeps going since swapchain errors are usually transient (resize,
// minimize). Panics close the window so the process can exit cleanly.
func (e *engine) renderFrame(dt float32) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("frame recovered from panic: %v", r)
			e.Quit()
		}
	}()

	if e.drawCallback != nil {
		if err := e.drawCallback(dt); err != nil {
			log.Printf("frame error: %v", err)
		}
	} else if e.frameComposer != nil {
		if err := e.frameComposer.RenderFrame(); err != nil {
			log.Printf("frame error: %v", err)
		}
	}

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick()
	}
}

// Quit signals the engine to stop and closes the window.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
	if e.window != nil {
		e.window.Close()
	}
}

// signalQuit closes the quit channel to signal all goroutines to exit.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		e.running = false
		close(e.quitChannel)
	})
}

// handleTick runs the fixed-rate tick loop in its own goroutine.
// Fires the tick callback at the configured tick rate and listens for dynamic
// rate changes via tickRateChannel. Exits when the quit channel is closed.
func (e *engine) handleTick() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.engineTickRate)
	defer ticker.Stop()

	lastTick := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			now := time.Now()
			dt := float32(now.Sub(lastTick).Seconds())
			lastTick = now

			if e.tickCallback != nil {
				e.tickCallback(dt)
			}
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
			e.engineTickRate = newRate
		}
	}
}

// handleQuit blocks until the quit channel is closed, then decrements the WaitGroup.
func (e *engine) handleQuit() {
	defer e.wg.Done()
	<-e.quitChannel
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// SetTickRate sets the engine tick rate in ticks per second.
// If the engine is running, the change takes effect immediately.
func (e *engine) SetTickRate(fps float64) {
	if fps <= 0 {
		fps = 60
	}
	newRate := time.Second / time.Duration(fps)

	if e.running {
		// Non-blocking send - if channel is full, replace the pending value
		select {
		case e.tickRateChannel <- newRate:
		default:
			select {
			case <-e.tickRateChannel:
			default:
			}
			e.tickRateChannel <- newRate
		}
	} else {
		// Engine not running, just update the field
		e.engineTickRate = newRate
	}
}

// SetTickCallback registers the function called each engine tick.
func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

// SetDrawCallback registers the function called once per frame on the window thread.
func (e *engine) SetDrawCallback(callback func(deltaTime float32) error) {
	e.drawCallback = callback
}

// SetRenderFrameLimit sets an optional frame rate cap.
// Pass 0 to uncap the frame loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Second / time.Duration(fps)
}
